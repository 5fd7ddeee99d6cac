package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/payfacade/pkg/response"
)

// EventLogStatus reports whether payment events are being persisted.
type EventLogStatus interface {
	Enabled() bool
}

// @Summary      Health check
// @Description  Returns service status and whether the payment event log is persisting
// @Tags         System
// @Produce      json
// @Success      200  {object}  handlers.RespHealth
// @Router       /healthz [get]
func ApiHealthz(events EventLogStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventLog := "disabled"
		if events != nil && events.Enabled() {
			eventLog = "enabled"
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "ok", "event_log": eventLog}))
	}
}

func RegisterHealthRoutes(r gin.IRouter, events EventLogStatus) {
	r.GET("/healthz", ApiHealthz(events))
}
