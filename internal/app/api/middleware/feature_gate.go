package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/payfacade/pkg/logctx"
	"github.com/fatflowers/payfacade/pkg/response"
)

// FlagLookup reports whether a named feature is switched on.
type FlagLookup interface {
	Enabled(name string) bool
}

// FeatureGate hides the route behind flag: when the flag is off the endpoint does not exist.
// The flag is read on every request so config reloads apply without a restart.
func FeatureGate(flags FlagLookup, flag string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if flags == nil || !flags.Enabled(flag) {
			p := response.NewProblem(http.StatusNotFound, response.ProblemTypeNotFound, "Not Found", "")
			p.TraceID = c.GetString(logctx.TraceIDKey)
			c.AbortWithStatusJSON(http.StatusNotFound, p)
			return
		}
		c.Next()
	}
}
