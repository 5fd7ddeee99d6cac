package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/payfacade/internal/app/service/payment"
	"github.com/fatflowers/payfacade/pkg/logctx"
	"github.com/fatflowers/payfacade/pkg/response"
)

const (
	titleValidation = "One or more validation errors occurred."
	titleNotFound   = "Payment status not found"
	titleInternal   = "An unexpected error occurred"
)

func validationProblem(verr *payment.ValidationError) *response.Problem {
	p := response.NewProblem(http.StatusBadRequest, response.ProblemTypeValidation, titleValidation, "")
	for _, v := range verr.Violations {
		p.WithError(v.Field, v.Message)
	}
	return p
}

func malformedBodyProblem(err error) *response.Problem {
	return response.NewProblem(http.StatusBadRequest, response.ProblemTypeValidation, titleValidation, "malformed request body: "+err.Error())
}

// problemFor maps an orchestrator error to its HTTP problem. Service failures keep their cause out of the body.
func problemFor(err error) *response.Problem {
	var verr *payment.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationProblem(verr)
	case errors.Is(err, payment.ErrPaymentStatusNotFound):
		return response.NewProblem(http.StatusBadRequest, response.ProblemTypeNotFound, titleNotFound, err.Error())
	default:
		return response.NewProblem(http.StatusInternalServerError, response.ProblemTypeInternal, titleInternal, "")
	}
}

func writeProblem(c *gin.Context, log *zap.SugaredLogger, err error) {
	p := problemFor(err)
	if p.Status >= http.StatusInternalServerError {
		logctx.FromGin(c, log).Errorw("request failed", "path", c.FullPath(), "err", err)
	}
	abortWithProblem(c, p)
}

func abortWithProblem(c *gin.Context, p *response.Problem) {
	p.TraceID = c.GetString(logctx.TraceIDKey)
	c.AbortWithStatusJSON(p.Status, p)
}
