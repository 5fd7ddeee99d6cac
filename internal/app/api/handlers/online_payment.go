package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"

	"github.com/fatflowers/payfacade/internal/app/service/payment"
	"github.com/fatflowers/payfacade/pkg/logctx"
)

var redirectPage = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="0;url={{.URL}}">
<title>Redirecting</title>
</head>
<body>
<p>Redirecting. If nothing happens, <a href="{{.URL}}">continue</a>.</p>
</body>
</html>
`))

type redirectData struct {
	URL string
}

func renderRedirect(c *gin.Context, url string) {
	c.Render(http.StatusOK, render.HTML{Template: redirectPage, Data: redirectData{URL: url}})
}

// initiateOnline runs start and answers with a redirect stub: the hosted page on success,
// the error page on any handled failure. Only validation failures surface as 400.
func initiateOnline(c *gin.Context, log *zap.SugaredLogger, errorURL string, req any, start func(ctx context.Context) (*payment.InitiateResult, error)) {
	lg := logctx.FromGin(c, log)
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithProblem(c, malformedBodyProblem(err))
		return
	}
	res, err := start(c.Request.Context())
	if err != nil {
		var verr *payment.ValidationError
		if errors.As(err, &verr) {
			abortWithProblem(c, validationProblem(verr))
			return
		}
		lg.Errorw("online payment could not be started; redirecting to error page", "err", err)
		renderRedirect(c, errorURL)
		return
	}
	if res.NextURL == "" {
		lg.Warnw("gateway gave no hosted page; redirecting to error page", "external_payment_id", res.ExternalPaymentID)
		renderRedirect(c, errorURL)
		return
	}
	renderRedirect(c, res.NextURL)
}

// @Summary      Start online payment
// @Description  Creates the payment record, opens a hosted payment session and redirects the browser to it.
// @Tags         Payments
// @Accept       json
// @Produce      html
// @Param        request body payment.OnlinePaymentRequest true "Online payment request"
// @Success      200  {string}  string  "HTML redirect to the hosted page or to the error page"
// @Failure      400  {object}  response.Problem
// @Router       /v1/online-payments [post]
func ApiInitiateOnlinePayment(mgr payment.PaymentManager, errorURL string, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.OnlinePaymentRequest
		initiateOnline(c, log, errorURL, &req, func(ctx context.Context) (*payment.InitiateResult, error) {
			return mgr.InitiateOnlinePayment(ctx, &req)
		})
	}
}

// @Summary      Start online payment (v2)
// @Description  Same as v1 with the requestor type of the paying organisation.
// @Tags         Payments
// @Accept       json
// @Produce      html
// @Param        request body payment.OnlinePaymentRequestV2 true "Online payment request"
// @Success      200  {string}  string  "HTML redirect to the hosted page or to the error page"
// @Failure      400  {object}  response.Problem
// @Router       /v2/online-payments [post]
func ApiInitiateOnlinePaymentV2(mgr payment.PaymentManager, errorURL string, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.OnlinePaymentRequestV2
		initiateOnline(c, log, errorURL, &req, func(ctx context.Context) (*payment.InitiateResult, error) {
			return mgr.InitiateOnlinePaymentV2(ctx, &req)
		})
	}
}
