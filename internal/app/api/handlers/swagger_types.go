package handlers

import (
	"github.com/fatflowers/payfacade/internal/app/service/payment_event_log"
	"github.com/fatflowers/payfacade/internal/app/service/statistics"
	"github.com/fatflowers/payfacade/pkg/response"
)

// RespHealth wraps the liveness payload in the standard envelope.
type RespHealth struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    map[string]string        `json:"data"`
}

// RespScanPaymentEvents wraps ScanResponse in the standard envelope.
type RespScanPaymentEvents struct {
	Code    response.APIResponseCode       `json:"code"`
	Message string                         `json:"message"`
	Data    payment_event_log.ScanResponse `json:"data"`
}

// RespPaymentStatistic wraps PaymentStatisticResponse in the standard envelope.
type RespPaymentStatistic struct {
	Code    response.APIResponseCode            `json:"code"`
	Message string                              `json:"message"`
	Data    statistics.PaymentStatisticResponse `json:"data"`
}
