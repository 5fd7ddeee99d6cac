package models

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentOperation string

const (
	PaymentOperationInitiate PaymentOperation = "initiate"
	PaymentOperationComplete PaymentOperation = "complete"
	PaymentOperationOffline  PaymentOperation = "offline"
)

type PaymentEventStep string

const (
	PaymentEventStepLedgerInserted PaymentEventStep = "ledger_inserted"
	PaymentEventStepGatewayCreated PaymentEventStep = "gateway_created"
	PaymentEventStepLedgerUpdated  PaymentEventStep = "ledger_updated"
	PaymentEventStepGatewayStatus  PaymentEventStep = "gateway_status"
	PaymentEventStepFailed         PaymentEventStep = "failed"
	PaymentEventStepDesynchronised PaymentEventStep = "desynchronised"
)

// PaymentEventLog is an append-only trail of orchestration steps, kept for support and reconciliation.
type PaymentEventLog struct {
	ID                string           `gorm:"column:id;type:uuid;primary_key" json:"id"`
	ExternalPaymentID string           `gorm:"column:external_payment_id;type:varchar(64);index:idx_external_payment_id" json:"external_payment_id"`
	GatewayPaymentID  string           `gorm:"column:gateway_payment_id;type:varchar(64)" json:"gateway_payment_id"`
	Operation         PaymentOperation `gorm:"column:operation;type:varchar(32);not null" json:"operation"`
	Step              PaymentEventStep `gorm:"column:step;type:varchar(32);not null" json:"step"`
	Status            string           `gorm:"column:status;type:varchar(32)" json:"status"`
	TraceID           string           `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	Error             *string          `gorm:"column:error;type:text" json:"error"`
	Data              datatypes.JSON   `gorm:"column:data;type:jsonb" json:"data"`
	CreatedAt         time.Time        `json:"created_at"`
}

func (PaymentEventLog) TableName() string { return "payment_event_log" }
