package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaymentEventLog_TableName(t *testing.T) {
	var m PaymentEventLog
	require.Equal(t, "payment_event_log", m.TableName())
}
