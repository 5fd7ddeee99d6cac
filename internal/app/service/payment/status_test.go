package payment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatflowers/payfacade/pkg/types"
)

func TestMapGatewayStatus_KnownStatuses(t *testing.T) {
	cases := []struct {
		raw, code string
		want      types.PaymentStatus
		wantCode  string
	}{
		{raw: "success", want: types.PaymentStatusSuccess},
		{raw: "success", code: "P0010", want: types.PaymentStatusSuccess},
		{raw: "failed", code: "P0030", want: types.PaymentStatusFailed, wantCode: "P0030"},
		{raw: "failed", want: types.PaymentStatusFailed, wantCode: GatewayCodeRejected},
		{raw: "error", code: "P0010", want: types.PaymentStatusError, wantCode: "P0010"},
		{raw: "error", want: types.PaymentStatusError, wantCode: GatewayCodeProviderError},
		{raw: "cancelled", want: types.PaymentStatusFailed, wantCode: GatewayCodeCancelledService},
		{raw: " Success ", want: types.PaymentStatusSuccess},
	}
	for _, tc := range cases {
		t.Run(tc.raw+"/"+tc.code, func(t *testing.T) {
			got, err := MapGatewayStatus(tc.raw, tc.code, "")
			require.NoError(t, err)
			require.Equal(t, tc.want, got.Status)
			require.Equal(t, tc.wantCode, got.ErrorCode)
			if tc.want.RequiresErrorDetails() {
				require.NotEmpty(t, got.ErrorMessage)
			} else {
				require.Empty(t, got.ErrorMessage)
			}
		})
	}
}

func TestMapGatewayStatus_IsDeterministic(t *testing.T) {
	for raw := range gatewayStatusRules {
		first, err := MapGatewayStatus(raw, "", "")
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := MapGatewayStatus(raw, "", "")
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
	}
}

func TestMapGatewayStatus_UnknownIsNotFound(t *testing.T) {
	for _, raw := range []string{"", "created", "started", "submitted", "capturable", "refunded", "SUCCESSFUL"} {
		got, err := MapGatewayStatus(raw, "P0010", "boom")
		require.True(t, errors.Is(err, ErrPaymentStatusNotFound), raw)
		require.Equal(t, ReconciledStatus{}, got)
	}
}

func TestMapGatewayStatus_KeepsGatewayMessage(t *testing.T) {
	got, err := MapGatewayStatus("failed", "P0030", "Payment was cancelled by the user")
	require.NoError(t, err)
	require.Equal(t, "Payment was cancelled by the user", got.ErrorMessage)
}
