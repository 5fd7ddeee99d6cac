package featureflag

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFlags_UnknownIsDisabled(t *testing.T) {
	f := NewStatic(map[string]bool{OnlinePayments: true})
	require.True(t, f.Enabled(OnlinePayments))
	require.False(t, f.Enabled(OfflinePayments))

	var nilFlags *Flags
	require.False(t, nilFlags.Enabled(OnlinePayments))
}

func TestFlags_ReplaceSwapsWholeSet(t *testing.T) {
	f := NewStatic(map[string]bool{OnlinePayments: true})
	f.Replace(map[string]bool{"Offline_Payments": true})
	require.False(t, f.Enabled(OnlinePayments))
	require.True(t, f.Enabled(OfflinePayments))
}

func TestNew_ReadsFeaturesSection(t *testing.T) {
	v := viper.New()
	v.Set("features", map[string]any{"online_payments": true, "payment_completion": "false"})

	f := New(v, zap.NewNop().Sugar())
	require.True(t, f.Enabled(OnlinePayments))
	require.False(t, f.Enabled(PaymentCompletion))
}

func TestNew_FileValuesOverrideDefaults(t *testing.T) {
	v := viper.New()
	v.SetDefault("features.online_payments", true)
	v.SetDefault("features.offline_payments", true)
	v.Set("features.offline_payments", false)

	f := New(v, zap.NewNop().Sugar())
	require.True(t, f.Enabled(OnlinePayments))
	require.False(t, f.Enabled(OfflinePayments))
}
