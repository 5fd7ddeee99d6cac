package featureflag

import (
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Names of the flags gating the payment endpoints.
const (
	OnlinePayments     = "online_payments"
	OnlinePaymentsV2   = "online_payments_v2"
	PaymentCompletion  = "payment_completion"
	OfflinePayments    = "offline_payments"
	OfflinePaymentsV2  = "offline_payments_v2"
	PaymentEventsAdmin = "payment_events_admin"
)

// Flags is a concurrency-safe name -> enabled lookup. Unknown flags are disabled.
type Flags struct {
	mu    sync.RWMutex
	flags map[string]bool
}

func NewStatic(flags map[string]bool) *Flags {
	f := &Flags{}
	f.Replace(flags)
	return f
}

func (f *Flags) Enabled(name string) bool {
	if f == nil {
		return false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.flags[strings.ToLower(name)]
}

// Replace swaps the whole flag set.
func (f *Flags) Replace(flags map[string]bool) {
	next := make(map[string]bool, len(flags))
	for k, v := range flags {
		next[strings.ToLower(k)] = v
	}
	f.mu.Lock()
	f.flags = next
	f.mu.Unlock()
}

func fromViper(v *viper.Viper) map[string]bool {
	out := map[string]bool{}
	// AllKeys merges defaults with the file; GetStringMap("features") would not
	for _, k := range v.AllKeys() {
		if name, ok := strings.CutPrefix(k, "features."); ok {
			out[name] = v.GetBool(k)
		}
	}
	return out
}

// New loads flags from the "features" section and keeps them in sync with the config file.
func New(v *viper.Viper, log *zap.SugaredLogger) *Flags {
	f := NewStatic(fromViper(v))
	if v.ConfigFileUsed() == "" {
		return f
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		f.Replace(fromViper(v))
		log.Infow("feature flags reloaded", "file", e.Name)
	})
	v.WatchConfig()
	return f
}

var Module = fx.Options(
	fx.Provide(New),
)
