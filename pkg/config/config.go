package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DBConfig struct {
	// DSN is optional; an empty DSN disables the payment event log.
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type Env string

const (
	EnvDev  Env = "dev"
	EnvProd Env = "prod"
)

type Config struct {
	Env         Env              `mapstructure:"env"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DBConfig         `mapstructure:"database"`
	MetricsAddr string           `mapstructure:"metrics_addr"`
	HTTPClient  HTTPClientConfig `mapstructure:"http_client"`
	GovPay      GovPayConfig     `mapstructure:"govpay"`
	Ledger      LedgerConfig     `mapstructure:"ledger"`
	Payment     PaymentConfig    `mapstructure:"payment"`
	Features    map[string]bool  `mapstructure:"features"`
	Admin       AdminConfig      `mapstructure:"admin"`
}

// AdminConfig throttles the admin endpoints per client IP.
type AdminConfig struct {
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`
	RateLimitBurst     int `mapstructure:"rate_limit_burst"`
}

type HTTPClientConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// GovPayConfig points at the hosted payment page provider.
type GovPayConfig struct {
	BaseURL          string `mapstructure:"base_url"`
	BearerToken      string `mapstructure:"bearer_token"`
	InitiateEndpoint string `mapstructure:"initiate_endpoint"`
	StatusEndpoint   string `mapstructure:"status_endpoint"`
}

// LedgerConfig points at the internal payments service.
type LedgerConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	InsertEndpoint  string `mapstructure:"insert_endpoint"`
	UpdateEndpoint  string `mapstructure:"update_endpoint"`
	DetailsEndpoint string `mapstructure:"details_endpoint"`
	OfflineEndpoint string `mapstructure:"offline_endpoint"`
}

type PaymentConfig struct {
	// ReturnURL is where the hosted page sends the user back; the external payment id is appended as ?id=.
	ReturnURL string `mapstructure:"return_url"`
	// ErrorURL is where the browser lands when an online payment cannot be started.
	ErrorURL string `mapstructure:"error_url"`
}

// Validate reports every missing required value at once.
func (c *Config) Validate() error {
	var errs []error
	required := []struct {
		key, val string
	}{
		{"govpay.base_url", c.GovPay.BaseURL},
		{"govpay.bearer_token", c.GovPay.BearerToken},
		{"govpay.initiate_endpoint", c.GovPay.InitiateEndpoint},
		{"govpay.status_endpoint", c.GovPay.StatusEndpoint},
		{"ledger.base_url", c.Ledger.BaseURL},
		{"ledger.insert_endpoint", c.Ledger.InsertEndpoint},
		{"ledger.update_endpoint", c.Ledger.UpdateEndpoint},
		{"ledger.details_endpoint", c.Ledger.DetailsEndpoint},
		{"ledger.offline_endpoint", c.Ledger.OfflineEndpoint},
		{"payment.return_url", c.Payment.ReturnURL},
		{"payment.error_url", c.Payment.ErrorURL},
	}
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			errs = append(errs, fmt.Errorf("missing required config %q", r.key))
		}
	}
	if c.HTTPClient.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("http_client.timeout must be positive"))
	}
	return errors.Join(errs...)
}

// NewViper builds the viper instance shared by Config and the feature flag store.
func NewViper() (*viper.Viper, error) {
	v := viper.New()
	// Allow overriding config file via env:
	// - APP_CONFIG_FILE: absolute or relative file path (e.g., /etc/app/prod.yaml)
	// - APP_CONFIG_NAME: config base name without extension (default: "config")
	if file := os.Getenv("APP_CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	} else {
		cfgName := os.Getenv("APP_CONFIG_NAME")
		if cfgName == "" {
			cfgName = "config"
		}
		v.SetConfigName(cfgName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8888)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("metrics_addr", ":90")
	v.SetDefault("http_client.timeout", 30*time.Second)
	v.SetDefault("admin.rate_limit_per_minute", 60)
	v.SetDefault("admin.rate_limit_burst", 10)
	v.SetDefault("govpay.base_url", "https://publicapi.payments.service.gov.uk/v1")
	v.SetDefault("govpay.initiate_endpoint", "payments")
	v.SetDefault("govpay.status_endpoint", "payments")
	v.SetDefault("ledger.insert_endpoint", "payments")
	v.SetDefault("ledger.update_endpoint", "payments")
	v.SetDefault("ledger.details_endpoint", "payments")
	v.SetDefault("ledger.offline_endpoint", "offline-payments")
	// viper only binds env vars for keys it knows about
	v.SetDefault("govpay.bearer_token", "")
	v.SetDefault("ledger.base_url", "")
	v.SetDefault("payment.return_url", "")
	v.SetDefault("payment.error_url", "")
	// endpoints are on unless the config turns them off
	for _, name := range []string{"online_payments", "online_payments_v2", "payment_completion", "offline_payments", "offline_payments_v2", "payment_events_admin"} {
		v.SetDefault("features."+name, true)
	}
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}

var Module = fx.Options(
	fx.Provide(NewViper),
	fx.Provide(Load),
)
