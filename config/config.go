package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "MEMES"

// Keys shared between viper and the CLI flags bound to them.
const (
	KeyBaseURL        = "base_url"
	KeyRequestTimeout = "request_timeout"
	KeyPollInterval   = "poll_interval"
	KeyNATSUrl        = "nats_url"
	KeyNATSSubject    = "nats_subject"
	KeyOpsAddr        = "ops_addr"
	KeyLogLevel       = "log_level"
)

type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	PollInterval   time.Duration
	NATSUrl        string
	NATSSubject    string
	OpsAddr        string
	LogLevel       string
}

// New returns a viper instance with defaults applied and MEMES_* environment
// variables enabled.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyBaseURL, "http://localhost:8080")
	v.SetDefault(KeyRequestTimeout, "30s")
	v.SetDefault(KeyPollInterval, "5m")
	v.SetDefault(KeyNATSUrl, "")
	v.SetDefault(KeyNATSSubject, "memes.recent")
	v.SetDefault(KeyOpsAddr, ":9090")
	v.SetDefault(KeyLogLevel, "info")
	return v
}

func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		BaseURL:        strings.TrimRight(v.GetString(KeyBaseURL), "/"),
		RequestTimeout: v.GetDuration(KeyRequestTimeout),
		PollInterval:   v.GetDuration(KeyPollInterval),
		NATSUrl:        v.GetString(KeyNATSUrl),
		NATSSubject:    v.GetString(KeyNATSSubject),
		OpsAddr:        v.GetString(KeyOpsAddr),
		LogLevel:       strings.ToLower(v.GetString(KeyLogLevel)),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return errors.Wrapf(err, "invalid %s_BASE_URL", envPrefix)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("invalid %s_BASE_URL %q: expected http(s)://host", envPrefix, c.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.Errorf("%s_REQUEST_TIMEOUT must be a positive duration", envPrefix)
	}
	if c.PollInterval <= 0 {
		return errors.Errorf("%s_POLL_INTERVAL must be a positive duration", envPrefix)
	}
	if c.NATSUrl != "" && c.NATSSubject == "" {
		return errors.Errorf("%s_NATS_SUBJECT is required when %s_NATS_URL is set", envPrefix, envPrefix)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid %s_LOG_LEVEL", envPrefix)
	}
	return nil
}
