package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL = "https://api.colare.co"
	DefaultTimeout = 30 * time.Second
)

type APIConfig struct {
	BaseURL           string        `mapstructure:"base_url" validate:"required,url"`
	WebURL            string        `mapstructure:"web_url" validate:"omitempty,url"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"gte=0"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" validate:"gte=0"`
}

func (config APIConfig) bindEnvironmentVariables(v *viper.Viper) error {
	if err := v.BindEnv("api.base_url", "RECRUIT_API_BASE_URL", "NEXT_PUBLIC_API_BASE_URL"); err != nil {
		return err
	}
	if err := v.BindEnv("api.web_url", "RECRUIT_WEB_URL"); err != nil {
		return err
	}
	if err := v.BindEnv("api.timeout", "RECRUIT_API_TIMEOUT"); err != nil {
		return err
	}
	return v.BindEnv("api.requests_per_second", "RECRUIT_API_RPS")
}

// deriveWebURL maps https://api.example.com to https://example.com.
// Hosts without an api. prefix are returned unchanged.
func deriveWebURL(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	u.Host = strings.TrimPrefix(u.Host, "api.")
	u.Path = ""
	return u.String()
}
