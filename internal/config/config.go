package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

const (
	ProviderDashboard = "dashboard"
	ProviderBalance   = "balance"
)

const (
	defaultCacheTTL         = 60
	defaultTimeout          = 3
	defaultWarningThreshold = 0.15
	defaultCurrency         = "$"
)

var defaultAPIURLs = map[string]string{
	ProviderDashboard: "https://cc.yhlxj.com/8081/api/applet/claude/code/get/dashboard",
	ProviderBalance:   "https://openrouter.ai/api/v1/key",
}

// QuotaConfig holds the resolved settings for one invocation.
type QuotaConfig struct {
	Provider         string  `toml:"provider"`
	APIURL           string  `toml:"api_url"`
	CacheTTL         int64   `toml:"cache_ttl"`
	Timeout          int64   `toml:"timeout"`
	ShowRequests     bool    `toml:"show_requests"`
	WarningThreshold float64 `toml:"warning_threshold"`
	Currency         string  `toml:"currency"`
}

// Default returns the built-in configuration used when no settings file
// exists or it cannot be parsed.
func Default() QuotaConfig {
	return QuotaConfig{
		Provider:         ProviderDashboard,
		APIURL:           defaultAPIURLs[ProviderDashboard],
		CacheTTL:         defaultCacheTTL,
		Timeout:          defaultTimeout,
		ShowRequests:     false,
		WarningThreshold: defaultWarningThreshold,
		Currency:         defaultCurrency,
	}
}

// DefaultAPIURL returns the endpoint used for provider when api_url is unset.
func DefaultAPIURL(provider string) string {
	return defaultAPIURLs[provider]
}

// Resolve loads the TOML settings file at path. It never fails: a missing,
// unreadable or malformed file yields Default().
func Resolve(path string) QuotaConfig {
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debugf("quota config: read %s: %v, using defaults", path, err)
		}
		return Default()
	}

	cfg := Default()
	cfg.APIURL = ""
	md, err := toml.Decode(string(content), &cfg)
	if err != nil {
		log.Debugf("quota config: parse %s: %v, using defaults", path, err)
		return Default()
	}
	for _, key := range md.Undecoded() {
		log.Debugf("quota config: ignoring unknown key %q", key.String())
	}

	return cfg.normalize()
}

func (c QuotaConfig) normalize() QuotaConfig {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if _, ok := defaultAPIURLs[c.Provider]; !ok {
		log.Debugf("quota config: unknown provider %q, using %s", c.Provider, ProviderDashboard)
		c.Provider = ProviderDashboard
	}

	c.APIURL = strings.TrimSpace(c.APIURL)
	if c.APIURL == "" {
		c.APIURL = defaultAPIURLs[c.Provider]
	}

	if c.CacheTTL < 0 {
		c.CacheTTL = 0
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}

	if c.WarningThreshold < 0 {
		c.WarningThreshold = 0
	}
	if c.WarningThreshold > 1 {
		c.WarningThreshold = 1
	}

	c.Currency = strings.TrimSpace(c.Currency)
	if c.Currency == "" {
		c.Currency = defaultCurrency
	}
	return c
}

// TTL is the cache lifetime as a duration.
func (c QuotaConfig) TTL() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// RequestTimeout bounds the single HTTP call made per invocation.
func (c QuotaConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
