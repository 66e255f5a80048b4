package provider

import (
	"net/http"

	"github.com/sdpower/ccquota-go/internal/config"
	"github.com/sdpower/ccquota-go/internal/presenter"
	"github.com/sdpower/ccquota-go/internal/types"
)

// Provider captures everything that differs between quota backends: how the
// credential is attached, how the response is decoded and how the snapshot
// is laid out for display.
type Provider interface {
	Name() string
	Authorize(req *http.Request, token string)
	Decode(body []byte) (types.QuotaData, error)
	Render(data types.QuotaData, cfg config.QuotaConfig) types.SegmentResult
	Gauges(data types.QuotaData, cfg config.QuotaConfig) []presenter.Gauge
}

var registry = map[string]Provider{
	config.ProviderDashboard: Dashboard{},
	config.ProviderBalance:   Balance{},
}

// ForConfig returns the provider selected by cfg, falling back to the
// dashboard provider for names the registry does not know.
func ForConfig(cfg config.QuotaConfig) Provider {
	if p, ok := registry[cfg.Provider]; ok {
		return p
	}
	return Dashboard{}
}
