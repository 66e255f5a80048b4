package provider

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sdpower/ccquota-go/internal/config"
	"github.com/sdpower/ccquota-go/internal/presenter"
	"github.com/sdpower/ccquota-go/internal/types"
	"github.com/tidwall/gjson"
)

// Balance is the currency-based provider: a spend limit, the amount left
// and what has been spent, authenticated with a bearer token.
//
// Relay dashboards disagree on field names, so decoding looks the payload up
// under "data", "balance" or the root object and accepts several spellings
// per field.
type Balance struct{}

var (
	balanceContainers  = []string{"data", "balance"}
	remainingFields    = []string{"remaining", "limit_remaining", "remaining_balance", "balance"}
	limitFields        = []string{"limit", "total", "credit_limit", "hard_limit"}
	costFields         = []string{"total_cost", "usage", "used", "total_usage"}
	requestCountFields = []string{"request_count", "requests", "today_requests"}
	canRequestFields   = []string{"can_make_request", "canMakeRequest"}
	healthyFields      = []string{"api_healthy", "apiHealthy", "healthy"}
)

func (Balance) Name() string {
	return config.ProviderBalance
}

func (Balance) Authorize(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

func (b Balance) Decode(body []byte) (types.QuotaData, error) {
	if !gjson.ValidBytes(body) {
		return types.QuotaData{}, types.DecodeError{Provider: b.Name(), Err: errors.New("invalid JSON")}
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return types.QuotaData{}, types.DecodeError{Provider: b.Name(), Err: errors.New("response is not an object")}
	}
	if success := root.Get("success"); success.Type == gjson.False {
		return types.QuotaData{}, types.ErrProviderRejected
	}

	obj := root
	for _, key := range balanceContainers {
		if v := root.Get(key); v.IsObject() {
			obj = v
			break
		}
	}

	remaining, hasRemaining := firstNumber(obj, remainingFields)
	limit, hasLimit := firstNumber(obj, limitFields)
	if !hasRemaining && !hasLimit {
		return types.QuotaData{}, types.DecodeError{Provider: b.Name(), Err: errors.New("no remaining or limit field")}
	}

	cost, hasCost := firstNumber(obj, costFields)
	if !hasRemaining && hasCost {
		remaining = limit - cost
	}

	data := types.QuotaData{
		Remaining: remaining,
		Limit:     limit,
		TotalCost: cost,
	}
	if requests, ok := firstNumber(obj, requestCountFields); ok && requests > 0 {
		data.RequestCount = uint64(requests)
	}
	if currency := obj.Get("currency"); currency.Type == gjson.String {
		data.Currency = currency.String()
	}
	data.CanMakeRequest = firstBool(obj, canRequestFields)
	data.APIHealthy = firstBool(obj, healthyFields)

	return data, nil
}

func firstNumber(obj gjson.Result, fields []string) (float64, bool) {
	for _, field := range fields {
		v := obj.Get(field)
		switch v.Type {
		case gjson.Number:
			return v.Float(), true
		case gjson.String:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func firstBool(obj gjson.Result, fields []string) *bool {
	for _, field := range fields {
		v := obj.Get(field)
		if v.Type == gjson.True || v.Type == gjson.False {
			b := v.Bool()
			return &b
		}
	}
	return nil
}

func (b Balance) Render(data types.QuotaData, cfg config.QuotaConfig) types.SegmentResult {
	pct := presenter.Fraction(data.Remaining, data.Limit)
	icon := presenter.BatteryIcon(pct)
	color := presenter.ColorFor(pct)
	cur := cfg.Currency

	var markers strings.Builder
	if data.CanMakeRequest != nil && !*data.CanMakeRequest {
		markers.WriteString(presenter.BlockedMarker)
	}
	markers.WriteString(presenter.Warning(pct, cfg.WarningThreshold))

	primary := fmt.Sprintf("%s %s%s%s/%s%s",
		icon,
		markers.String(),
		cur, presenter.FormatNumber(data.Remaining),
		cur, presenter.FormatNumber(data.Limit),
	)
	if data.APIHealthy != nil && !*data.APIHealthy {
		primary += " " + presenter.UnhealthyMark
	}

	secondary := fmt.Sprintf("spent %s%s", cur, presenter.FormatNumber(data.TotalCost))
	if cfg.ShowRequests {
		secondary += fmt.Sprintf(" · %d req", data.RequestCount)
	}

	metadata := map[string]string{
		"provider":      b.Name(),
		"remaining":     presenter.FormatRaw(data.Remaining),
		"limit":         presenter.FormatRaw(data.Limit),
		"total_cost":    presenter.FormatRaw(data.TotalCost),
		"request_count": strconv.FormatUint(data.RequestCount, 10),
		"pct":           presenter.FormatPercent(pct),
		"icon":          icon,
		"color":         color,
	}
	if data.Currency != "" {
		metadata["currency"] = data.Currency
	}
	if data.CanMakeRequest != nil {
		metadata["can_make_request"] = strconv.FormatBool(*data.CanMakeRequest)
	}
	if data.APIHealthy != nil {
		metadata["api_healthy"] = strconv.FormatBool(*data.APIHealthy)
	}

	return types.SegmentResult{
		Primary:   primary,
		Secondary: secondary,
		Metadata:  metadata,
	}
}

func (Balance) Gauges(data types.QuotaData, cfg config.QuotaConfig) []presenter.Gauge {
	return []presenter.Gauge{
		{
			Label:    "BALANCE",
			Fraction: presenter.Fraction(data.Remaining, data.Limit),
			Text: fmt.Sprintf("%s%s / %s%s",
				cfg.Currency, presenter.FormatNumber(data.Remaining),
				cfg.Currency, presenter.FormatNumber(data.Limit)),
		},
	}
}
