package provider

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sdpower/ccquota-go/internal/config"
	"github.com/sdpower/ccquota-go/internal/presenter"
	"github.com/sdpower/ccquota-go/internal/types"
)

const dashboardCookie = "satoken-user"

// Dashboard is the count-based provider: daily and monthly request quotas,
// authenticated with a session cookie.
type Dashboard struct{}

type dashboardResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func (Dashboard) Name() string {
	return config.ProviderDashboard
}

func (Dashboard) Authorize(req *http.Request, token string) {
	req.Header.Set("Cookie", fmt.Sprintf("%s=%s", dashboardCookie, token))
}

func (d Dashboard) Decode(body []byte) (types.QuotaData, error) {
	var resp dashboardResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return types.QuotaData{}, types.DecodeError{Provider: d.Name(), Err: err}
	}
	if !resp.Success {
		return types.QuotaData{}, types.ErrProviderRejected
	}
	data, err := types.DecodeQuotaData(resp.Data)
	if err != nil {
		return types.QuotaData{}, types.DecodeError{Provider: d.Name(), Err: err}
	}
	return data, nil
}

func (d Dashboard) Render(data types.QuotaData, cfg config.QuotaConfig) types.SegmentResult {
	dailyPct := presenter.Fraction(data.DailyRemaining, data.DailyTotal)
	monthPct := presenter.Fraction(data.MonthRemaining, data.MonthTotal)

	icon := presenter.BatteryIcon(dailyPct)
	color := presenter.ColorFor(dailyPct)

	primary := fmt.Sprintf("%s %s日 %s/%s",
		icon,
		presenter.Warning(dailyPct, cfg.WarningThreshold),
		presenter.FormatNumber(data.DailyRemaining),
		presenter.FormatNumber(data.DailyTotal),
	)

	secondary := fmt.Sprintf("月 %s/%s",
		presenter.FormatNumber(data.MonthRemaining),
		presenter.FormatNumber(data.MonthTotal),
	)
	if cfg.ShowRequests {
		secondary += fmt.Sprintf(" · %d次", data.TodayRequests)
	}

	return types.SegmentResult{
		Primary:   primary,
		Secondary: secondary,
		Metadata: map[string]string{
			"provider":        d.Name(),
			"daily_remaining": presenter.FormatRaw(data.DailyRemaining),
			"daily_total":     presenter.FormatRaw(data.DailyTotal),
			"month_remaining": presenter.FormatRaw(data.MonthRemaining),
			"month_total":     presenter.FormatRaw(data.MonthTotal),
			"today_requests":  strconv.FormatUint(data.TodayRequests, 10),
			"today_cost":      presenter.FormatRaw(data.TodayCost),
			"daily_pct":       presenter.FormatPercent(dailyPct),
			"month_pct":       presenter.FormatPercent(monthPct),
			"icon":            icon,
			"color":           color,
		},
	}
}

func (Dashboard) Gauges(data types.QuotaData, _ config.QuotaConfig) []presenter.Gauge {
	return []presenter.Gauge{
		{
			Label:    "DAILY",
			Fraction: presenter.Fraction(data.DailyRemaining, data.DailyTotal),
			Text:     fmt.Sprintf("%s / %s", presenter.FormatNumber(data.DailyRemaining), presenter.FormatNumber(data.DailyTotal)),
		},
		{
			Label:    "MONTHLY",
			Fraction: presenter.Fraction(data.MonthRemaining, data.MonthTotal),
			Text:     fmt.Sprintf("%s / %s", presenter.FormatNumber(data.MonthRemaining), presenter.FormatNumber(data.MonthTotal)),
		},
	}
}
