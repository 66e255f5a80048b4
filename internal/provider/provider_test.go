package provider

import (
	"net/http"
	"testing"

	"github.com/sdpower/ccquota-go/internal/config"
	"github.com/sdpower/ccquota-go/internal/presenter"
	"github.com/sdpower/ccquota-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestForConfig(t *testing.T) {
	cfg := config.Default()
	assert.IsType(t, Dashboard{}, ForConfig(cfg))

	cfg.Provider = config.ProviderBalance
	assert.IsType(t, Balance{}, ForConfig(cfg))

	cfg.Provider = "unknown"
	assert.IsType(t, Dashboard{}, ForConfig(cfg))
}

func TestAuthorize(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://example.invalid", nil)
	require.NoError(t, err)
	Dashboard{}.Authorize(req, "tok")
	assert.Equal(t, "satoken-user=tok", req.Header.Get("Cookie"))
	assert.Empty(t, req.Header.Get("Authorization"))

	req, err = http.NewRequest(http.MethodGet, "http://example.invalid", nil)
	require.NoError(t, err)
	Balance{}.Authorize(req, "tok")
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("Cookie"))
}

func TestDashboardDecode(t *testing.T) {
	t.Run("maps the data envelope", func(t *testing.T) {
		data, err := Dashboard{}.Decode([]byte(`{
			"success": true,
			"data": {"daily_remaining": 250, "daily_total": 1000, "month_remaining": 8000,
			         "month_total": 30000, "today_requests": 17, "today_cost": 2.5}
		}`))
		require.NoError(t, err)
		assert.Equal(t, types.QuotaData{
			DailyRemaining: 250, DailyTotal: 1000,
			MonthRemaining: 8000, MonthTotal: 30000,
			TodayRequests: 17, TodayCost: 2.5,
		}, data)
	})

	t.Run("success false is rejected", func(t *testing.T) {
		_, err := Dashboard{}.Decode([]byte(`{"success": false, "data": {}}`))
		assert.ErrorIs(t, err, types.ErrProviderRejected)
	})

	t.Run("missing data is a decode error", func(t *testing.T) {
		_, err := Dashboard{}.Decode([]byte(`{"success": true}`))
		var decodeErr types.DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})

	t.Run("incomplete data is a decode error", func(t *testing.T) {
		bodies := map[string]string{
			"empty object": `{"success": true, "data": {}}`,
			"camelCase keys": `{"success": true, "data": {"dailyRemaining": 250, "dailyTotal": 1000,
				"monthRemaining": 8000, "monthTotal": 30000, "todayRequests": 17, "todayCost": 2.5}}`,
			"missing today_cost": `{"success": true, "data": {"daily_remaining": 250, "daily_total": 1000,
				"month_remaining": 8000, "month_total": 30000, "today_requests": 17}}`,
			"null field": `{"success": true, "data": {"daily_remaining": null, "daily_total": 1000,
				"month_remaining": 8000, "month_total": 30000, "today_requests": 17, "today_cost": 2.5}}`,
			"null data": `{"success": true, "data": null}`,
		}
		for name, body := range bodies {
			t.Run(name, func(t *testing.T) {
				_, err := Dashboard{}.Decode([]byte(body))
				var decodeErr types.DecodeError
				assert.ErrorAs(t, err, &decodeErr)
			})
		}
	})

	t.Run("wrong field type is a decode error", func(t *testing.T) {
		_, err := Dashboard{}.Decode([]byte(`{"success": true, "data": {"daily_total": "lots"}}`))
		var decodeErr types.DecodeError
		assert.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, config.ProviderDashboard, decodeErr.Provider)
	})
}

func TestDashboardRender(t *testing.T) {
	data := types.QuotaData{
		DailyRemaining: 250, DailyTotal: 1000,
		MonthRemaining: 12000, MonthTotal: 30000,
		TodayRequests: 42, TodayCost: 3.75,
	}

	t.Run("formats remaining and total", func(t *testing.T) {
		result := Dashboard{}.Render(data, config.Default())
		assert.Equal(t, presenter.BatteryIcon(0.25)+" 日 250/1.0k", result.Primary)
		assert.Equal(t, "月 12.0k/30.0k", result.Secondary)
		assert.Equal(t, map[string]string{
			"provider":        "dashboard",
			"daily_remaining": "250",
			"daily_total":     "1000",
			"month_remaining": "12000",
			"month_total":     "30000",
			"today_requests":  "42",
			"today_cost":      "3.75",
			"daily_pct":       "25.0",
			"month_pct":       "40.0",
			"icon":            presenter.BatteryIcon(0.25),
			"color":           presenter.ColorYellow,
		}, result.Metadata)
	})

	t.Run("request count only when enabled", func(t *testing.T) {
		cfg := config.Default()
		cfg.ShowRequests = true
		result := Dashboard{}.Render(data, cfg)
		assert.Equal(t, "月 12.0k/30.0k · 42次", result.Secondary)
	})

	t.Run("warning below threshold", func(t *testing.T) {
		low := data
		low.DailyRemaining = 120
		cfg := config.Default()
		cfg.WarningThreshold = 0.15

		result := Dashboard{}.Render(low, cfg)
		assert.Contains(t, result.Primary, presenter.WarningMarker)
		assert.Equal(t, presenter.BatteryIcon(0.05), result.Metadata["icon"], "lowest non-alert icon")
		assert.NotEqual(t, presenter.BatteryIcon(0.0), result.Metadata["icon"])
		assert.Equal(t, presenter.ColorYellow, result.Metadata["color"], "lowest non-alert color")
		assert.Equal(t, "12.0", result.Metadata["daily_pct"])
	})

	t.Run("zero totals do not divide", func(t *testing.T) {
		result := Dashboard{}.Render(types.QuotaData{DailyRemaining: 5}, config.Default())
		assert.Equal(t, "0.0", result.Metadata["daily_pct"])
		assert.Equal(t, "0.0", result.Metadata["month_pct"])
		assert.Equal(t, presenter.ColorRed, result.Metadata["color"])
		assert.Contains(t, result.Primary, presenter.WarningMarker)
	})

	t.Run("pure", func(t *testing.T) {
		assert.Equal(t, Dashboard{}.Render(data, config.Default()), Dashboard{}.Render(data, config.Default()))
	})
}

func TestBalanceDecode(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want types.QuotaData
	}{
		{
			name: "root object",
			body: `{"remaining": 12.5, "limit": 50, "total_cost": 37.5, "currency": "USD",
			        "request_count": 7, "can_make_request": true, "api_healthy": false}`,
			want: types.QuotaData{
				Remaining: 12.5, Limit: 50, TotalCost: 37.5, Currency: "USD",
				RequestCount: 7, CanMakeRequest: boolPtr(true), APIHealthy: boolPtr(false),
			},
		},
		{
			name: "openrouter key payload",
			body: `{"data": {"label": "sk-or-v1-abc", "usage": 12.25, "limit": 20, "limit_remaining": 7.75, "is_free_tier": false}}`,
			want: types.QuotaData{Remaining: 7.75, Limit: 20, TotalCost: 12.25},
		},
		{
			name: "nested balance with camel case flags",
			body: `{"success": true, "balance": {"remaining_balance": "3.5", "credit_limit": "10", "used": 6.5, "canMakeRequest": false, "healthy": true}}`,
			want: types.QuotaData{
				Remaining: 3.5, Limit: 10, TotalCost: 6.5,
				CanMakeRequest: boolPtr(false), APIHealthy: boolPtr(true),
			},
		},
		{
			name: "remaining derived from limit and cost",
			body: `{"data": {"limit": 100, "total_usage": 40}}`,
			want: types.QuotaData{Remaining: 60, Limit: 100, TotalCost: 40},
		},
		{
			name: "null limit is absent",
			body: `{"data": {"limit": null, "limit_remaining": null, "usage": 4, "balance": 9}}`,
			want: types.QuotaData{Remaining: 9, TotalCost: 4},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Balance{}.Decode([]byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("success false is rejected", func(t *testing.T) {
		_, err := Balance{}.Decode([]byte(`{"success": false, "remaining": 1, "limit": 2}`))
		assert.ErrorIs(t, err, types.ErrProviderRejected)
	})

	for name, body := range map[string]string{
		"invalid json":   `{"remaining": `,
		"not an object":  `[1, 2]`,
		"no quota field": `{"data": {"usage": 4}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Balance{}.Decode([]byte(body))
			var decodeErr types.DecodeError
			assert.ErrorAs(t, err, &decodeErr)
		})
	}
}

func TestBalanceRender(t *testing.T) {
	data := types.QuotaData{Remaining: 37.5, Limit: 50, TotalCost: 12.5, RequestCount: 9, Currency: "USD"}

	t.Run("healthy balance", func(t *testing.T) {
		result := Balance{}.Render(data, config.Default())
		assert.Equal(t, presenter.BatteryIcon(0.75)+" $37.5/$50.0", result.Primary)
		assert.Equal(t, "spent $12.5", result.Secondary)
		assert.Equal(t, presenter.ColorGreen, result.Metadata["color"])
		assert.Equal(t, "75.0", result.Metadata["pct"])
		assert.Equal(t, "37.5", result.Metadata["remaining"])
		assert.Equal(t, "50", result.Metadata["limit"])
		assert.Equal(t, "12.5", result.Metadata["total_cost"])
		assert.Equal(t, "9", result.Metadata["request_count"])
		assert.Equal(t, "USD", result.Metadata["currency"])
		assert.NotContains(t, result.Metadata, "can_make_request")
		assert.NotContains(t, result.Metadata, "api_healthy")
	})

	t.Run("blocked, low and unhealthy", func(t *testing.T) {
		low := data
		low.Remaining = 2
		low.CanMakeRequest = boolPtr(false)
		low.APIHealthy = boolPtr(false)
		cfg := config.Default()
		cfg.Currency = "¥"
		cfg.ShowRequests = true

		result := Balance{}.Render(low, cfg)
		assert.Equal(t, presenter.BatteryIcon(0.04)+" ⛔⚠¥2.0/¥50.0 ✗", result.Primary)
		assert.Equal(t, "spent ¥12.5 · 9 req", result.Secondary)
		assert.Equal(t, presenter.ColorRed, result.Metadata["color"])
		assert.Equal(t, "false", result.Metadata["can_make_request"])
		assert.Equal(t, "false", result.Metadata["api_healthy"])
	})

	t.Run("unlimited key has no ratio", func(t *testing.T) {
		result := Balance{}.Render(types.QuotaData{Remaining: 9}, config.Default())
		assert.Equal(t, "0.0", result.Metadata["pct"])
		assert.Equal(t, presenter.ColorRed, result.Metadata["color"])
	})
}

func TestGauges(t *testing.T) {
	data := types.QuotaData{DailyRemaining: 50, DailyTotal: 100, MonthRemaining: 0, MonthTotal: 0, Remaining: 1, Limit: 4}

	gauges := Dashboard{}.Gauges(data, config.Default())
	require.Len(t, gauges, 2)
	assert.Equal(t, "DAILY", gauges[0].Label)
	assert.Equal(t, 0.5, gauges[0].Fraction)
	assert.Equal(t, "50.0 / 100", gauges[0].Text)
	assert.Equal(t, 0.0, gauges[1].Fraction)

	gauges = Balance{}.Gauges(data, config.Default())
	require.Len(t, gauges, 1)
	assert.Equal(t, 0.25, gauges[0].Fraction)
	assert.Equal(t, "$1.0 / $4.0", gauges[0].Text)
}
