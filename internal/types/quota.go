package types

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// QuotaData is one provider usage snapshot. Count-based providers fill the
// daily/month fields, currency-based providers fill Remaining/Limit/TotalCost.
type QuotaData struct {
	DailyRemaining float64 `json:"daily_remaining"`
	DailyTotal     float64 `json:"daily_total"`
	MonthRemaining float64 `json:"month_remaining"`
	MonthTotal     float64 `json:"month_total"`
	TodayRequests  uint64  `json:"today_requests"`
	TodayCost      float64 `json:"today_cost"`

	Remaining      float64 `json:"remaining,omitempty"`
	Limit          float64 `json:"limit,omitempty"`
	TotalCost      float64 `json:"total_cost,omitempty"`
	Currency       string  `json:"currency,omitempty"`
	RequestCount   uint64  `json:"request_count,omitempty"`
	CanMakeRequest *bool   `json:"can_make_request,omitempty"`
	APIHealthy     *bool   `json:"api_healthy,omitempty"`
}

// countFields are written for every snapshot, so a stored or fetched data
// object missing any of them is not a snapshot.
var countFields = []string{
	"daily_remaining",
	"daily_total",
	"month_remaining",
	"month_total",
	"today_requests",
	"today_cost",
}

// DecodeQuotaData decodes a data object, rejecting one that lacks any count
// field instead of reading the gaps as zero.
func DecodeQuotaData(raw []byte) (QuotaData, error) {
	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return QuotaData{}, errors.New("data is not an object")
	}
	for _, field := range countFields {
		if v := obj.Get(field); !v.Exists() || v.Type == gjson.Null {
			return QuotaData{}, fmt.Errorf("missing field %q", field)
		}
	}

	var data QuotaData
	if err := json.Unmarshal(raw, &data); err != nil {
		return QuotaData{}, err
	}
	return data, nil
}

// CacheRecord is the on-disk cache shape. FetchedAt is unix seconds.
type CacheRecord struct {
	FetchedAt int64     `json:"fetched_at"`
	Data      QuotaData `json:"data"`
}

// SegmentResult is what the statusline host receives for this segment.
type SegmentResult struct {
	Primary   string            `json:"primary"`
	Secondary string            `json:"secondary"`
	Metadata  map[string]string `json:"metadata"`
}

// InputData is the JSON the host statusline writes to stdin. The quota
// segment does not depend on any of it.
type InputData struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	Model          struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"model"`
	Workspace struct {
		CurrentDir string `json:"current_dir"`
		ProjectDir string `json:"project_dir"`
	} `json:"workspace"`
}
