package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/moby/sys/atomicwriter"
	"github.com/sdpower/ccquota-go/internal/types"
	log "github.com/sirupsen/logrus"
)

// Store persists a single CacheRecord as JSON at a fixed path.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the cached record. A missing, unreadable or corrupt file is
// reported as absent, never as an error.
func (s *Store) Load() (types.CacheRecord, bool) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Debugf("quota cache: read %s: %v", s.path, err)
		}
		return types.CacheRecord{}, false
	}

	var raw struct {
		FetchedAt *int64          `json:"fetched_at"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(content, &raw); err != nil {
		log.Debugf("quota cache: corrupt %s: %v", s.path, err)
		return types.CacheRecord{}, false
	}
	if raw.FetchedAt == nil {
		log.Debugf("quota cache: %s is missing fetched_at", s.path)
		return types.CacheRecord{}, false
	}
	data, err := types.DecodeQuotaData(raw.Data)
	if err != nil {
		log.Debugf("quota cache: %s has no usable data: %v", s.path, err)
		return types.CacheRecord{}, false
	}

	return types.CacheRecord{FetchedAt: *raw.FetchedAt, Data: data}, true
}

// Save overwrites the cache file with record. The file is replaced
// atomically so concurrent readers see either the old or the new record.
func (s *Store) Save(record types.CacheRecord) error {
	content, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := atomicwriter.WriteFile(s.path, content, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// Fresh reports whether record is younger than ttl at now. A timestamp in
// the future counts as zero elapsed time.
func Fresh(record types.CacheRecord, now time.Time, ttl time.Duration) bool {
	elapsed := now.Sub(time.Unix(record.FetchedAt, 0))
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed < ttl
}
