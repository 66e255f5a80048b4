package quota

import (
	"context"
	"time"

	"github.com/sdpower/ccquota-go/internal/cache"
	"github.com/sdpower/ccquota-go/internal/config"
	"github.com/sdpower/ccquota-go/internal/credential"
	"github.com/sdpower/ccquota-go/internal/fetcher"
	"github.com/sdpower/ccquota-go/internal/provider"
	"github.com/sdpower/ccquota-go/internal/types"
	log "github.com/sirupsen/logrus"
)

// Outcome names the step of the fallback chain that produced a result.
type Outcome int

const (
	Miss Outcome = iota
	CacheHit
	Fetched
	StaleFallback
)

func (o Outcome) String() string {
	switch o {
	case CacheHit:
		return "cache hit"
	case Fetched:
		return "fetched"
	case StaleFallback:
		return "stale cache"
	default:
		return "no data"
	}
}

// Fetcher retrieves a fresh snapshot from the provider endpoint.
type Fetcher interface {
	Fetch(ctx context.Context, cfg config.QuotaConfig, p provider.Provider, token string) (types.QuotaData, error)
}

// Result is everything one pipeline run learned.
type Result struct {
	Config    config.QuotaConfig
	Provider  provider.Provider
	Outcome   Outcome
	Data      types.QuotaData
	FetchedAt time.Time
}

// OK reports whether any data was obtained.
func (r Result) OK() bool {
	return r.Outcome != Miss
}

// Pipeline resolves quota data from cache, network and stale cache, in
// that order. It holds no state between runs besides the cache file.
type Pipeline struct {
	paths   config.Paths
	store   *cache.Store
	fetcher Fetcher
	now     func() time.Time
}

type Option func(*Pipeline)

// WithFetcher replaces the HTTP fetcher.
func WithFetcher(f Fetcher) Option {
	return func(p *Pipeline) {
		p.fetcher = f
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

func New(paths config.Paths, opts ...Option) *Pipeline {
	p := &Pipeline{
		paths:   paths,
		store:   cache.New(paths.CacheFile()),
		fetcher: fetcher.New(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) Paths() config.Paths {
	return p.paths
}

// Resolve runs one invocation of the fallback chain:
// fresh cache, then fetch (only with a credential), then stale cache.
// At most one network call is made.
func (p *Pipeline) Resolve(ctx context.Context) Result {
	cfg := config.Resolve(p.paths.ConfigFile())
	prov := provider.ForConfig(cfg)
	result := Result{Config: cfg, Provider: prov}
	now := p.now()

	if record, ok := p.store.Load(); ok && cache.Fresh(record, now, cfg.TTL()) {
		log.Debugf("quota: cache hit (fetched_at=%d, ttl=%ds)", record.FetchedAt, cfg.CacheTTL)
		return withRecord(result, CacheHit, record)
	}

	if token, ok := credential.Load(p.paths.TokenFile()); ok {
		data, err := p.fetcher.Fetch(ctx, cfg, prov, token)
		if err == nil {
			record := types.CacheRecord{FetchedAt: now.Unix(), Data: data}
			if err := p.store.Save(record); err != nil {
				log.Debugf("quota: cache write skipped: %v", err)
			}
			log.Debugf("quota: fetched fresh data from %s", cfg.APIURL)
			return withRecord(result, Fetched, record)
		}
		log.Debugf("quota: fetch failed: %v", err)
	} else {
		log.Debugf("quota: no token at %s, skipping fetch", p.paths.TokenFile())
	}

	if record, ok := p.store.Load(); ok {
		log.Debugf("quota: using stale cache (fetched_at=%d)", record.FetchedAt)
		return withRecord(result, StaleFallback, record)
	}

	log.Debugf("quota: no data available")
	return result
}

func withRecord(result Result, outcome Outcome, record types.CacheRecord) Result {
	result.Outcome = outcome
	result.Data = record.Data
	result.FetchedAt = time.Unix(record.FetchedAt, 0)
	return result
}

// Collect is the statusline contract: a rendered segment, or false when no
// data could be obtained and the segment should be omitted.
func (p *Pipeline) Collect(ctx context.Context, _ types.InputData) (types.SegmentResult, bool) {
	result := p.Resolve(ctx)
	if !result.OK() {
		return types.SegmentResult{}, false
	}
	return result.Provider.Render(result.Data, result.Config), true
}
