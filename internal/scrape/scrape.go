// Package scrape orchestrates per-job review extraction: platform dispatch,
// retried page fetches, platform-specific pagination, and date-window
// filtering. Execution is strictly sequential: one job, one page, one
// attempt at a time.
package scrape

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/reviews-cli/internal/config"
	"github.com/sells-group/reviews-cli/internal/dates"
	"github.com/sells-group/reviews-cli/internal/model"
	"github.com/sells-group/reviews-cli/internal/parse"
	"github.com/sells-group/reviews-cli/internal/resilience"
	"github.com/sells-group/reviews-cli/pkg/relay"
)

// Pipeline runs scrape jobs end to end against a fetch capability.
type Pipeline struct {
	fetcher     relay.Client
	cfg         config.ScrapeConfig
	relayWait   time.Duration
	retryDelay  time.Duration
	pageLimiter *rate.Limiter
	jobLimiter  *rate.Limiter
	now         func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock overrides the reference instant used to resolve relative dates.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// WithRelayWait sets the relay render-wait hint passed on platforms that
// need it.
func WithRelayWait(d time.Duration) Option {
	return func(p *Pipeline) {
		p.relayWait = d
	}
}

// WithRetryDelay overrides the configured inter-attempt delay.
func WithRetryDelay(d time.Duration) Option {
	return func(p *Pipeline) {
		p.retryDelay = d
	}
}

// New creates a Pipeline over the given fetcher.
func New(fetcher relay.Client, cfg config.ScrapeConfig, opts ...Option) *Pipeline {
	if cfg.MaxReviews <= 0 {
		cfg.MaxReviews = 100
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	p := &Pipeline{
		fetcher:     fetcher,
		cfg:         cfg,
		relayWait:   2 * time.Second,
		retryDelay:  cfg.RetryDelay(),
		pageLimiter: rate.NewLimiter(limit(cfg.PageDelay()), 1),
		jobLimiter:  rate.NewLimiter(limit(cfg.JobDelay()), 1),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Burst-1 limiters start with a token banked; spend it so the first
	// Wait already paces.
	p.pageLimiter.Allow()
	p.jobLimiter.Allow()
	return p
}

// Run executes one job: resolve the platform, drive its page strategy,
// filter the accumulated records to the job's inclusive date window.
func (p *Pipeline) Run(ctx context.Context, job model.ScrapeJob) (*model.ScrapeResult, error) {
	platform, err := model.DetectPlatform(job.URL)
	if err != nil {
		return nil, err
	}
	parser, err := parse.ForPlatform(platform)
	if err != nil {
		return nil, err
	}

	var (
		summary model.ProductSummary
		records []model.ReviewRecord
	)
	switch platform {
	case model.PlatformG2:
		summary, records, err = p.scrapeG2(ctx, job, parser)
	case model.PlatformCapterra:
		summary, records, err = p.scrapeCapterra(ctx, job, parser)
	case model.PlatformTrustpilot:
		summary, records, err = p.scrapeTrustpilot(ctx, job, parser)
	}
	if err != nil {
		return nil, err
	}

	filtered := p.filterByDate(records, job.StartDate, job.EndDate)
	if platform == model.PlatformG2 && len(filtered) > p.cfg.MaxReviews {
		filtered = filtered[:p.cfg.MaxReviews]
	}

	zap.L().Info("job complete",
		zap.String("url", job.URL),
		zap.String("platform", string(platform)),
		zap.Int("scraped", len(records)),
		zap.Int("in_range", len(filtered)),
	)

	return model.NewScrapeResult(summary, filtered), nil
}

// fetchPage runs one fetch-then-parse unit under the retry policy. A page
// that parses cleanly but yields zero records is retried like a failure;
// once attempts are exhausted the empty page is accepted as final.
func (p *Pipeline) fetchPage(ctx context.Context, pageURL string, parser parse.Parser, opts ...relay.FetchOption) (*parse.Result, error) {
	var lastEmpty *parse.Result

	retryCfg := resilience.RetryConfig{
		MaxAttempts: p.cfg.RetryAttempts,
		Delay:       p.retryDelay,
		OnRetry:     resilience.RetryLogger(string(parser.Platform()), "fetch page"),
	}

	res, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (*parse.Result, error) {
		html, ferr := p.fetcher.Fetch(ctx, pageURL, opts...)
		if ferr != nil {
			return nil, resilience.NewTransportError(eris.Wrapf(ferr, "scrape: fetch %s", pageURL), 0)
		}
		r, perr := parser.Parse(html)
		if perr != nil {
			return nil, resilience.NewMarkupError(perr)
		}
		if len(r.Reviews) == 0 {
			lastEmpty = r
			return nil, resilience.ErrEmptyResult
		}
		return r, nil
	})
	if err != nil {
		if resilience.IsEmpty(err) && lastEmpty != nil {
			return lastEmpty, nil
		}
		return nil, err
	}
	return res, nil
}

// filterByDate keeps records whose date resolves inside [start, end],
// inclusive. Unresolvable dates are out-of-range.
func (p *Pipeline) filterByDate(records []model.ReviewRecord, start, end time.Time) []model.ReviewRecord {
	now := p.now()
	kept := make([]model.ReviewRecord, 0, len(records))
	for _, r := range records {
		d, ok := dates.Resolve(r.ReviewDate, now)
		if !ok {
			continue
		}
		if dates.InRange(d, start, end) {
			kept = append(kept, r)
		}
	}
	return kept
}

// pageURL rewrites rawURL to point at the given result page.
func pageURL(rawURL string, page int) string {
	if page <= 1 {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

func limit(d time.Duration) rate.Limit {
	if d <= 0 {
		return rate.Inf
	}
	return rate.Every(d)
}
