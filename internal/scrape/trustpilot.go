package scrape

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/reviews-cli/internal/dates"
	"github.com/sells-group/reviews-cli/internal/model"
	"github.com/sells-group/reviews-cli/internal/parse"
	"github.com/sells-group/reviews-cli/internal/resilience"
)

// scrapeTrustpilot walks pages until one of the termination conditions
// hits: a parse failure after retries, an empty page after retries, the
// oldest record on a page falling before the range start (pages are assumed
// descending-chronological), or a page without a next-page affordance. A
// courtesy delay paces consecutive page fetches.
//
// A date that fails to resolve compares as older than any range start and
// stops the walk, so a page of unparseable dates cannot spin the loop
// forever.
func (p *Pipeline) scrapeTrustpilot(ctx context.Context, job model.ScrapeJob, parser parse.Parser) (model.ProductSummary, []model.ReviewRecord, error) {
	var (
		summary model.ProductSummary
		all     []model.ReviewRecord
	)
	for page := 1; ; page++ {
		if page > 1 {
			if err := p.pageLimiter.Wait(ctx); err != nil {
				return summary, nil, err
			}
		}

		res, err := p.fetchPage(ctx, pageURL(job.URL, page), parser)
		if err != nil {
			if page > 1 && resilience.IsMarkup(err) {
				zap.L().Warn("trustpilot: page parse failed, keeping earlier pages",
					zap.String("url", job.URL),
					zap.Int("page", page),
					zap.Error(err),
				)
				break
			}
			return summary, nil, err
		}
		if page == 1 {
			summary = res.Summary
		}
		if len(res.Reviews) == 0 {
			break
		}
		all = append(all, res.Reviews...)

		oldest := res.Reviews[len(res.Reviews)-1]
		if d, ok := dates.Resolve(oldest.ReviewDate, p.now()); !ok || d.Before(job.StartDate) {
			break
		}
		if !res.HasNextPage {
			break
		}
	}
	return summary, all, nil
}
