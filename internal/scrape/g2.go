package scrape

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/reviews-cli/internal/model"
	"github.com/sells-group/reviews-cli/internal/parse"
)

// G2 lists ten reviews per page.
const g2PageSize = 10

// scrapeG2 walks up to ceil(maxReviews / 10) pages, halting early when a
// page yields no records. The combined set is date-filtered and then
// truncated to maxReviews by the caller.
func (p *Pipeline) scrapeG2(ctx context.Context, job model.ScrapeJob, parser parse.Parser) (model.ProductSummary, []model.ReviewRecord, error) {
	pages := (p.cfg.MaxReviews + g2PageSize - 1) / g2PageSize

	var (
		summary model.ProductSummary
		all     []model.ReviewRecord
	)
	for page := 1; page <= pages; page++ {
		if page > 1 {
			if err := p.pageLimiter.Wait(ctx); err != nil {
				return summary, nil, err
			}
		}

		res, err := p.fetchPage(ctx, pageURL(job.URL, page), parser)
		if err != nil {
			return summary, nil, err
		}
		if page == 1 {
			summary = res.Summary
		}
		if len(res.Reviews) == 0 {
			zap.L().Debug("g2: empty page, stopping pagination",
				zap.String("url", job.URL),
				zap.Int("page", page),
			)
			break
		}
		all = append(all, res.Reviews...)
	}
	return summary, all, nil
}
