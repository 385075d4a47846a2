package scrape

import (
	"context"

	"github.com/sells-group/reviews-cli/internal/model"
	"github.com/sells-group/reviews-cli/internal/parse"
	"github.com/sells-group/reviews-cli/pkg/relay"
)

// scrapeCapterra fetches a single page; Capterra pagination is not
// implemented. The relay wait hint gives the page time to render behind
// the bypass.
func (p *Pipeline) scrapeCapterra(ctx context.Context, job model.ScrapeJob, parser parse.Parser) (model.ProductSummary, []model.ReviewRecord, error) {
	res, err := p.fetchPage(ctx, job.URL, parser, relay.WithWait(p.relayWait))
	if err != nil {
		return model.ProductSummary{}, nil, err
	}
	return res.Summary, res.Reviews, nil
}
