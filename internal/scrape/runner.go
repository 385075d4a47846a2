package scrape

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/reviews-cli/internal/model"
)

// RunAll processes jobs strictly in order, spacing consecutive jobs by the
// configured delay. Failures are contained per job: a batch of N jobs
// completes with M <= N results and never aborts on partial failure.
func (p *Pipeline) RunAll(ctx context.Context, jobs []model.ScrapeJob) []*model.ScrapeResult {
	results := make([]*model.ScrapeResult, 0, len(jobs))
	for i, job := range jobs {
		if i > 0 {
			if err := p.jobLimiter.Wait(ctx); err != nil {
				zap.L().Warn("batch interrupted", zap.Error(err))
				return results
			}
		}

		runID := uuid.NewString()
		zap.L().Info("job started",
			zap.String("run_id", runID),
			zap.String("url", job.URL),
		)

		res, err := p.Run(ctx, job)
		if err != nil {
			if errors.Is(err, model.ErrUnsupportedPlatform) {
				zap.L().Warn("skipping unsupported platform",
					zap.String("run_id", runID),
					zap.String("url", job.URL),
				)
			} else {
				zap.L().Error("job failed",
					zap.String("run_id", runID),
					zap.String("url", job.URL),
					zap.Error(err),
				)
			}
			continue
		}
		results = append(results, res)
	}
	return results
}
