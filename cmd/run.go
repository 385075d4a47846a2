package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reviews-cli/internal/dates"
	"github.com/sells-group/reviews-cli/internal/model"
)

var (
	runURL   string
	runStart string
	runEnd   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape reviews for a single product page",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		start, ok := dates.ResolveAbsolute(runStart)
		if !ok {
			return eris.Errorf("unparseable start date %q", runStart)
		}
		end, ok := dates.ResolveAbsolute(runEnd)
		if !ok {
			return eris.Errorf("unparseable end date %q", runEnd)
		}

		p := newPipeline()
		result, err := p.Run(ctx, model.ScrapeJob{
			URL:       runURL,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			return eris.Wrap(err, "scrape run")
		}

		zap.L().Info("scrape complete",
			zap.String("product", result.ProductName),
			zap.String("platform", string(result.ReviewSite)),
			zap.Int("reviews", result.TotalScrapedReviews),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	runCmd.Flags().StringVar(&runURL, "url", "", "product reviews page URL (required)")
	runCmd.Flags().StringVar(&runStart, "start", "", "window start date, inclusive (required)")
	runCmd.Flags().StringVar(&runEnd, "end", "", "window end date, inclusive (required)")
	_ = runCmd.MarkFlagRequired("url")
	_ = runCmd.MarkFlagRequired("start")
	_ = runCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(runCmd)
}
