package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reviews-cli/internal/model"
	"github.com/sells-group/reviews-cli/internal/scrape"
)

var batchJobsFile string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Scrape a batch of jobs from a JSON or YAML job file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(batchJobsFile)
		if err != nil {
			return eris.Wrapf(err, "read job file %s", batchJobsFile)
		}
		jobs, err := scrape.LoadJobs(data)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			return eris.Errorf("no usable jobs in %s", batchJobsFile)
		}

		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return eris.Wrapf(err, "create output dir %s", cfg.Output.Dir)
		}

		p := newPipeline()
		results := p.RunAll(ctx, jobs)

		for _, res := range results {
			path := filepath.Join(cfg.Output.Dir, resultFilename(res))
			if err := writeResultJSON(path, res); err != nil {
				return err
			}
			zap.L().Info("result written",
				zap.String("path", path),
				zap.Int("reviews", res.TotalScrapedReviews),
			)
		}

		zap.L().Info("batch complete",
			zap.Int("jobs", len(jobs)),
			zap.Int("results", len(results)),
		)
		return nil
	},
}

var unsafeFilenameRe = regexp.MustCompile(`[^a-z0-9]+`)

func resultFilename(res *model.ScrapeResult) string {
	name := unsafeFilenameRe.ReplaceAllString(strings.ToLower(res.ProductName), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "product"
	}
	return fmt.Sprintf("%s-%s.json", res.ReviewSite, name)
}

func writeResultJSON(path string, res *model.ScrapeResult) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return eris.Wrapf(err, "encode %s", path)
	}
	return nil
}

func init() {
	batchCmd.Flags().StringVar(&batchJobsFile, "jobs", "", "path to job file, JSON or YAML (required)")
	_ = batchCmd.MarkFlagRequired("jobs")
	rootCmd.AddCommand(batchCmd)
}
