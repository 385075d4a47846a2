package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reviews-cli/internal/config"
	"github.com/sells-group/reviews-cli/internal/scrape"
	"github.com/sells-group/reviews-cli/pkg/relay"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "reviews-cli",
	Short: "Product review scraping pipeline",
	Long:  "Scrapes product reviews from G2, Capterra, and Trustpilot through an anti-bot relay, filters them to a date window, and exports JSON, CSV, or XLSX.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newPipeline wires the relay fetcher and scrape pipeline from config.
func newPipeline() *scrape.Pipeline {
	fetcher := relay.NewClient(cfg.Relay.Key,
		relay.WithBaseURL(cfg.Relay.BaseURL),
		relay.WithCountry(cfg.Relay.Country),
	)
	return scrape.New(fetcher, cfg.Scrape,
		scrape.WithRelayWait(time.Duration(cfg.Relay.WaitMillis)*time.Millisecond),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
