package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reviews-cli/internal/export"
	"github.com/sells-group/reviews-cli/internal/model"
)

var (
	exportIn     string
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert a scrape result JSON file to CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(exportIn)
		if err != nil {
			return eris.Wrapf(err, "read %s", exportIn)
		}

		var res model.ScrapeResult
		if err := json.Unmarshal(data, &res); err != nil {
			return eris.Wrapf(err, "decode %s", exportIn)
		}

		header, rows := export.Rows(&res)

		f, err := os.Create(exportOut)
		if err != nil {
			return eris.Wrapf(err, "create %s", exportOut)
		}
		defer func() { _ = f.Close() }()

		switch exportFormat {
		case "csv":
			err = export.WriteCSV(f, header, rows)
		case "xlsx":
			err = export.WriteXLSX(f, "Reviews", header, rows)
		default:
			return eris.Errorf("unknown format %q (want csv or xlsx)", exportFormat)
		}
		if err != nil {
			return err
		}

		zap.L().Info("export written",
			zap.String("path", exportOut),
			zap.String("format", exportFormat),
			zap.Int("rows", len(rows)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportIn, "in", "", "scrape result JSON file (required)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or xlsx")
	_ = exportCmd.MarkFlagRequired("in")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}
