// Package export flattens scrape results into delimited files. The CSV
// contract is fixed: every value is quote-wrapped and embedded quotes are
// doubled, regardless of content.
package export

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/reviews-cli/internal/model"
)

// Rows flattens a result into a header plus one row per review. The first
// record's key order governs the header for the whole file; a result with
// no reviews still yields the platform's header.
func Rows(res *model.ScrapeResult) (header []string, rows [][]string) {
	header, _ = model.ReviewRecord{}.ExportRow(res.ReviewSite)
	rows = make([][]string, 0, len(res.AllReviews))
	for _, rec := range res.AllReviews {
		_, values := rec.ExportRow(res.ReviewSite)
		rows = append(rows, values)
	}
	return header, rows
}

// WriteCSV writes the header and rows with every value quoted.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	var b strings.Builder
	writeLine(&b, header)
	for _, row := range rows {
		writeLine(&b, row)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return eris.Wrap(err, "export: write csv")
	}
	return nil
}

func writeLine(b *strings.Builder, values []string) {
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(v, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
