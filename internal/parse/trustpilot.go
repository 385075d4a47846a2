package parse

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/reviews-cli/internal/model"
)

// Trustpilot's header renders "<name> Reviews <count>" in one block; a
// single regex captures both. Per-card fields come from direct attribute
// lookups; the markup has been stable enough not to need fallback chains.
var trustpilotHeaderRe = regexp.MustCompile(`(?s)\s*(.*?)\s+Reviews\s+([\d,]+)`)

type trustpilotParser struct{}

// NewTrustpilotParser returns the parser for trustpilot.com review pages.
func NewTrustpilotParser() Parser {
	return trustpilotParser{}
}

func (trustpilotParser) Platform() model.Platform {
	return model.PlatformTrustpilot
}

// Parse extracts the product summary and review records from a Trustpilot
// review page, and reports whether the page carries a next-page affordance.
func (p trustpilotParser) Parse(html string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "trustpilot: parse document")
	}

	name, count := trustpilotHeader(doc)
	stars := FirstDecimal(doc.Find(`[data-rating-typography]`).First().Text())
	if stars == "" {
		stars = FirstDecimal(doc.Find(`.styles_rating, [data-rating]`).First().Text())
	}

	res := &Result{
		Summary: model.ProductSummary{
			ProductName:  name,
			ReviewSite:   model.PlatformTrustpilot,
			Stars:        starsOrNA(stars),
			TotalReviews: countOrZero(count),
		},
		HasNextPage: hasNextPage(doc),
	}

	doc.Find(`article[data-service-review-card-paper], div.styles_reviewCardInner`).Each(func(_ int, card *goquery.Selection) {
		rating, _ := card.Find(`[data-service-review-rating]`).First().Attr("data-service-review-rating")
		datetime, _ := card.Find("time").First().Attr("datetime")

		rec := model.ReviewRecord{
			ReviewerName: CollapseWhitespace(card.Find(`[data-consumer-name-typography]`).First().Text()),
			ReviewDate:   truncateDatetime(datetime),
			Stars:        starsOrNA(FirstDecimal(rating)),
			ReviewTitle:  CollapseWhitespace(card.Find(`[data-service-review-title-typography], h2 a`).First().Text()),
			ReviewText:   CollapseWhitespace(card.Find(`[data-service-review-text-typography]`).First().Text()),
		}
		if rec.HasContent() {
			res.Reviews = append(res.Reviews, rec)
		}
	})

	return res, nil
}

func trustpilotHeader(doc *goquery.Document) (name, count string) {
	header := CollapseWhitespace(doc.Find("h1").First().Text())
	if header == "" {
		header = CollapseWhitespace(doc.Find(`[data-business-unit-title-typography]`).Text())
	}
	m := trustpilotHeaderRe.FindStringSubmatch(header)
	if m == nil {
		return header, ""
	}
	return strings.TrimSpace(m[1]), strings.ReplaceAll(m[2], ",", "")
}

// truncateDatetime keeps only the date component of a machine-readable
// datetime attribute ("2023-05-09T14:21:07.000Z" -> "2023-05-09").
func truncateDatetime(s string) string {
	if i := strings.Index(s, "T"); i >= 0 {
		return s[:i]
	}
	return s
}

func hasNextPage(doc *goquery.Document) bool {
	next := doc.Find(`a[name="pagination-button-next"], a[data-pagination-button-next-link]`)
	if next.Length() == 0 {
		return false
	}
	if disabled, ok := next.First().Attr("aria-disabled"); ok && disabled == "true" {
		return false
	}
	return true
}
