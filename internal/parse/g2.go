package parse

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/reviews-cli/internal/model"
)

// G2 review bodies are three labeled question-and-answer sections. Each
// answer runs up to whichever of the other two question labels appears
// next, so the markers are split with the ordered-marker scanner rather
// than three standalone regexes.
var g2Questions = MustMarkerSet(
	`(?i)what do you like best(?:\s+about[^?]*)?\?`,
	`(?i)what do you dislike(?:\s+about[^?]*)?\?`,
	`(?i)what problems[^?]*(?:solving|solve)[^?]*\?`,
)

// Reviews shorter than this with no answered question are treated as noise
// and dropped, not reported as errors.
const g2NoiseThreshold = 10

var (
	g2TitleSuffixRe = regexp.MustCompile(`(?i)\s+reviews\b.*$`)
	g2DateTextRe    = regexp.MustCompile(`(?i)[A-Z][a-z]{2,8} \d{1,2}, \d{4}`)
)

type g2Parser struct{}

// NewG2Parser returns the parser for g2.com product review pages.
func NewG2Parser() Parser {
	return g2Parser{}
}

func (g2Parser) Platform() model.Platform {
	return model.PlatformG2
}

var (
	g2NameChain = Chain{
		Attr(`meta[property="og:title"]`, "content"),
		Text("title"),
		Text("h1"),
	}
	g2StarsChain = Chain{
		Attr(`meta[itemprop="ratingValue"]`, "content"),
		Text(`[itemprop="ratingValue"]`),
		func(s *goquery.Selection) string {
			return FirstDecimal(s.Find(".fw-semibold, #products-dropdown").First().Text())
		},
	}
	g2CountChain = Chain{
		Attr(`meta[itemprop="reviewCount"]`, "content"),
		Text(`[itemprop="reviewCount"]`),
		func(s *goquery.Selection) string {
			return CountNearReview(s.Find("h3, h2, .mb-1").Text())
		},
	}
	g2ReviewerChain = Chain{
		Attr(`meta[itemprop="author"]`, "content"),
		Text(`[itemprop="author"] [itemprop="name"]`),
		Text(".fw-semibold a, .link--header-color"),
	}
	g2JobTitleChain = Chain{
		Text(".mt-4th.c-midnight-80"),
		Text(".c-midnight-80.line-height-h6"),
	}
	g2ReviewTitleChain = Chain{
		Text(`[itemprop="name"]`),
		Text("h3 .m-0, .m-0.l2"),
	}
	g2ReviewStarsChain = Chain{
		Attr(`meta[itemprop="ratingValue"]`, "content"),
		func(s *goquery.Selection) string {
			cls, _ := s.Find(`[class*="stars-"]`).First().Attr("class")
			if m := regexp.MustCompile(`stars-(\d+)`).FindStringSubmatch(cls); m != nil {
				return m[1]
			}
			return ""
		},
	}
	g2ReviewDateChain = Chain{
		Attr(`meta[itemprop="datePublished"]`, "content"),
		Attr("time", "datetime"),
		func(s *goquery.Selection) string {
			return g2DateTextRe.FindString(s.Find(".x-current-review-date, .time-stamp").Text())
		},
	}
)

// Parse extracts the product summary and the question-and-answer review
// records from a G2 product reviews page.
func (p g2Parser) Parse(html string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "g2: parse document")
	}

	root := doc.Selection
	res := &Result{
		Summary: model.ProductSummary{
			ProductName:  g2ProductName(g2NameChain.First(root)),
			ReviewSite:   model.PlatformG2,
			Stars:        starsOrNA(FirstDecimal(g2StarsChain.First(root))),
			TotalReviews: countOrZero(DigitRun(g2CountChain.First(root))),
		},
	}

	doc.Find(`div[itemprop="review"], div.paper.paper--white.paper--box`).Each(func(_ int, card *goquery.Selection) {
		body := CollapseWhitespace(reviewBody(card))
		segments := g2Questions.Split(body)
		like, dislike, problems := segments[0], segments[1], segments[2]

		// A card answering none of the three questions and carrying almost
		// no text is navigation chrome, not a review.
		if like == "" && dislike == "" && problems == "" && len(body) < g2NoiseThreshold {
			return
		}

		rec := model.ReviewRecord{
			ReviewerName:   CollapseWhitespace(g2ReviewerChain.First(card)),
			JobTitle:       CollapseWhitespace(g2JobTitleChain.First(card)),
			ReviewDate:     CollapseWhitespace(g2ReviewDateChain.First(card)),
			Stars:          starsOrNA(FirstDecimal(g2ReviewStarsChain.First(card))),
			ReviewTitle:    CollapseWhitespace(g2ReviewTitleChain.First(card)),
			Like:           like,
			Dislike:        dislike,
			ProblemsSolved: problems,
		}
		if rec.HasContent() {
			res.Reviews = append(res.Reviews, rec)
		}
	})

	return res, nil
}

// g2ProductName strips the boilerplate G2 appends to page titles
// ("Acme Reviews 2024: Details, Pricing, & Features | G2").
func g2ProductName(title string) string {
	title = CollapseWhitespace(title)
	if i := strings.Index(title, "| G2"); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(g2TitleSuffixRe.ReplaceAllString(title, ""))
}

func reviewBody(card *goquery.Selection) string {
	if body := card.Find(`[itemprop="reviewBody"]`); body.Length() > 0 {
		return body.Text()
	}
	return card.Text()
}

func starsOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func countOrZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
