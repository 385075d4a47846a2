package parse

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/reviews-cli/internal/model"
)

const verifiedReviewer = "Verified Reviewer"

var (
	capterraUsedForRe = regexp.MustCompile(`(?i)used the software for:?\s*([^.]*?)(?:\s{2,}|$)`)
	// A personal name followed by an initial, e.g. "Maria G.", the shape
	// Capterra renders at the head of the reviewer profile blob.
	capterraNameRe   = regexp.MustCompile(`^\s*([A-Z][\w'’-]+(?:\s+[A-Z][\w'’-]+)*\s+[A-Z]\.?)\s+`)
	capterraRatingRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*\(`)
	capterraDateRe   = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}|[A-Z][a-z]+ \d{1,2}, \d{4}`)
)

// Ordered industry lexicon for splitting the profile remainder into job
// title vs. industry. The remainder is cut at the first keyword found;
// everything before the cut is the job title.
var capterraIndustries = []string{
	"Information Technology and Services",
	"Computer Software",
	"Marketing and Advertising",
	"Financial Services",
	"Hospital & Health Care",
	"Health, Wellness and Fitness",
	"Management Consulting",
	"Education Management",
	"Higher Education",
	"Real Estate",
	"Construction",
	"Telecommunications",
	"Nonprofit Organization Management",
	"Retail",
	"Insurance",
	"Accounting",
	"Banking",
	"Internet",
	"Automotive",
	"Hospitality",
	"Legal Services",
	"E-Learning",
	"Staffing and Recruiting",
	"Design",
}

type capterraParser struct{}

// NewCapterraParser returns the parser for capterra.com review pages.
func NewCapterraParser() Parser {
	return capterraParser{}
}

func (capterraParser) Platform() model.Platform {
	return model.PlatformCapterra
}

var (
	capterraNameChain = Chain{
		Text("h1.sb.type-40"),
		Text("h1"),
		Attr(`meta[property="og:title"]`, "content"),
	}
	capterraStarsChain = Chain{
		Text(".star-rating-component .sb.type-40"),
		Text(`[data-testid="star-rating-count"]`),
		Pattern(capterraRatingRe),
	}
	capterraCardChains = struct {
		profile Chain
		title   Chain
		stars   Chain
		date    Chain
	}{
		profile: Chain{
			Text(".header-profile, .col.cell-review-header"),
			Text(".profile-details"),
		},
		title: Chain{
			Text("h3.h5.fw-bold, h3.review-title"),
			Text("q"),
		},
		stars: Chain{
			Attr(`[data-rating]`, "data-rating"),
			func(s *goquery.Selection) string {
				return FirstDecimal(s.Find(".rating-decimal, .overall-rating").First().Text())
			},
		},
		date: Chain{
			Text(".review-date, .ms-auto.text-ash"),
			func(s *goquery.Selection) string {
				return capterraDateRe.FindString(s.Text())
			},
		},
	}
)

// Parse extracts the product summary and review records from a Capterra
// reviews page.
func (p capterraParser) Parse(html string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "capterra: parse document")
	}

	root := doc.Selection
	ratingText := capterraStarsChain.First(root)

	res := &Result{
		Summary: model.ProductSummary{
			ProductName:  capterraProductName(capterraNameChain.First(root)),
			ReviewSite:   model.PlatformCapterra,
			Stars:        starsOrNA(capterraLeadingRating(ratingText)),
			TotalReviews: countOrZero(capterraParentheticalCount(ratingText, root)),
		},
	}

	doc.Find(`div[data-test-id="review-card"], div.review-card, div.i18n-translation_container`).Each(func(_ int, card *goquery.Selection) {
		profile := CollapseWhitespace(capterraCardChains.profile.First(card))
		name, jobTitle := decomposeProfile(profile)

		pros := prosConsText(card, "Pros")
		cons := prosConsText(card, "Cons")

		rec := model.ReviewRecord{
			ReviewerName: name,
			JobTitle:     jobTitle,
			ReviewDate:   CollapseWhitespace(capterraCardChains.date.First(card)),
			Stars:        starsOrNA(FirstDecimal(capterraCardChains.stars.First(card))),
			ReviewTitle:  CollapseWhitespace(capterraCardChains.title.First(card)),
			ReviewText:   joinProsCons(pros, cons),
		}
		if rec.HasContent() {
			res.Reviews = append(res.Reviews, rec)
		}
	})

	return res, nil
}

// capterraProductName strips the literal "Reviews of" prefix Capterra puts
// on its page heading.
func capterraProductName(h string) string {
	h = CollapseWhitespace(h)
	h = strings.TrimPrefix(h, "Reviews of ")
	if i := strings.Index(h, " Reviews"); i >= 0 {
		h = h[:i]
	}
	return strings.TrimSpace(h)
}

// capterraLeadingRating isolates the leading numeric token of a rating
// string shaped like "4.5 (1,234)".
func capterraLeadingRating(s string) string {
	if m := capterraRatingRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return FirstDecimal(s)
}

func capterraParentheticalCount(ratingText string, root *goquery.Selection) string {
	if i := strings.Index(ratingText, "("); i >= 0 {
		return DigitRun(ratingText[i:])
	}
	return CountNearReview(root.Find("h2, .reviews-count").Text())
}

// decomposeProfile takes Capterra's single concatenated reviewer blob and
// splits it into reviewer name and job title. Usage duration is cut away
// via its "Used the software for" marker; a leading personal-name-plus-
// initial pattern (or the generic "Verified Reviewer" label) becomes the
// name; the remainder is cut at the first industry-lexicon keyword, job
// title before the cut. No keyword match means the whole remainder is the
// job title.
func decomposeProfile(profile string) (name, jobTitle string) {
	rest := capterraUsedForRe.ReplaceAllString(profile, "")
	rest = CollapseWhitespace(rest)

	switch {
	case strings.HasPrefix(rest, verifiedReviewer):
		name = verifiedReviewer
		rest = strings.TrimSpace(strings.TrimPrefix(rest, verifiedReviewer))
	default:
		if m := capterraNameRe.FindStringSubmatch(rest); m != nil {
			name = m[1]
			rest = strings.TrimSpace(rest[len(m[0]):])
		}
	}

	lower := strings.ToLower(rest)
	folded := strings.ToLower(FoldDiacritics(rest))
	for _, industry := range capterraIndustries {
		key := strings.ToLower(industry)
		if idx := strings.Index(lower, key); idx >= 0 {
			return name, strings.TrimSpace(rest[:idx])
		}
		if idx := strings.Index(folded, key); idx >= 0 {
			return name, strings.TrimSpace(rest[:foldedIndex(rest, idx)])
		}
	}
	return name, rest
}

// foldedIndex maps a byte offset in the diacritic-folded rendering of s
// back to the offset of the same rune in s. Folding shrinks accented runes,
// so folded offsets cannot be applied to s directly.
func foldedIndex(s string, idx int) int {
	folded := 0
	for i, r := range s {
		if folded >= idx {
			return i
		}
		folded += len(FoldDiacritics(string(r)))
	}
	return len(s)
}

// prosConsText locates the "Pros"/"Cons" labeling node and tries, in order:
// the label's containing element's next sibling paragraph, the label's
// parent's next sibling paragraph, then any sibling paragraph of the label.
func prosConsText(card *goquery.Selection, label string) string {
	var labelSel *goquery.Selection
	card.Find("span, strong, b").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) == label {
			labelSel = s
			return false
		}
		return true
	})
	if labelSel == nil {
		return ""
	}

	chain := Chain{
		func(*goquery.Selection) string { return labelSel.Parent().NextAllFiltered("p").First().Text() },
		func(*goquery.Selection) string { return labelSel.Parent().Parent().NextAllFiltered("p").First().Text() },
		func(*goquery.Selection) string { return labelSel.Siblings().Filter("p").First().Text() },
	}
	return CollapseWhitespace(chain.First(card))
}

func joinProsCons(pros, cons string) string {
	switch {
	case pros == "" && cons == "":
		return ""
	case cons == "":
		return "Pros: " + pros
	case pros == "":
		return "Cons: " + cons
	default:
		return "Pros: " + pros + " Cons: " + cons
	}
}
