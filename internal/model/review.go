package model

import "time"

// ReviewRecord is one extracted review in the canonical shape. The field set
// is a tagged union over platform: Capterra and Trustpilot reviews carry
// ReviewText, G2 reviews carry the Like/Dislike/ProblemsSolved triple.
// Consumers must treat absent platform-specific fields as intentional.
type ReviewRecord struct {
	ReviewerName string `json:"reviewerName"`
	JobTitle     string `json:"jobTitle,omitempty"`
	ReviewDate   string `json:"reviewDate"`
	Stars        string `json:"stars"`
	ReviewTitle  string `json:"reviewTitle,omitempty"`

	// Capterra / Trustpilot.
	ReviewText string `json:"reviewText,omitempty"`

	// G2 question-and-answer sections.
	Like           string `json:"like,omitempty"`
	Dislike        string `json:"dislike,omitempty"`
	ProblemsSolved string `json:"problemsSolved,omitempty"`
}

// HasContent reports whether the record is worth keeping: at least one of
// the reviewer name or a review-content field must be non-empty.
func (r ReviewRecord) HasContent() bool {
	return r.ReviewerName != "" ||
		r.ReviewText != "" ||
		r.Like != "" || r.Dislike != "" || r.ProblemsSolved != ""
}

// ExportRow flattens the record into an ordered key/value pair list for
// delimited export. Key order is fixed per platform; the first record's keys
// govern the header for the whole file.
func (r ReviewRecord) ExportRow(p Platform) (keys, values []string) {
	keys = []string{"reviewerName", "jobTitle", "reviewDate", "stars", "reviewTitle"}
	values = []string{r.ReviewerName, r.JobTitle, r.ReviewDate, r.Stars, r.ReviewTitle}
	if p == PlatformG2 {
		keys = append(keys, "like", "dislike", "problemsSolved")
		values = append(values, r.Like, r.Dislike, r.ProblemsSolved)
		return keys, values
	}
	keys = append(keys, "reviewText")
	values = append(values, r.ReviewText)
	return keys, values
}

// ProductSummary holds the page-level product fields reported by the
// platform, independent of how many reviews were actually extracted.
type ProductSummary struct {
	ProductName  string   `json:"productName"`
	ReviewSite   Platform `json:"reviewSite"`
	Stars        string   `json:"stars"`
	TotalReviews string   `json:"totalReviews"`
}

// ScrapeJob is one unit of work: a product page URL plus an inclusive date
// window. Out-of-order windows are not validated; they yield an empty
// filtered set.
type ScrapeJob struct {
	URL       string    `json:"url"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ScrapeResult is the per-job output: the product summary flattened
// alongside the filtered reviews in scrape order. Immutable once returned;
// the caller owns it.
type ScrapeResult struct {
	ProductName         string         `json:"productName"`
	ReviewSite          Platform       `json:"reviewSite"`
	Stars               string         `json:"stars"`
	TotalReviews        string         `json:"totalReviews"`
	AllReviews          []ReviewRecord `json:"allReviews"`
	TotalScrapedReviews int            `json:"totalScrapedReviews"`
}

// NewScrapeResult assembles a result from a summary and the post-filter
// review set.
func NewScrapeResult(summary ProductSummary, reviews []ReviewRecord) *ScrapeResult {
	if reviews == nil {
		reviews = []ReviewRecord{}
	}
	return &ScrapeResult{
		ProductName:         summary.ProductName,
		ReviewSite:          summary.ReviewSite,
		Stars:               summary.Stars,
		TotalReviews:        summary.TotalReviews,
		AllReviews:          reviews,
		TotalScrapedReviews: len(reviews),
	}
}
