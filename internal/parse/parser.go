// Package parse converts raw review-page markup into a product summary and
// an ordered sequence of canonical review records, one parser per supported
// platform. Field extraction goes through ordered fallback-selector chains:
// the target markup drifts, and no single selector is authoritative.
package parse

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/reviews-cli/internal/model"
)

// Result is one parsed page: the product summary, the reviews in document
// order, and whether the page advertises a next-page affordance.
type Result struct {
	Summary     model.ProductSummary
	Reviews     []model.ReviewRecord
	HasNextPage bool
}

// Parser extracts a Result from raw markup. A structurally broken document
// is an error (retryable upstream); a valid page with zero matching review
// elements is not an error and returns an empty record list.
type Parser interface {
	Parse(html string) (*Result, error)
	Platform() model.Platform
}

// ForPlatform returns the parser for a platform.
func ForPlatform(p model.Platform) (Parser, error) {
	switch p {
	case model.PlatformG2:
		return NewG2Parser(), nil
	case model.PlatformCapterra:
		return NewCapterraParser(), nil
	case model.PlatformTrustpilot:
		return NewTrustpilotParser(), nil
	default:
		return nil, eris.Errorf("parse: no parser for platform %q", p)
	}
}
