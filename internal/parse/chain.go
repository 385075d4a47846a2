package parse

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy extracts one candidate value for a field from a selection.
// Returning "" means the strategy found nothing.
type Strategy func(*goquery.Selection) string

// Chain is an ordered list of extraction strategies for one field. The
// first non-empty result wins; later strategies exist because the markup
// shape is known to drift.
type Chain []Strategy

// First runs the chain against s and returns the first non-empty,
// whitespace-trimmed result.
func (c Chain) First(s *goquery.Selection) string {
	for _, strategy := range c {
		if v := strings.TrimSpace(strategy(s)); v != "" {
			return v
		}
	}
	return ""
}

// Text extracts the text content of the first node matching selector.
func Text(selector string) Strategy {
	return func(s *goquery.Selection) string {
		return s.Find(selector).First().Text()
	}
}

// Attr extracts an attribute value from the first node matching selector.
func Attr(selector, attr string) Strategy {
	return func(s *goquery.Selection) string {
		v, _ := s.Find(selector).First().Attr(attr)
		return v
	}
}

// Pattern extracts the first capture group of re from the selection's
// visible text.
func Pattern(re *regexp.Regexp) Strategy {
	return func(s *goquery.Selection) string {
		m := re.FindStringSubmatch(s.Text())
		if len(m) > 1 {
			return m[1]
		}
		return ""
	}
}
