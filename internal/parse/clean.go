package parse

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	decimalRe     = regexp.MustCompile(`\d+(?:\.\d+)?`)
	digitRunRe    = regexp.MustCompile(`[\d,]+`)
	reviewCountRe = regexp.MustCompile(`(?i)([\d,]+)[^\d]{0,20}reviews?`)
)

// CollapseWhitespace folds runs of whitespace into single spaces and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// FoldDiacritics strips combining marks so keyword scans match accented
// and unaccented spellings alike.
func FoldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// FirstDecimal isolates the first decimal-like token ("4.5" out of
// "4.5 out of 5") or "" when none exists.
func FirstDecimal(s string) string {
	return decimalRe.FindString(s)
}

// CountNearReview isolates the first run of digits appearing near the word
// "review" ("1,234" out of "1,234 reviews"). Commas are stripped.
func CountNearReview(s string) string {
	m := reviewCountRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(m[1], ",", "")
}

// DigitRun returns the first run of digits (commas tolerated and stripped).
func DigitRun(s string) string {
	return strings.ReplaceAll(digitRunRe.FindString(s), ",", "")
}
