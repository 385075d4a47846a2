package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a \n\t b   c  "))
}

func TestFoldDiacritics(t *testing.T) {
	assert.Equal(t, "Education", FoldDiacritics("Éducation"))
	assert.Equal(t, "plain", FoldDiacritics("plain"))
}

func TestFirstDecimal(t *testing.T) {
	assert.Equal(t, "4.5", FirstDecimal("4.5 out of 5"))
	assert.Equal(t, "4", FirstDecimal("rated 4 stars"))
	assert.Equal(t, "", FirstDecimal("no rating"))
}

func TestCountNearReview(t *testing.T) {
	assert.Equal(t, "1234", CountNearReview("1,234 reviews"))
	assert.Equal(t, "87", CountNearReview("Based on 87 verified reviews"))
	assert.Equal(t, "", CountNearReview("no count here"))
}
