package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://www.g2.com/products/acme/reviews", PlatformG2},
		{"https://g2.com/products/acme/reviews", PlatformG2},
		{"https://www.capterra.com/p/135003/Acme/reviews/", PlatformCapterra},
		{"https://www.trustpilot.com/review/acme.com", PlatformTrustpilot},
		{"https://uk.trustpilot.com/review/acme.com", PlatformTrustpilot},
	}
	for _, tt := range tests {
		got, err := DetectPlatform(tt.url)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}
}

func TestDetectPlatformRejectsUnknownHosts(t *testing.T) {
	for _, u := range []string{
		"https://example.com/reviews",
		"https://notg2.com/products/acme/reviews",
		"://bad",
		"",
	} {
		_, err := DetectPlatform(u)
		assert.ErrorIs(t, err, ErrUnsupportedPlatform, u)
	}
}

func TestExportRowKeyOrder(t *testing.T) {
	rec := ReviewRecord{
		ReviewerName:   "A",
		ReviewDate:     "2023-01-01",
		Stars:          "5",
		Like:           "fast",
		Dislike:        "pricey",
		ProblemsSolved: "reporting",
		ReviewText:     "great",
	}

	keys, values := rec.ExportRow(PlatformG2)
	assert.Equal(t, []string{"reviewerName", "jobTitle", "reviewDate", "stars", "reviewTitle", "like", "dislike", "problemsSolved"}, keys)
	assert.Equal(t, "reporting", values[len(values)-1])

	keys, values = rec.ExportRow(PlatformCapterra)
	assert.Equal(t, "reviewText", keys[len(keys)-1])
	assert.Equal(t, "great", values[len(values)-1])
}

func TestHasContent(t *testing.T) {
	assert.False(t, ReviewRecord{ReviewDate: "2023-01-01", Stars: "5"}.HasContent())
	assert.True(t, ReviewRecord{ReviewerName: "A"}.HasContent())
	assert.True(t, ReviewRecord{Dislike: "slow"}.HasContent())
	assert.True(t, ReviewRecord{ReviewText: "ok"}.HasContent())
}

func TestScrapeResultJSONShape(t *testing.T) {
	res := NewScrapeResult(ProductSummary{
		ProductName:  "Acme",
		ReviewSite:   PlatformTrustpilot,
		Stars:        "4.2",
		TotalReviews: "1234",
	}, []ReviewRecord{{ReviewerName: "A", ReviewDate: "2023-06-01", Stars: "5", ReviewText: "Good"}})

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "Acme", m["productName"])
	assert.Equal(t, "trustpilot", m["reviewSite"])
	assert.Equal(t, float64(1), m["totalScrapedReviews"])

	reviews, ok := m["allReviews"].([]any)
	require.True(t, ok)
	first := reviews[0].(map[string]any)
	assert.Equal(t, "Good", first["reviewText"])
	_, hasLike := first["like"]
	assert.False(t, hasLike)
}
