package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/reviews-cli/internal/model"
)

const g2Fixture = `<!DOCTYPE html>
<html>
<head><title>Acme Reviews 2024: Details, Pricing, &amp; Features | G2</title></head>
<body>
  <meta itemprop="ratingValue" content="4.5">
  <meta itemprop="reviewCount" content="1,234">
  <div itemprop="review">
    <meta itemprop="author" content="Jordan P.">
    <div class="mt-4th c-midnight-80">Engineering Manager</div>
    <meta itemprop="datePublished" content="2024-01-10">
    <h3><div class="m-0 l2">Solid platform</div></h3>
    <meta itemprop="ratingValue" content="4.5">
    <div itemprop="reviewBody">
      What do you like best about Acme? Great support and quick setup
      What do you dislike about Acme? Slow UI on large workspaces
      What problems is Acme solving and how is that benefiting you? Fewer manual handoffs
    </div>
  </div>
  <div itemprop="review">
    <div itemprop="reviewBody">Hi</div>
  </div>
</body>
</html>`

func TestG2Parse_Summary(t *testing.T) {
	res, err := NewG2Parser().Parse(g2Fixture)
	require.NoError(t, err)

	assert.Equal(t, "Acme", res.Summary.ProductName)
	assert.Equal(t, model.PlatformG2, res.Summary.ReviewSite)
	assert.Equal(t, "4.5", res.Summary.Stars)
	assert.Equal(t, "1234", res.Summary.TotalReviews)
}

func TestG2Parse_QAReview(t *testing.T) {
	res, err := NewG2Parser().Parse(g2Fixture)
	require.NoError(t, err)
	require.Len(t, res.Reviews, 1)

	rec := res.Reviews[0]
	assert.Equal(t, "Jordan P.", rec.ReviewerName)
	assert.Equal(t, "Engineering Manager", rec.JobTitle)
	assert.Equal(t, "2024-01-10", rec.ReviewDate)
	assert.Equal(t, "Solid platform", rec.ReviewTitle)
	assert.Equal(t, "Great support and quick setup", rec.Like)
	assert.Equal(t, "Slow UI on large workspaces", rec.Dislike)
	assert.Equal(t, "Fewer manual handoffs", rec.ProblemsSolved)
	assert.Empty(t, rec.ReviewText)
}

func TestG2Parse_NoiseCardDropped(t *testing.T) {
	res, err := NewG2Parser().Parse(g2Fixture)
	require.NoError(t, err)
	// The two-character card with no answered question is noise.
	assert.Len(t, res.Reviews, 1)
}

func TestG2Parse_EmptyPageIsNotAnError(t *testing.T) {
	res, err := NewG2Parser().Parse(`<html><head><title>Acme Reviews | G2</title></head><body></body></html>`)
	require.NoError(t, err)
	assert.Empty(t, res.Reviews)
	assert.Equal(t, "0", res.Summary.TotalReviews)
	assert.Equal(t, "N/A", res.Summary.Stars)
}

func TestG2ProductName(t *testing.T) {
	assert.Equal(t, "Acme", g2ProductName("Acme Reviews 2024: Details, Pricing, & Features | G2"))
	assert.Equal(t, "Acme Workspace", g2ProductName("Acme Workspace Reviews | G2"))
	assert.Equal(t, "Bare Name", g2ProductName("Bare Name"))
}
