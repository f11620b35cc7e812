package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	"github.com/partnerdesk/inventory_ingest_app/internal/matching"
)

func registry() []domain.Company {
	return []domain.Company{
		{CompanyID: "c-acme", CanonicalName: "Acme Corporation", IsActive: true},
		{CompanyID: "c-globex", CanonicalName: "Globex Inc", IsActive: true},
		{CompanyID: "c-initech", CanonicalName: "Initech LLC", IsActive: true},
	}
}

func TestMatch_ExactNameIgnoresCase(t *testing.T) {
	m := matching.NewMatcher(registry(), matching.Config{})

	match := m.Match("  acme corporation ")
	require.NotNil(t, match.CompanyID)
	assert.Equal(t, "c-acme", *match.CompanyID)
	assert.Equal(t, matching.ExactConfidence, match.Confidence)
	assert.False(t, match.IsManualMatch)
	assert.Equal(t, "  acme corporation ", match.OriginalName)
}

func TestMatch_NormalizedSuffixAndPunctuation(t *testing.T) {
	m := matching.NewMatcher(registry(), matching.Config{})

	for _, name := range []string{"Acme Corp.", "ACME, Inc", "acme"} {
		match := m.Match(name)
		require.NotNil(t, match.CompanyID, "name %q should resolve", name)
		assert.Equal(t, "c-acme", *match.CompanyID)
		assert.Equal(t, matching.NormalizedConfidence, match.Confidence)
	}
}

func TestMatch_SimilarityAboveThreshold(t *testing.T) {
	m := matching.NewMatcher(registry(), matching.Config{AcceptThreshold: 0.75})

	match := m.Match("Globbex")
	require.NotNil(t, match.CompanyID)
	assert.Equal(t, "c-globex", *match.CompanyID)
	assert.Less(t, match.Confidence, matching.NormalizedConfidence)
	assert.GreaterOrEqual(t, match.Confidence, 0.75)
}

func TestMatch_BelowThresholdKeepsBestScore(t *testing.T) {
	m := matching.NewMatcher(registry(), matching.Config{AcceptThreshold: 0.75})

	match := m.Match("Completely Different Trading House")
	assert.Nil(t, match.CompanyID)
	assert.Greater(t, match.Confidence, 0.0)
	assert.Less(t, match.Confidence, 0.75)
}

func TestMatch_EmptyNameUnresolved(t *testing.T) {
	m := matching.NewMatcher(registry(), matching.Config{})

	match := m.Match("   ")
	assert.Nil(t, match.CompanyID)
	assert.Zero(t, match.Confidence)
}

func TestMatch_TieBreakIsDeterministic(t *testing.T) {
	// Two candidates equidistant from the input; the shorter canonical name
	// wins, and repeated runs agree.
	companies := []domain.Company{
		{CompanyID: "c-long", CanonicalName: "Acmeb"},
		{CompanyID: "c-short", CanonicalName: "Acma"},
	}
	m := matching.NewMatcher(companies, matching.Config{AcceptThreshold: 0.5})

	first := m.Match("acm")
	require.NotNil(t, first.CompanyID)
	for i := 0; i < 10; i++ {
		again := m.Match("acm")
		require.NotNil(t, again.CompanyID)
		assert.Equal(t, *first.CompanyID, *again.CompanyID)
	}
	assert.Equal(t, "c-short", *first.CompanyID)
}

func TestMatch_InvalidThresholdFallsBack(t *testing.T) {
	m := matching.NewMatcher(registry(), matching.Config{AcceptThreshold: 7})

	// Near-miss above the default threshold still resolves.
	match := m.Match("Globbex")
	require.NotNil(t, match.CompanyID)
	assert.GreaterOrEqual(t, match.Confidence, matching.DefaultAcceptThreshold)
}

func TestManualMatch(t *testing.T) {
	match := matching.ManualMatch("Acme Copr", "c-acme")
	require.NotNil(t, match.CompanyID)
	assert.Equal(t, "c-acme", *match.CompanyID)
	assert.Equal(t, 1.0, match.Confidence)
	assert.True(t, match.IsManualMatch)
	assert.Equal(t, "Acme Copr", match.OriginalName)
}

func TestNormalizeName(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"Acme Corporation", "acme"},
		{"ACME, Inc.", "acme"},
		{"Globex Holding Co Ltd", "globex holding"},
		{"  Wide   Spacing  GmbH ", "wide spacing"},
		{"Weird*Punct!Name", "weird punct name"},
		{"Inc", "inc"}, // lone suffix is kept, never an empty key
		{"", ""},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, matching.NormalizeName(tc.in), "input %q", tc.in)
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, matching.Similarity("acme", "acme"))
	assert.Equal(t, 1.0, matching.Similarity("", ""))
	assert.Equal(t, 0.0, matching.Similarity("abcd", "wxyz"))
	assert.InDelta(t, 0.75, matching.Similarity("acme", "acma"), 1e-9)
	// Symmetric in its arguments.
	assert.Equal(t, matching.Similarity("globex", "globbex"), matching.Similarity("globbex", "globex"))
}
