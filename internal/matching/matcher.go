// Package matching resolves free-text company names against the canonical
// company registry. Matching is staged: exact, normalized, then similarity;
// the first confident stage wins. Results are deterministic for a given
// registry snapshot and input string.
package matching

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
)

const (
	ExactConfidence      = 1.0
	NormalizedConfidence = 0.9

	// DefaultAcceptThreshold is the minimum similarity score accepted
	// without manual resolution.
	DefaultAcceptThreshold = 0.75
)

// legalSuffixes are stripped during name normalization so "Acme Corp" and
// "Acme Corporation" collapse to the same key.
var legalSuffixes = []string{
	"incorporated", "corporation", "company", "limited",
	"inc", "llc", "ltd", "corp", "plc", "gmbh", "co",
}

// Config tunes the matcher. The zero value falls back to defaults.
type Config struct {
	AcceptThreshold float64
}

// Matcher resolves names against a registry snapshot taken at construction
// time. It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	threshold  float64
	companies  []domain.Company
	byExact    map[string]domain.Company
	byNormal   map[string]domain.Company
	normalized []candidate
}

type candidate struct {
	company    domain.Company
	normalized string
}

// NewMatcher indexes the given registry snapshot.
func NewMatcher(registry []domain.Company, cfg Config) *Matcher {
	threshold := cfg.AcceptThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultAcceptThreshold
	}
	m := &Matcher{
		threshold: threshold,
		companies: registry,
		byExact:   make(map[string]domain.Company, len(registry)),
		byNormal:  make(map[string]domain.Company, len(registry)),
	}
	// Sort candidates by shortest canonical name then lexically so that
	// similarity ties resolve the same way on every run.
	ordered := make([]domain.Company, len(registry))
	copy(ordered, registry)
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i].CanonicalName) != len(ordered[j].CanonicalName) {
			return len(ordered[i].CanonicalName) < len(ordered[j].CanonicalName)
		}
		return ordered[i].CanonicalName < ordered[j].CanonicalName
	})
	for _, c := range ordered {
		exactKey := strings.ToLower(strings.TrimSpace(c.CanonicalName))
		if _, exists := m.byExact[exactKey]; !exists {
			m.byExact[exactKey] = c
		}
		normKey := NormalizeName(c.CanonicalName)
		if normKey != "" {
			if _, exists := m.byNormal[normKey]; !exists {
				m.byNormal[normKey] = c
			}
			m.normalized = append(m.normalized, candidate{company: c, normalized: normKey})
		}
	}
	return m
}

// Match resolves one free-text name. An unresolved result carries the best
// similarity score found so the caller can surface it for human review.
func (m *Matcher) Match(name string) domain.CompanyMatch {
	match := domain.CompanyMatch{OriginalName: name}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return match
	}

	if c, ok := m.byExact[strings.ToLower(trimmed)]; ok {
		match.CompanyID = &c.CompanyID
		match.Confidence = ExactConfidence
		return match
	}

	normalized := NormalizeName(trimmed)
	if c, ok := m.byNormal[normalized]; ok {
		match.CompanyID = &c.CompanyID
		match.Confidence = NormalizedConfidence
		return match
	}

	best := 0.0
	var bestCompany *domain.Company
	for i := range m.normalized {
		score := Similarity(normalized, m.normalized[i].normalized)
		// Strictly-greater keeps the first candidate in deterministic
		// order (shortest name, then lexical) on ties.
		if score > best {
			best = score
			bestCompany = &m.normalized[i].company
		}
	}
	match.Confidence = best
	if bestCompany != nil && best >= m.threshold {
		match.CompanyID = &bestCompany.CompanyID
	}
	return match
}

// ManualMatch records an operator-supplied resolution. It always wins over
// algorithmic matching.
func ManualMatch(originalName, companyID string) domain.CompanyMatch {
	return domain.CompanyMatch{
		OriginalName:  originalName,
		CompanyID:     &companyID,
		Confidence:    1.0,
		IsManualMatch: true,
	}
}

// NormalizeName lowercases, strips punctuation and trailing legal suffixes,
// and collapses whitespace.
func NormalizeName(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		case r >= 0x80: // keep non-ASCII letters as-is
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	words := strings.Fields(b.String())
	for len(words) > 1 {
		last := words[len(words)-1]
		if !isLegalSuffix(last) {
			break
		}
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func isLegalSuffix(word string) bool {
	for _, s := range legalSuffixes {
		if word == s {
			return true
		}
	}
	return false
}

// Similarity is a normalized Levenshtein score in [0,1]: identical strings
// score 1.0, fully dissimilar strings 0.0. It is deterministic, symmetric
// and independent of argument order.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}
