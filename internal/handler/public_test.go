package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/qrfolio-api/internal/model"
)

func namedProfiles(names ...string) []model.ResumeProfile {
	out := make([]model.ResumeProfile, len(names))
	for i, n := range names {
		out[i] = model.ResumeProfile{FullName: n}
	}
	return out
}

func TestMatchBySlug_ExactMatchWins(t *testing.T) {
	matches := namedProfiles("Janet Doe", "Jane Smith")

	p, ambiguous := matchBySlug(matches, "jane")
	require.False(t, ambiguous)
	require.NotNil(t, p)
	assert.Equal(t, "Jane Smith", p.FullName)
}

func TestMatchBySlug_UniquePrefixFallback(t *testing.T) {
	// A short link like /resume/jan has no exact slug owner but still
	// reaches a lone longer-name match.
	matches := namedProfiles("Janet Doe")

	p, ambiguous := matchBySlug(matches, "jan")
	require.False(t, ambiguous)
	require.NotNil(t, p)
	assert.Equal(t, "Janet Doe", p.FullName)
}

func TestMatchBySlug_NoMatches(t *testing.T) {
	p, ambiguous := matchBySlug(nil, "jane")
	assert.False(t, ambiguous)
	assert.Nil(t, p)
}

func TestMatchBySlug_MultipleExactIsAmbiguous(t *testing.T) {
	matches := namedProfiles("Jane Smith", "Jane Adams")

	p, ambiguous := matchBySlug(matches, "jane")
	assert.True(t, ambiguous)
	assert.Nil(t, p)
}

func TestMatchBySlug_MultiplePrefixOnlyIsAmbiguous(t *testing.T) {
	matches := namedProfiles("Janet Doe", "Janine Smith")

	p, ambiguous := matchBySlug(matches, "jan")
	assert.True(t, ambiguous)
	assert.Nil(t, p)
}
