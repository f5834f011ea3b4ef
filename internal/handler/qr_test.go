package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRRequest_NormalizeDefaults(t *testing.T) {
	req := qrRequest{}
	require.NoError(t, req.normalize())
	assert.Equal(t, 200, req.Size)
	assert.Equal(t, "png", req.Format)
}

func TestQRRequest_NormalizeRejectsBadValues(t *testing.T) {
	req := qrRequest{Size: 300}
	assert.Error(t, req.normalize())

	req = qrRequest{Format: "gif"}
	assert.Error(t, req.normalize())
}

func TestQRRequest_PremiumOnly(t *testing.T) {
	assert.False(t, (&qrRequest{Size: 200, Format: "png"}).premiumOnly())
	assert.False(t, (&qrRequest{Size: 500, Format: "jpg"}).premiumOnly())
	assert.True(t, (&qrRequest{Size: 200, Format: "svg"}).premiumOnly())
	assert.True(t, (&qrRequest{Size: 1000, Format: "png"}).premiumOnly())
}

func TestSuggestFields(t *testing.T) {
	text := "Jane Smith\n\nBackend Engineer\njane.smith@example.com | +1 (415) 555-0147\nlinkedin.com/in/janesmith\ngithub.com/janesmith\n"

	got := suggestFields(text)
	assert.Equal(t, "Jane Smith", got["fullName"])
	assert.Equal(t, "jane.smith@example.com", got["email"])
	assert.Equal(t, "+1 (415) 555-0147", got["phone"])
	assert.Equal(t, "https://linkedin.com/in/janesmith", got["linkedinUrl"])
	assert.Equal(t, "https://github.com/janesmith", got["githubUrl"])
}

func TestSuggestFields_SkipsNoisyFirstLine(t *testing.T) {
	// A contact line first means no clean name candidate.
	got := suggestFields("jane@example.com\nJane Smith\n")
	assert.NotContains(t, got, "fullName")
	assert.Equal(t, "jane@example.com", got["email"])
}

func TestEnsureScheme(t *testing.T) {
	assert.Equal(t, "https://github.com/jane", ensureScheme("github.com/jane"))
	assert.Equal(t, "https://github.com/jane", ensureScheme("https://github.com/jane"))
	assert.Equal(t, "http://github.com/jane", ensureScheme("http://github.com/jane"))
}
