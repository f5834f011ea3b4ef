package resume

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/qrfolio-api/internal/model"
)

func TestShareSlug(t *testing.T) {
	assert.Equal(t, "jane", ShareSlug("Jane Smith"))
	assert.Equal(t, "jane", ShareSlug("  Jane   Smith  "))
	assert.Equal(t, "jean-paul", ShareSlug("Jean-Paul Sartre"))
	assert.Equal(t, "", ShareSlug(""))
	assert.Equal(t, "", ShareSlug("   "))
}

func TestPublicURL(t *testing.T) {
	p := &model.ResumeProfile{ID: uuid.New(), FullName: "Jane Smith"}
	assert.Equal(t, "https://app.example/resume/jane", PublicURL("https://app.example", p))

	t.Run("unsaved profile has no url", func(t *testing.T) {
		assert.Equal(t, "", PublicURL("https://app.example", &model.ResumeProfile{FullName: "Jane Smith"}))
	})
	t.Run("missing name has no url", func(t *testing.T) {
		assert.Equal(t, "", PublicURL("https://app.example", &model.ResumeProfile{ID: uuid.New()}))
	})
	t.Run("nil profile", func(t *testing.T) {
		assert.Equal(t, "", PublicURL("https://app.example", nil))
	})
}

func TestQRImageURL(t *testing.T) {
	got := QRImageURL("", "https://app.example/resume/jane", 200)
	assert.Equal(t, "https://api.qrserver.com/v1/create-qr-code/?data=https%3A%2F%2Fapp.example%2Fresume%2Fjane&size=200x200", got)
}

func TestQRImageURLWithFormat(t *testing.T) {
	got := QRImageURLWithFormat("", "hello world", 500, "svg")
	assert.Equal(t, "https://api.qrserver.com/v1/create-qr-code/?data=hello+world&format=svg&size=500x500", got)
}

func TestQRImageURL_CustomBase(t *testing.T) {
	got := QRImageURL("http://127.0.0.1:9999/qr", "x", 1000)
	assert.Equal(t, "http://127.0.0.1:9999/qr?data=x&size=1000x1000", got)
}

func TestValidQRSizeAndFormat(t *testing.T) {
	for _, s := range []int{200, 500, 1000} {
		assert.True(t, ValidQRSize(s))
	}
	assert.False(t, ValidQRSize(300))
	assert.False(t, ValidQRSize(0))

	for _, f := range []string{"png", "jpg", "svg"} {
		assert.True(t, ValidQRFormat(f))
	}
	assert.False(t, ValidQRFormat("gif"))
	assert.False(t, ValidQRFormat(""))
}

func TestParseBulkLines(t *testing.T) {
	got := ParseBulkLines("https://a.com\n\nhttps://b.com  \n")
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, got)

	assert.Nil(t, ParseBulkLines(""))
	assert.Nil(t, ParseBulkLines("\n  \n"))
	assert.Equal(t, []string{"one"}, ParseBulkLines("one"))
}

func TestParseBulkLines_WindowsNewlines(t *testing.T) {
	got := ParseBulkLines("https://a.com\r\nhttps://b.com")
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, got)
}
