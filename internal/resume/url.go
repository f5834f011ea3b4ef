package resume

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/qrfolio-api/internal/model"
)

// DefaultQRAPIBase is the external QR image endpoint. The service only
// constructs request URLs against it; it never renders QR codes itself.
const DefaultQRAPIBase = "https://api.qrserver.com/v1/create-qr-code/"

// MaxBulkEntries caps one bulk QR request.
const MaxBulkEntries = 50

// QR download sizes accepted by the UI.
var QRSizes = []int{200, 500, 1000}

// QR download formats. SVG is premium-gated at the API boundary.
var QRFormats = []string{"png", "jpg", "svg"}

// ValidQRSize reports whether sizePx is one of the offered pixel sizes.
func ValidQRSize(sizePx int) bool {
	for _, s := range QRSizes {
		if s == sizePx {
			return true
		}
	}
	return false
}

// ValidQRFormat reports whether format is one of the offered image formats.
func ValidQRFormat(format string) bool {
	for _, f := range QRFormats {
		if f == format {
			return true
		}
	}
	return false
}

// ShareSlug returns the lower-cased first whitespace-delimited token of a
// full name, or "" when the name is empty.
func ShareSlug(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// PublicURL derives the shareable resume URL. Defined only once the profile
// has an assigned id and a full name; callers treat "" as "not shareable yet".
func PublicURL(origin string, p *model.ResumeProfile) string {
	if p == nil || p.ID == uuid.Nil || p.FullName == "" {
		return ""
	}
	return origin + "/resume/" + ShareSlug(p.FullName)
}

// QRImageURL builds the external QR image request URL for arbitrary data at
// the given square pixel size.
func QRImageURL(base, data string, sizePx int) string {
	return qrURL(base, data, sizePx, "")
}

// QRImageURLWithFormat is QRImageURL plus an explicit output format
// (png, jpg, or svg).
func QRImageURLWithFormat(base, data string, sizePx int, format string) string {
	return qrURL(base, data, sizePx, format)
}

func qrURL(base, data string, sizePx int, format string) string {
	if base == "" {
		base = DefaultQRAPIBase
	}
	params := url.Values{}
	params.Set("size", fmt.Sprintf("%dx%d", sizePx, sizePx))
	params.Set("data", data)
	if format != "" {
		params.Set("format", format)
	}
	return base + "?" + params.Encode()
}

// ParseBulkLines splits a newline-delimited block into trimmed, non-blank
// entries, preserving input order. No deduplication, no URL validation.
func ParseBulkLines(block string) []string {
	var out []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
