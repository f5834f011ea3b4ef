package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// ImportHandler extracts text from an uploaded PDF resume and suggests
// profile field values. Nothing is saved; the client reviews the suggestions
// and applies them through the normal save endpoints.
type ImportHandler struct{}

func NewImportHandler() *ImportHandler {
	return &ImportHandler{}
}

var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`\+?[0-9][0-9 ()\-]{7,}[0-9]`)
	linkedinRe = regexp.MustCompile(`(?:https?://)?(?:www\.)?linkedin\.com/in/[A-Za-z0-9\-_%]+`)
	githubRe   = regexp.MustCompile(`(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9\-]+`)
)

// Import handles POST /resume/import
// Accepts a PDF via multipart form and returns extracted text plus suggested
// profile fields pulled from it.
func (h *ImportHandler) Import(c *gin.Context) {
	_, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	// Validate file type
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are supported"})
		return
	}

	// Limit to 10MB
	if header.Size > 10*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 10MB."})
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	// Validate PDF magic bytes (header must start with %PDF)
	if len(fileBytes) < 4 || string(fileBytes[:4]) != "%PDF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid PDF file"})
		return
	}

	text, err := extractPDFText(fileBytes)
	if err != nil {
		log.Error().Err(err).Msg("Failed to extract text from PDF")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Could not extract text from this PDF. It may be image-based or corrupted.",
		})
		return
	}

	text = strings.TrimSpace(text)
	if len(text) < 50 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Very little text was extracted. This PDF may be image-based (scanned). Try a text-based PDF.",
		})
		return
	}

	log.Info().
		Str("filename", header.Filename).
		Int("bytes", len(fileBytes)).
		Int("textLen", len(text)).
		Msg("Resume PDF imported")

	c.JSON(http.StatusOK, gin.H{
		"text":      text,
		"suggested": suggestFields(text),
	})
}

// suggestFields scrapes contact details out of extracted resume text.
func suggestFields(text string) gin.H {
	suggested := gin.H{}

	// First non-blank line is usually the candidate's name
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) <= 60 && !strings.ContainsAny(line, "@0123456789") {
			suggested["fullName"] = line
		}
		break
	}

	if m := emailRe.FindString(text); m != "" {
		suggested["email"] = m
	}
	if m := phoneRe.FindString(text); m != "" {
		suggested["phone"] = strings.TrimSpace(m)
	}
	if m := linkedinRe.FindString(text); m != "" {
		suggested["linkedinUrl"] = ensureScheme(m)
	}
	if m := githubRe.FindString(text); m != "" {
		suggested["githubUrl"] = ensureScheme(m)
	}

	return suggested
}

func ensureScheme(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}

func extractPDFText(data []byte) (string, error) {
	// Write to temp file; ledongthuc/pdf requires a file reader
	tmpFile, err := os.CreateTemp("", "resume-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := tmpFile.Write(data); err != nil {
		return "", fmt.Errorf("writing temp file: %w", err)
	}

	f, reader, err := pdf.Open(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Warn().Int("page", i).Err(err).Msg("Failed to extract text from PDF page")
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}
