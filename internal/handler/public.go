package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/qrfolio-api/internal/model"
	"github.com/yourusername/qrfolio-api/internal/repository"
	"github.com/yourusername/qrfolio-api/internal/resume"
)

// PublicHandler serves shared resumes to anonymous visitors.
type PublicHandler struct {
	resumeRepo  *repository.ResumeRepo
	sectionRepo *repository.SectionRepo
}

func NewPublicHandler(resumeRepo *repository.ResumeRepo, sectionRepo *repository.SectionRepo) *PublicHandler {
	return &PublicHandler{resumeRepo: resumeRepo, sectionRepo: sectionRepo}
}

// matchBySlug picks which prefix match a slug refers to. Exact slug equality
// wins outright; failing that, a lone prefix match still serves so short
// links like /resume/jan reach "Janet Doe". The ambiguous flag is set when
// several candidates remain, since first-name slugs are not unique.
func matchBySlug(matches []model.ResumeProfile, slug string) (profile *model.ResumeProfile, ambiguous bool) {
	var exact []int
	for i := range matches {
		if resume.ShareSlug(matches[i].FullName) == slug {
			exact = append(exact, i)
		}
	}

	switch {
	case len(exact) == 1:
		return &matches[exact[0]], false
	case len(exact) > 1:
		return nil, true
	}

	switch len(matches) {
	case 0:
		return nil, false
	case 1:
		return &matches[0], false
	default:
		return nil, true
	}
}

// GetBySlug handles GET /resume/public/:slug
// Looks up active resumes whose name starts with the slug. One match
// renders; zero is a 404; an ambiguous slug is a 409.
func (h *PublicHandler) GetBySlug(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
	if slug == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		return
	}

	matches, err := h.resumeRepo.FindActiveByNamePrefix(c.Request.Context(), slug)
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("Failed to look up public resume")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load resume"})
		return
	}

	profile, ambiguous := matchBySlug(matches, slug)
	if ambiguous {
		c.JSON(http.StatusConflict, gin.H{"error": "Multiple resumes match this link"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		return
	}

	sections := loadSectionsTolerant(c, h.sectionRepo, profile.ID)
	doc := resume.Render(profile, sections, string(profile.Template))
	c.JSON(http.StatusOK, doc)
}
