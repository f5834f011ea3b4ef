package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/qrfolio-api/internal/config"
	"github.com/yourusername/qrfolio-api/internal/middleware"
	"github.com/yourusername/qrfolio-api/internal/repository"
	"github.com/yourusername/qrfolio-api/internal/resume"
)

// DashboardHandler aggregates the editor landing page: completeness,
// share state, and plan in one round trip.
type DashboardHandler struct {
	cfg         *config.Config
	resumeRepo  *repository.ResumeRepo
	sectionRepo *repository.SectionRepo
	subRepo     *repository.SubscriptionRepo
}

func NewDashboardHandler(cfg *config.Config, resumeRepo *repository.ResumeRepo, sectionRepo *repository.SectionRepo, subRepo *repository.SubscriptionRepo) *DashboardHandler {
	return &DashboardHandler{cfg: cfg, resumeRepo: resumeRepo, sectionRepo: sectionRepo, subRepo: subRepo}
}

// Get handles GET /dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	profile, err := h.resumeRepo.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load resume")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	sections := loadSectionsTolerant(c, h.sectionRepo, profile.ID)
	progress := resume.Score(profile, sections)

	plan := middleware.CurrentPlan(c, h.subRepo)

	url := resume.PublicURL(h.cfg.PublicOrigin, profile)
	qrURL := ""
	if url != "" {
		qrURL = resume.QRImageURL(h.cfg.QRAPIBaseURL, url, 200)
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  profile,
		"progress": progress,
		"counts": gin.H{
			"education":      len(sections.Education),
			"experience":     len(sections.Experience),
			"certifications": len(sections.Certifications),
			"skills":         len(sections.Skills),
		},
		"share": gin.H{
			"url":    url,
			"qrUrl":  qrURL,
			"slug":   resume.ShareSlug(profile.FullName),
			"active": profile.IsActive,
		},
		"plan": plan,
	})
}
