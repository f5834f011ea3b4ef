package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/qrfolio-api/internal/config"
	"github.com/yourusername/qrfolio-api/internal/model"
	"github.com/yourusername/qrfolio-api/internal/repository"
	"github.com/yourusername/qrfolio-api/internal/resume"
)

type ResumeHandler struct {
	cfg         *config.Config
	resumeRepo  *repository.ResumeRepo
	sectionRepo *repository.SectionRepo
}

func NewResumeHandler(cfg *config.Config, resumeRepo *repository.ResumeRepo, sectionRepo *repository.SectionRepo) *ResumeHandler {
	return &ResumeHandler{cfg: cfg, resumeRepo: resumeRepo, sectionRepo: sectionRepo}
}

// loadSectionsTolerant pulls all four section lists. A failed section falls
// back to an empty list so one bad table never blanks the whole resume.
func loadSectionsTolerant(c *gin.Context, repo *repository.SectionRepo, resumeID uuid.UUID) model.SectionSet {
	ctx := c.Request.Context()
	sections := model.EmptySections()

	if edu, err := repo.ListEducation(ctx, resumeID); err != nil {
		log.Warn().Err(err).Str("resumeId", resumeID.String()).Msg("Failed to load education section")
	} else {
		sections.Education = edu
	}
	if exp, err := repo.ListExperience(ctx, resumeID); err != nil {
		log.Warn().Err(err).Str("resumeId", resumeID.String()).Msg("Failed to load experience section")
	} else {
		sections.Experience = exp
	}
	if certs, err := repo.ListCertifications(ctx, resumeID); err != nil {
		log.Warn().Err(err).Str("resumeId", resumeID.String()).Msg("Failed to load certifications section")
	} else {
		sections.Certifications = certs
	}
	if skills, err := repo.ListSkills(ctx, resumeID); err != nil {
		log.Warn().Err(err).Str("resumeId", resumeID.String()).Msg("Failed to load skills section")
	} else {
		sections.Skills = skills
	}

	return sections
}

// GetResume handles GET /resume
// Returns the user's profile plus all four section lists, creating an empty
// profile on first access.
func (h *ResumeHandler) GetResume(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	profile, err := h.resumeRepo.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load resume")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load resume"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  profile,
		"sections": loadSectionsTolerant(c, h.sectionRepo, profile.ID),
	})
}

// UpdateResume handles PUT /resume
// Replaces the profile's scalar fields. Section lists have their own endpoint.
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var updates model.ResumeProfile
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.resumeRepo.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load resume")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load resume"})
		return
	}

	updated, err := h.resumeRepo.Update(c.Request.Context(), profile.ID, &updates)
	if err != nil {
		log.Error().Err(err).Msg("Failed to update resume")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update resume"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// UpdateSection handles PUT /resume/sections/:section
// Replaces one section list wholesale. Section is one of education,
// experience, certifications, skills.
func (h *ResumeHandler) UpdateSection(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	profile, err := h.resumeRepo.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load resume")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load resume"})
		return
	}

	ctx := c.Request.Context()
	switch c.Param("section") {
	case "education":
		var entries []model.EducationEntry
		if err := c.ShouldBindJSON(&entries); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if err := h.sectionRepo.ReplaceEducation(ctx, profile.ID, entries); err != nil {
			log.Error().Err(err).Msg("Failed to save education")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save section"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"education": entries})

	case "experience":
		var entries []model.ExperienceEntry
		if err := c.ShouldBindJSON(&entries); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if err := h.sectionRepo.ReplaceExperience(ctx, profile.ID, entries); err != nil {
			log.Error().Err(err).Msg("Failed to save experience")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save section"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"experience": entries})

	case "certifications":
		var entries []model.CertificationEntry
		if err := c.ShouldBindJSON(&entries); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if err := h.sectionRepo.ReplaceCertifications(ctx, profile.ID, entries); err != nil {
			log.Error().Err(err).Msg("Failed to save certifications")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save section"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"certifications": entries})

	case "skills":
		var entries []model.SkillEntry
		if err := c.ShouldBindJSON(&entries); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		for _, s := range entries {
			if !model.ValidSkillCategory(s.Category) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skill category: " + s.Category})
				return
			}
			if s.ProficiencyLevel != "" && !model.ValidProficiency(s.ProficiencyLevel) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid proficiency level: " + s.ProficiencyLevel})
				return
			}
		}
		if err := h.sectionRepo.ReplaceSkills(ctx, profile.ID, entries); err != nil {
			log.Error().Err(err).Msg("Failed to save skills")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save section"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"skills": entries})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown section"})
	}
}

// Preview handles GET /resume/preview
// Renders the resume as a layout-agnostic document. The optional template
// query overrides the saved template, so the editor can preview switches
// without saving.
func (h *ResumeHandler) Preview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	profile, err := h.resumeRepo.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load resume")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load resume"})
		return
	}

	template := c.Query("template")
	if template == "" {
		template = string(profile.Template)
	}

	sections := loadSectionsTolerant(c, h.sectionRepo, profile.ID)
	c.JSON(http.StatusOK, gin.H{
		"document": resume.Render(profile, sections, template),
		"progress": resume.Score(profile, sections),
	})
}

// Score handles GET /resume/score
// Returns completeness progress with actionable suggestions.
func (h *ResumeHandler) Score(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	profile, err := h.resumeRepo.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load resume")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load resume"})
		return
	}

	progress := resume.Score(profile, loadSectionsTolerant(c, h.sectionRepo, profile.ID))
	c.JSON(http.StatusOK, progress)
}

// Share handles GET /resume/share
// Returns the public URL, a 200px QR image URL for it, and the active state.
// URLs are empty until the profile has a saved full name.
func (h *ResumeHandler) Share(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	profile, err := h.resumeRepo.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load resume")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load resume"})
		return
	}

	url := resume.PublicURL(h.cfg.PublicOrigin, profile)
	qrURL := ""
	if url != "" {
		qrURL = resume.QRImageURL(h.cfg.QRAPIBaseURL, url, 200)
	}
	c.JSON(http.StatusOK, gin.H{
		"url":    url,
		"qrUrl":  qrURL,
		"slug":   resume.ShareSlug(profile.FullName),
		"active": profile.IsActive,
	})
}

// SetActive handles PUT /resume/active
// Toggles public visibility. Activation requires a saved full name, since
// the share URL is derived from it.
func (h *ResumeHandler) SetActive(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active is required"})
		return
	}

	profile, err := h.resumeRepo.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load resume")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load resume"})
		return
	}

	if *req.Active && profile.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Add your full name before publishing"})
		return
	}

	updated, err := h.resumeRepo.SetActive(c.Request.Context(), profile.ID, *req.Active)
	if err != nil {
		log.Error().Err(err).Msg("Failed to toggle resume visibility")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update resume"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":    resume.PublicURL(h.cfg.PublicOrigin, updated),
		"active": updated.IsActive,
	})
}
