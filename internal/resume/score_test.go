package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/qrfolio-api/internal/model"
)

func fullProfile() *model.ResumeProfile {
	return &model.ResumeProfile{
		FullName:    "Jane Smith",
		Designation: "Backend Engineer",
		Email:       "jane@example.com",
		Summary:     strings.Repeat("x", 80),
		LinkedinURL: "https://linkedin.com/in/jane",
		GithubURL:   "https://github.com/jane",
	}
}

func fullSections() model.SectionSet {
	s := model.EmptySections()
	s.Experience = append(s.Experience, model.ExperienceEntry{Company: "Acme", Position: "Engineer"})
	s.Education = append(s.Education, model.EducationEntry{Institution: "MIT", Degree: "BSc"})
	s.Skills = append(s.Skills, model.SkillEntry{Name: "Go", Category: model.SkillTechnical})
	return s
}

func TestScore_AllComplete(t *testing.T) {
	got := Score(fullProfile(), fullSections())
	assert.Equal(t, 6, got.Completed)
	assert.Equal(t, 6, got.Total)
	assert.Equal(t, 100, got.Percentage)
	assert.Empty(t, got.Suggestions)
}

func TestScore_BasicInfoRequiresAllThreeFields(t *testing.T) {
	tests := []struct {
		name  string
		strip func(*model.ResumeProfile)
	}{
		{"missing name", func(p *model.ResumeProfile) { p.FullName = "" }},
		{"missing designation", func(p *model.ResumeProfile) { p.Designation = "" }},
		{"missing email", func(p *model.ResumeProfile) { p.Email = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fullProfile()
			tt.strip(p)
			got := Score(p, fullSections())
			assert.Equal(t, 5, got.Completed)
			assert.False(t, got.Checklist[0].Completed)
			require.Len(t, got.Suggestions, 1)
			assert.Equal(t, "Add your full name, job title, and email address", got.Suggestions[0])
		})
	}
}

func TestScore_SummaryLengthBoundary(t *testing.T) {
	p := fullProfile()

	p.Summary = strings.Repeat("a", 60)
	assert.Equal(t, 6, Score(p, fullSections()).Completed)

	p.Summary = strings.Repeat("a", 59)
	got := Score(p, fullSections())
	assert.Equal(t, 5, got.Completed)
	require.Len(t, got.Suggestions, 1)
	assert.Contains(t, got.Suggestions[0], "59/60")
}

func TestScore_SummaryCountsRunesNotBytes(t *testing.T) {
	p := fullProfile()
	p.Summary = strings.Repeat("é", 60)
	assert.Equal(t, 6, Score(p, fullSections()).Completed)
}

func TestScore_EmptySummarySuggestion(t *testing.T) {
	p := fullProfile()
	p.Summary = ""
	got := Score(p, fullSections())
	require.Len(t, got.Suggestions, 1)
	assert.Equal(t, "Add a professional summary (60+ words)", got.Suggestions[0])
}

func TestScore_SocialLinks(t *testing.T) {
	t.Run("no links gives generic suggestion", func(t *testing.T) {
		p := fullProfile()
		p.LinkedinURL, p.GithubURL, p.PortfolioURL = "", "", ""
		got := Score(p, fullSections())
		assert.Equal(t, 5, got.Completed)
		require.Len(t, got.Suggestions, 1)
		assert.Equal(t, "Add social links (LinkedIn, GitHub, or Portfolio)", got.Suggestions[0])
	})

	t.Run("one link names the missing two", func(t *testing.T) {
		p := fullProfile()
		p.LinkedinURL, p.PortfolioURL = "", ""
		p.GithubURL = "https://github.com/jane"
		got := Score(p, fullSections())
		assert.Equal(t, 5, got.Completed)
		require.Len(t, got.Suggestions, 1)
		assert.Equal(t, "Add more social links (LinkedIn or Portfolio) to improve your profile", got.Suggestions[0])
	})

	t.Run("two links complete", func(t *testing.T) {
		got := Score(fullProfile(), fullSections())
		assert.True(t, got.Checklist[5].Completed)
		assert.Empty(t, got.Suggestions)
	})
}

func TestScore_PercentageRounding(t *testing.T) {
	// Exactly 3 of 6 items: basic info + summary + skills.
	p := fullProfile()
	p.LinkedinURL, p.GithubURL = "", ""
	s := model.EmptySections()
	s.Skills = append(s.Skills, model.SkillEntry{Name: "Go", Category: model.SkillTechnical})

	got := Score(p, s)
	assert.Equal(t, 3, got.Completed)
	assert.Equal(t, 50, got.Percentage)
}

func TestScore_EmptyProfile(t *testing.T) {
	got := Score(&model.ResumeProfile{}, model.EmptySections())
	assert.Equal(t, 0, got.Completed)
	assert.Equal(t, 0, got.Percentage)
	assert.Len(t, got.Suggestions, 6)
}

func TestScore_SuggestionsFollowChecklistOrder(t *testing.T) {
	got := Score(&model.ResumeProfile{}, model.EmptySections())
	require.Len(t, got.Suggestions, 6)
	assert.Equal(t, "Add your full name, job title, and email address", got.Suggestions[0])
	assert.Equal(t, "Add a professional summary (60+ words)", got.Suggestions[1])
	assert.Equal(t, "Add at least one work experience", got.Suggestions[2])
	assert.Equal(t, "Add your educational background", got.Suggestions[3])
	assert.Equal(t, "Add your professional skills", got.Suggestions[4])
	assert.Equal(t, "Add social links (LinkedIn, GitHub, or Portfolio)", got.Suggestions[5])
}
