package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTemplate(t *testing.T) {
	assert.Equal(t, TemplateClassic, NormalizeTemplate("classic"))
	assert.Equal(t, TemplateModern, NormalizeTemplate("modern"))
	assert.Equal(t, TemplateMinimal, NormalizeTemplate("minimal"))
	assert.Equal(t, TemplateCreative, NormalizeTemplate("creative"))

	assert.Equal(t, TemplateClassic, NormalizeTemplate(""))
	assert.Equal(t, TemplateClassic, NormalizeTemplate("Classic"))
	assert.Equal(t, TemplateClassic, NormalizeTemplate("funky"))
}

func TestValidSkillCategory(t *testing.T) {
	for _, cat := range []string{"technical", "soft", "language", "tools", "frameworks"} {
		assert.True(t, ValidSkillCategory(cat), cat)
	}
	assert.False(t, ValidSkillCategory(""))
	assert.False(t, ValidSkillCategory("hobby"))
}

func TestValidProficiency(t *testing.T) {
	for _, p := range []string{"beginner", "intermediate", "advanced", "expert"} {
		assert.True(t, ValidProficiency(p), p)
	}
	assert.False(t, ValidProficiency(""))
	assert.False(t, ValidProficiency("ninja"))
}

func TestEmptySections(t *testing.T) {
	s := EmptySections()
	assert.NotNil(t, s.Education)
	assert.NotNil(t, s.Experience)
	assert.NotNil(t, s.Certifications)
	assert.NotNil(t, s.Skills)
	assert.Empty(t, s.Education)
}

func TestPlanLevel(t *testing.T) {
	assert.Equal(t, 0, PlanLevel(PlanFree))
	assert.Equal(t, 1, PlanLevel(PlanPremium))
	assert.Equal(t, 0, PlanLevel("unknown"))
	assert.Less(t, PlanLevel(PlanFree), PlanLevel(PlanPremium))
}
