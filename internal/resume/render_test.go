package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/qrfolio-api/internal/model"
)

var allTemplates = []string{"classic", "modern", "minimal", "creative"}

func sampleSections() model.SectionSet {
	s := model.EmptySections()
	s.Experience = append(s.Experience, model.ExperienceEntry{
		ID:        "1",
		Company:   "Acme",
		Position:  "Engineer",
		StartDate: "2022-01-15",
		IsCurrent: true,
	})
	s.Education = append(s.Education, model.EducationEntry{
		ID:          "2",
		Institution: "MIT",
		Degree:      "BSc",
		StartDate:   "2016-09-01",
		EndDate:     "2020-06-01",
	})
	s.Skills = append(s.Skills, model.SkillEntry{
		ID: "3", Name: "Go", Category: model.SkillTechnical, ProficiencyLevel: model.ProficiencyExpert,
	})
	s.Certifications = append(s.Certifications, model.CertificationEntry{
		ID: "4", Name: "CKA", IssuingOrganization: "CNCF", IssueDate: "2023-03-10",
	})
	return s
}

func sectionByKind(t *testing.T, doc *Document, kind SectionKind) *Section {
	t.Helper()
	for i := range doc.Sections {
		if doc.Sections[i].Kind == kind {
			return &doc.Sections[i]
		}
	}
	return nil
}

func TestRender_PlaceholderForEmptyResume(t *testing.T) {
	for _, tpl := range allTemplates {
		t.Run(tpl, func(t *testing.T) {
			doc := Render(&model.ResumeProfile{}, model.EmptySections(), tpl)
			assert.True(t, doc.Placeholder)
			assert.Nil(t, doc.Header)
			assert.Empty(t, doc.Sections)
		})
	}
}

func TestRender_EmptySectionsOmittedInEveryTemplate(t *testing.T) {
	p := &model.ResumeProfile{FullName: "Jane Smith", Designation: "Engineer"}
	s := sampleSections()
	s.Education = nil

	for _, tpl := range allTemplates {
		t.Run(tpl, func(t *testing.T) {
			doc := Render(p, s, tpl)
			assert.Nil(t, sectionByKind(t, doc, SectionEducation))
			assert.NotNil(t, sectionByKind(t, doc, SectionExperience))
		})
	}
}

func TestRender_UnknownTemplateFallsBackToClassic(t *testing.T) {
	p := &model.ResumeProfile{FullName: "Jane Smith", Summary: "hello"}
	got := Render(p, sampleSections(), "funky")
	want := Render(p, sampleSections(), "classic")
	assert.Equal(t, want, got)
	assert.Equal(t, model.TemplateClassic, got.Template)
}

func TestRender_SectionOrderPerTemplate(t *testing.T) {
	p := &model.ResumeProfile{FullName: "Jane Smith", Summary: "hello"}
	s := sampleSections()

	kinds := func(doc *Document) []SectionKind {
		out := make([]SectionKind, 0, len(doc.Sections))
		for _, sec := range doc.Sections {
			out = append(out, sec.Kind)
		}
		return out
	}

	classic := Render(p, s, "classic")
	assert.Equal(t, []SectionKind{SectionSummary, SectionExperience, SectionEducation, SectionCertifications, SectionSkills}, kinds(classic))

	for _, tpl := range []string{"modern", "minimal", "creative"} {
		doc := Render(p, s, tpl)
		assert.Equal(t, []SectionKind{SectionSummary, SectionExperience, SectionEducation, SectionSkills, SectionCertifications}, kinds(doc), tpl)
	}
}

func TestRender_TemplateTitles(t *testing.T) {
	p := &model.ResumeProfile{FullName: "Jane Smith", Summary: "hello"}
	s := sampleSections()

	classic := Render(p, s, "classic")
	assert.Equal(t, "Professional Summary", sectionByKind(t, classic, SectionSummary).Title)
	assert.Equal(t, "Work Experience", sectionByKind(t, classic, SectionExperience).Title)

	modern := Render(p, s, "modern")
	assert.Equal(t, "Summary", sectionByKind(t, modern, SectionSummary).Title)
	assert.Equal(t, "Experience", sectionByKind(t, modern, SectionExperience).Title)

	minimal := Render(p, s, "minimal")
	sum := sectionByKind(t, minimal, SectionSummary)
	assert.Empty(t, sum.Title)
	assert.True(t, sum.Quoted)

	creative := Render(p, s, "creative")
	assert.Equal(t, "About", sectionByKind(t, creative, SectionSummary).Title)
}

func TestRender_HeaderLinks(t *testing.T) {
	p := &model.ResumeProfile{
		FullName:     "Jane Smith",
		LinkedinURL:  "https://linkedin.com/in/jane",
		PortfolioURL: "https://jane.dev",
	}
	doc := Render(p, model.EmptySections(), "classic")
	require.NotNil(t, doc.Header)
	require.Len(t, doc.Header.Links, 2)
	assert.Equal(t, Link{Label: "LinkedIn", URL: "https://linkedin.com/in/jane", NewTab: true}, doc.Header.Links[0])
	assert.Equal(t, Link{Label: "Portfolio", URL: "https://jane.dev", NewTab: true}, doc.Header.Links[1])
}

func TestRender_CurrentExperienceLabel(t *testing.T) {
	p := &model.ResumeProfile{FullName: "Jane Smith"}
	s := sampleSections()

	classic := Render(p, s, "classic")
	assert.Equal(t, "Jan 2022 – Present", sectionByKind(t, classic, SectionExperience).Experience[0].DateRange)

	creative := Render(p, s, "creative")
	assert.Equal(t, "Jan 2022 – Now", sectionByKind(t, creative, SectionExperience).Experience[0].DateRange)
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "Jan 2022 – Present", DateRange("2022-01-15", "", true, "Present"))
	assert.Equal(t, "Jun 2020 – Dec 2021", DateRange("2020-06-01", "2021-12-15", false, "Present"))
	assert.Equal(t, "", DateRange("", "", false, "Present"))
	assert.Equal(t, "Jun 2020 – ", DateRange("2020-06-01", "", false, "Present"))
}

func TestFormatMonthYear(t *testing.T) {
	assert.Equal(t, "Jan 2022", FormatMonthYear("2022-01-15"))
	assert.Equal(t, "Mar 2023", FormatMonthYear("2023-03-10T00:00:00Z"))
	assert.Equal(t, "Sep 2016", FormatMonthYear("2016-09"))
	assert.Equal(t, "", FormatMonthYear(""))
	assert.Equal(t, "", FormatMonthYear("not-a-date"))
}

func TestGroupSkills_FirstSeenCategoryOrder(t *testing.T) {
	skills := []model.SkillEntry{
		{Name: "Go", Category: model.SkillTechnical, ProficiencyLevel: model.ProficiencyExpert},
		{Name: "Spanish", Category: model.SkillLanguage},
		{Name: "Postgres", Category: model.SkillTechnical, ProficiencyLevel: model.ProficiencyAdvanced},
	}
	groups := GroupSkills(skills)
	require.Len(t, groups, 2)
	assert.Equal(t, model.SkillTechnical, groups[0].Category)
	assert.Equal(t, []SkillChip{
		{Name: "Go", Weight: model.ProficiencyExpert},
		{Name: "Postgres", Weight: model.ProficiencyAdvanced},
	}, groups[0].Skills)
	assert.Equal(t, model.SkillLanguage, groups[1].Category)
}
