package resume

import (
	"time"

	"github.com/yourusername/qrfolio-api/internal/model"
)

// Document is the rendered form of a resume: a headless intermediate
// representation consumers project to HTML, PDF, or anything else. Rendering
// is a pure function of profile + sections + template; identical inputs
// produce identical documents.
type Document struct {
	Template    model.Template `json:"template"`
	Placeholder bool           `json:"placeholder"`
	Header      *Header        `json:"header,omitempty"`
	Sections    []Section      `json:"sections,omitempty"`
}

// Header carries the contact block. Nil when neither name nor designation
// is set.
type Header struct {
	FullName    string `json:"fullName,omitempty"`
	Designation string `json:"designation,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Location    string `json:"location,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	Links       []Link `json:"links,omitempty"`
}

// Link is an outbound social link, always opened in a new browsing context.
type Link struct {
	Label  string `json:"label"`
	URL    string `json:"url"`
	NewTab bool   `json:"newTab"`
}

type SectionKind string

const (
	SectionSummary        SectionKind = "summary"
	SectionExperience     SectionKind = "experience"
	SectionEducation      SectionKind = "education"
	SectionSkills         SectionKind = "skills"
	SectionCertifications SectionKind = "certifications"
)

// Section is one rendered block. Exactly one of the content fields is
// populated, matching Kind. Empty sections are never emitted.
type Section struct {
	Kind           SectionKind         `json:"kind"`
	Title          string              `json:"title,omitempty"`
	Summary        string              `json:"summary,omitempty"`
	Quoted         bool                `json:"quoted,omitempty"`
	Experience     []ExperienceItem    `json:"experience,omitempty"`
	Education      []EducationItem     `json:"education,omitempty"`
	Certifications []CertificationItem `json:"certifications,omitempty"`
	SkillGroups    []SkillGroup        `json:"skillGroups,omitempty"`
}

type ExperienceItem struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	DateRange   string `json:"dateRange"`
	Description string `json:"description,omitempty"`
}

type EducationItem struct {
	Degree       string `json:"degree"`
	Institution  string `json:"institution"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	DateRange    string `json:"dateRange"`
	GradeGPA     string `json:"gradeGpa,omitempty"`
	Description  string `json:"description,omitempty"`
}

type CertificationItem struct {
	Name          string `json:"name"`
	Issuer        string `json:"issuer"`
	Issued        string `json:"issued"`
	Expires       string `json:"expires,omitempty"`
	CredentialURL string `json:"credentialUrl,omitempty"`
}

// SkillGroup clusters skills under one category, in first-seen order.
type SkillGroup struct {
	Category string      `json:"category"`
	Skills   []SkillChip `json:"skills"`
}

// SkillChip carries the skill name plus its proficiency as visual weight.
type SkillChip struct {
	Name   string `json:"name"`
	Weight string `json:"weight,omitempty"`
}

// layout holds the per-template knobs: section order, titles, decoration.
// All content shaping runs through the shared subroutines below, so the
// inclusion rules hold identically across layouts.
type layout struct {
	order         []SectionKind
	summaryTitle  string
	expTitle      string
	eduTitle      string
	skillsTitle   string
	certsTitle    string
	currentLabel  string // label for in-progress experience ranges
	quotedSummary bool
}

var layouts = map[model.Template]layout{
	model.TemplateClassic: {
		order:        []SectionKind{SectionSummary, SectionExperience, SectionEducation, SectionCertifications, SectionSkills},
		summaryTitle: "Professional Summary",
		expTitle:     "Work Experience",
		eduTitle:     "Education",
		skillsTitle:  "Skills",
		certsTitle:   "Certifications",
		currentLabel: "Present",
	},
	model.TemplateModern: {
		order:        []SectionKind{SectionSummary, SectionExperience, SectionEducation, SectionSkills, SectionCertifications},
		summaryTitle: "Summary",
		expTitle:     "Experience",
		eduTitle:     "Education",
		skillsTitle:  "Skills",
		certsTitle:   "Certifications",
		currentLabel: "Present",
	},
	model.TemplateMinimal: {
		order:         []SectionKind{SectionSummary, SectionExperience, SectionEducation, SectionSkills, SectionCertifications},
		expTitle:      "Experience",
		eduTitle:      "Education",
		skillsTitle:   "Skills",
		certsTitle:    "Certifications",
		currentLabel:  "Present",
		quotedSummary: true,
	},
	model.TemplateCreative: {
		order:        []SectionKind{SectionSummary, SectionExperience, SectionEducation, SectionSkills, SectionCertifications},
		summaryTitle: "About",
		expTitle:     "Experience",
		eduTitle:     "Education",
		skillsTitle:  "Skills",
		certsTitle:   "Certifications",
		currentLabel: "Now",
	},
}

// Render maps a profile and its sections to a Document under the named
// template. Unknown template ids fall back to classic.
func Render(p *model.ResumeProfile, sections model.SectionSet, template string) *Document {
	tpl := model.NormalizeTemplate(template)
	doc := &Document{Template: tpl}

	if !hasContent(p, sections) {
		doc.Placeholder = true
		return doc
	}

	lay := layouts[tpl]
	doc.Header = renderHeader(p)

	for _, kind := range lay.order {
		switch kind {
		case SectionSummary:
			if p.Summary != "" {
				doc.Sections = append(doc.Sections, Section{
					Kind:    SectionSummary,
					Title:   lay.summaryTitle,
					Summary: p.Summary,
					Quoted:  lay.quotedSummary,
				})
			}
		case SectionExperience:
			if len(sections.Experience) > 0 {
				doc.Sections = append(doc.Sections, Section{
					Kind:       SectionExperience,
					Title:      lay.expTitle,
					Experience: renderExperience(sections.Experience, lay.currentLabel),
				})
			}
		case SectionEducation:
			if len(sections.Education) > 0 {
				doc.Sections = append(doc.Sections, Section{
					Kind:      SectionEducation,
					Title:     lay.eduTitle,
					Education: renderEducation(sections.Education),
				})
			}
		case SectionSkills:
			if len(sections.Skills) > 0 {
				doc.Sections = append(doc.Sections, Section{
					Kind:        SectionSkills,
					Title:       lay.skillsTitle,
					SkillGroups: GroupSkills(sections.Skills),
				})
			}
		case SectionCertifications:
			if len(sections.Certifications) > 0 {
				doc.Sections = append(doc.Sections, Section{
					Kind:           SectionCertifications,
					Title:          lay.certsTitle,
					Certifications: renderCertifications(sections.Certifications),
				})
			}
		}
	}

	return doc
}

// hasContent reports whether there is anything to render. A profile with no
// name, no designation, and all four lists empty gets the placeholder state.
func hasContent(p *model.ResumeProfile, s model.SectionSet) bool {
	return p.FullName != "" ||
		p.Designation != "" ||
		len(s.Education) > 0 ||
		len(s.Experience) > 0 ||
		len(s.Certifications) > 0 ||
		len(s.Skills) > 0
}

func renderHeader(p *model.ResumeProfile) *Header {
	if p.FullName == "" && p.Designation == "" {
		return nil
	}
	h := &Header{
		FullName:    p.FullName,
		Designation: p.Designation,
		Email:       p.Email,
		Phone:       p.Phone,
		Location:    p.Location,
		PhotoURL:    p.ProfilePhotoURL,
	}
	for _, l := range []struct {
		label string
		url   string
	}{
		{"LinkedIn", p.LinkedinURL},
		{"GitHub", p.GithubURL},
		{"Portfolio", p.PortfolioURL},
	} {
		if l.url != "" {
			h.Links = append(h.Links, Link{Label: l.label, URL: l.url, NewTab: true})
		}
	}
	return h
}

func renderExperience(entries []model.ExperienceEntry, currentLabel string) []ExperienceItem {
	items := make([]ExperienceItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, ExperienceItem{
			Position:    e.Position,
			Company:     e.Company,
			Location:    e.Location,
			DateRange:   DateRange(e.StartDate, e.EndDate, e.IsCurrent, currentLabel),
			Description: e.Description,
		})
	}
	return items
}

func renderEducation(entries []model.EducationEntry) []EducationItem {
	items := make([]EducationItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, EducationItem{
			Degree:       e.Degree,
			Institution:  e.Institution,
			FieldOfStudy: e.FieldOfStudy,
			DateRange:    DateRange(e.StartDate, e.EndDate, e.IsCurrent, "Present"),
			GradeGPA:     e.GradeGPA,
			Description:  e.Description,
		})
	}
	return items
}

func renderCertifications(entries []model.CertificationEntry) []CertificationItem {
	items := make([]CertificationItem, 0, len(entries))
	for _, c := range entries {
		items = append(items, CertificationItem{
			Name:          c.Name,
			Issuer:        c.IssuingOrganization,
			Issued:        FormatMonthYear(c.IssueDate),
			Expires:       FormatMonthYear(c.ExpiryDate),
			CredentialURL: c.CredentialURL,
		})
	}
	return items
}

// GroupSkills buckets skills by category, preserving the order in which
// categories first appear.
func GroupSkills(skills []model.SkillEntry) []SkillGroup {
	index := make(map[string]int)
	var groups []SkillGroup
	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, SkillChip{Name: s.Name, Weight: s.ProficiencyLevel})
	}
	return groups
}

// DateRange renders "Jan 2022 – Present" style ranges. currentLabel replaces
// the end date when the entry is marked current.
func DateRange(start, end string, isCurrent bool, currentLabel string) string {
	from := FormatMonthYear(start)
	if isCurrent {
		return from + " – " + currentLabel
	}
	to := FormatMonthYear(end)
	if from == "" && to == "" {
		return ""
	}
	return from + " – " + to
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01"}

// FormatMonthYear renders a date string as "Jan 2006", or "" when the input
// is empty or unparseable.
func FormatMonthYear(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2006")
		}
	}
	return ""
}
