package resume

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/yourusername/qrfolio-api/internal/model"
)

// SummaryMinLength is the minimum summary length counted in characters.
// The suggestion copy says "words"; the check has always been characters.
const SummaryMinLength = 60

// ChecklistTotal is the fixed number of completion checklist items.
const ChecklistTotal = 6

// Progress is the completeness score for a resume: how many of the six
// checklist items are satisfied, plus ordered improvement suggestions for
// the ones that are not.
type Progress struct {
	Completed   int             `json:"completed"`
	Total       int             `json:"total"`
	Percentage  int             `json:"percentage"`
	Suggestions []string        `json:"suggestions"`
	Checklist   []ChecklistItem `json:"checklist"`
}

// ChecklistItem is one entry of the fixed six-item checklist.
type ChecklistItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Current   int    `json:"current,omitempty"`
	Target    int    `json:"target,omitempty"`
}

// Score computes the completion progress for a profile and its sections.
// Pure function of current state; cheap enough to re-run on every edit.
func Score(p *model.ResumeProfile, sections model.SectionSet) Progress {
	completed := 0
	suggestions := []string{}

	basicDone := p.FullName != "" && p.Designation != "" && p.Email != ""
	if basicDone {
		completed++
	} else {
		suggestions = append(suggestions, "Add your full name, job title, and email address")
	}

	summaryLen := utf8.RuneCountInString(p.Summary)
	summaryDone := p.Summary != "" && summaryLen >= SummaryMinLength
	if summaryDone {
		completed++
	} else if p.Summary != "" {
		suggestions = append(suggestions,
			fmt.Sprintf("Write a longer summary (%d/%d words minimum)", summaryLen, SummaryMinLength))
	} else {
		suggestions = append(suggestions, "Add a professional summary (60+ words)")
	}

	if len(sections.Experience) > 0 {
		completed++
	} else {
		suggestions = append(suggestions, "Add at least one work experience")
	}

	if len(sections.Education) > 0 {
		completed++
	} else {
		suggestions = append(suggestions, "Add your educational background")
	}

	if len(sections.Skills) > 0 {
		completed++
	} else {
		suggestions = append(suggestions, "Add your professional skills")
	}

	linkCount, missing := socialLinks(p)
	linksDone := linkCount >= 2
	switch {
	case linksDone:
		completed++
	case linkCount == 1:
		if len(missing) > 2 {
			missing = missing[:2]
		}
		suggestions = append(suggestions,
			fmt.Sprintf("Add more social links (%s) to improve your profile", strings.Join(missing, " or ")))
	default:
		suggestions = append(suggestions, "Add social links (LinkedIn, GitHub, or Portfolio)")
	}

	return Progress{
		Completed:   completed,
		Total:       ChecklistTotal,
		Percentage:  int(math.Round(float64(completed) / ChecklistTotal * 100)),
		Suggestions: suggestions,
		Checklist: []ChecklistItem{
			{ID: "basic", Title: "Basic Information", Completed: basicDone},
			{ID: "summary", Title: "Professional Summary", Completed: summaryDone, Current: summaryLen, Target: SummaryMinLength},
			{ID: "experience", Title: "Work Experience", Completed: len(sections.Experience) > 0},
			{ID: "education", Title: "Education", Completed: len(sections.Education) > 0},
			{ID: "skills", Title: "Skills", Completed: len(sections.Skills) > 0},
			{ID: "links", Title: "Social Links", Completed: linksDone, Current: linkCount, Target: 2},
		},
	}
}

// socialLinks counts the profile's configured social links and returns the
// display names of the missing ones, in checklist order.
func socialLinks(p *model.ResumeProfile) (count int, missing []string) {
	links := []struct {
		name string
		url  string
	}{
		{"LinkedIn", p.LinkedinURL},
		{"GitHub", p.GithubURL},
		{"Portfolio", p.PortfolioURL},
	}
	for _, l := range links {
		if l.url != "" {
			count++
		} else {
			missing = append(missing, l.name)
		}
	}
	return count, missing
}
