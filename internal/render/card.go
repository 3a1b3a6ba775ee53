// Package render turns roadmap state into terminal and spreadsheet output.
// Renderers are pure: they read a step or a view and never call back into
// the controller.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/p-n-ai/pai-roadmap/internal/curriculum"
)

var (
	colorNumber   = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#D1D5DB"}
	colorTitle    = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	colorBody     = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#E5E7EB"}
	colorWeeks    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	colorCategory = lipgloss.AdaptiveColor{Light: "#92400E", Dark: "#FCD34D"}
	colorResource = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#93C5FD"}
	colorSuccess  = lipgloss.AdaptiveColor{Light: "#166534", Dark: "#86EFAC"}
	colorMuted    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorAccent   = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#C4B5FD"}

	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(1, 2)
	numberStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorNumber)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	bodyStyle     = lipgloss.NewStyle().Foreground(colorBody)
	weeksStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorWeeks)
	labelStyle    = lipgloss.NewStyle().Foreground(colorBody)
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCategory)
	resourceStyle = lipgloss.NewStyle().Foreground(colorResource)
	badgeStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
)

// CompletedBadge is the label shown on completed steps.
const CompletedBadge = "✅ Completed"

// Weeks formats a duration in weeks with singular/plural wording.
func Weeks(n int) string {
	if n == 1 {
		return "1 week"
	}
	return fmt.Sprintf("%d weeks", n)
}

// Category normalises a category label for display.
func Category(c string) string {
	// Casers hold state, so each call gets its own.
	return cases.Upper(language.Und).String(c)
}

// Card renders the details of one step. The badge appears only when
// completed is true and the resources line only when the step has resources.
func Card(step curriculum.Step, completed bool) string {
	header := numberStyle.Render("#"+step.Number) + "  " + titleStyle.Render(step.Title)
	if completed {
		header += "  " + badgeStyle.Render(CompletedBadge)
	}

	lines := []string{header}
	if step.Desc != "" {
		lines = append(lines, "", bodyStyle.Render(step.Desc))
	}
	lines = append(lines,
		"",
		weeksStyle.Render(Weeks(step.WeeksToFinish)),
		labelStyle.Render("Category:")+" "+categoryStyle.Render(Category(step.Category)),
	)

	if len(step.Resources) > 0 {
		res := make([]string, 0, len(step.Resources))
		for _, r := range step.Resources {
			res = append(res, resourceStyle.Render(r))
		}
		lines = append(lines, labelStyle.Render("Resources:")+" "+strings.Join(res, ", "))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// PrerequisiteChips renders resolved prerequisites as a single line.
// It returns an empty string when there are none.
func PrerequisiteChips(refs []curriculum.StepRef) string {
	if len(refs) == 0 {
		return ""
	}
	chips := make([]string, 0, len(refs))
	for _, r := range refs {
		chips = append(chips, resourceStyle.Render(fmt.Sprintf("[%d] %s", r.ID, r.Title)))
	}
	return labelStyle.Render("Prerequisites:") + " " + strings.Join(chips, "  ")
}
