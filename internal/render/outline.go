package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/p-n-ai/pai-roadmap/internal/roadmap"
)

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent)
	lockedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	progressStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// Status markers used by Outline.
const (
	MarkerCompleted = "✓"
	MarkerUnlocked  = "○"
	MarkerLocked    = "🔒"
	MarkerSelected  = "▸"
)

func marker(s roadmap.Status) string {
	switch s {
	case roadmap.StatusCompleted:
		return MarkerCompleted
	case roadmap.StatusUnlocked:
		return MarkerUnlocked
	default:
		return MarkerLocked
	}
}

// Outline renders the step list with the selected step highlighted and a
// progress line at the bottom.
func Outline(v roadmap.View) string {
	var b strings.Builder
	for _, s := range v.Steps {
		cursor := " "
		if s.ID == v.Selected.ID {
			cursor = MarkerSelected
		}
		status := v.Status(s.ID)
		line := fmt.Sprintf("%s %s %s  %s", cursor, marker(status), numberStyle.Render(s.Number), s.Title)

		switch {
		case s.ID == v.Selected.ID:
			line = selectedStyle.Render(line)
		case status == roadmap.StatusLocked:
			line = lockedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(progressStyle.Render(Progress(v)))
	return b.String()
}

// Progress summarises completion and total duration.
func Progress(v roadmap.View) string {
	return fmt.Sprintf("Progress: %.0f%% (%d/%d steps) · %s total",
		v.ProgressPercent, len(v.CompletedIDs), len(v.Steps), Weeks(v.TotalWeeks))
}

// Detail renders the selected step card followed by its prerequisites.
func Detail(v roadmap.View) string {
	card := Card(v.Selected, v.SelectedCompleted)
	if chips := PrerequisiteChips(v.Prerequisites); chips != "" {
		return card + "\n" + chips
	}
	return card
}
