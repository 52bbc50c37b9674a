package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// Date renders an optional calendar date, or a dim dash when unset.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Dim("--")
	}
	return t.Format("2006-01-02")
}

// Window renders an allocation or project date range. Open ends show as "..".
func Window(start, end *time.Time) string {
	if start == nil && end == nil {
		return Dim("untimed")
	}
	from, to := "..", ".."
	if start != nil {
		from = start.Format("2006-01-02")
	}
	if end != nil {
		to = end.Format("2006-01-02")
	}
	return from + " → " + to
}

// Scope names the scenario a row belongs to.
func Scope(scenarioID *int64) string {
	if scenarioID == nil {
		return "baseline"
	}
	return "scenario " + itoa(*scenarioID)
}
