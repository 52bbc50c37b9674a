package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// BandStyle colors a risk band: High red, Medium yellow, Low green.
func BandStyle(band domain.RiskBand) lipgloss.Style {
	switch band {
	case domain.RiskHigh:
		return StyleRed
	case domain.RiskMedium:
		return StyleYellow
	case domain.RiskLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// BandIndicator renders a band as "● HIGH".
func BandIndicator(band domain.RiskBand) string {
	if band == "" {
		return StyleDim.Render("● UNKNOWN")
	}
	return BandStyle(band).Render("● " + strings.ToUpper(string(band)))
}

// HealthIndicator renders a project health status in its own color.
func HealthIndicator(h domain.HealthStatus) string {
	switch h {
	case domain.HealthRed:
		return StyleRed.Render("● Red")
	case domain.HealthYellow:
		return StyleYellow.Render("● Yellow")
	case domain.HealthGreen:
		return StyleGreen.Render("● Green")
	default:
		return StyleDim.Render("● -")
	}
}

// StatusBadge renders a scenario status; published scenarios are frozen.
func StatusBadge(s domain.ScenarioStatus) string {
	if s == domain.ScenarioPublished {
		return StyleBlue.Render("published")
	}
	return StyleGreen.Render("planned")
}

// Header renders an orange section title over a dim rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(strings.Repeat("─", len(upper))))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
