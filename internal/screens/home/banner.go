package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examsim/internal/ui/theme"
)

// Block-letter title for the home screen.
const bannerFull = ` ███████╗██╗  ██╗ █████╗ ███╗   ███╗███████╗██╗███╗   ███╗
 ██╔════╝╚██╗██╔╝██╔══██╗████╗ ████║██╔════╝██║████╗ ████║
 █████╗   ╚███╔╝ ███████║██╔████╔██║███████╗██║██╔████╔██║
 ██╔══╝   ██╔██╗ ██╔══██║██║╚██╔╝██║╚════██║██║██║╚██╔╝██║
 ███████╗██╔╝ ██╗██║  ██║██║ ╚═╝ ██║███████║██║██║ ╚═╝ ██║
 ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝╚══════╝╚═╝╚═╝     ╚═╝`

const bannerCompact = "E · X · A · M · S · I · M"

// renderBanner returns the styled title block or compact fallback.
func renderBanner(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := bannerFull
	if compact {
		art = bannerCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the dashboard stats in a bordered box matching the
// content width.
func renderStatsBar(poolSize, domainCount, sessions int, accuracy float64, cw int, compact bool) string {
	poolStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	sessStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	accText := dimStyle.Render("— %")
	if sessions > 0 {
		accText = accStyle.Render(fmt.Sprintf("%.0f%%", accuracy))
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			poolStyle.Render(fmt.Sprintf("Q%d", poolSize)),
			sessStyle.Render(fmt.Sprintf("#%d", sessions)),
			accText,
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s  %s",
			poolStyle.Render(fmt.Sprintf("%d QUESTIONS", poolSize)),
			dimStyle.Render(fmt.Sprintf("%d DOMAINS", domainCount)),
			sessStyle.Render(fmt.Sprintf("%d EXAMS TAKEN", sessions)),
			accText,
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}
