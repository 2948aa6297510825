package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/justrawaccel/network-speed/tui/styles"
)

// RenderHeader renders the top header bar with app name, measurement source,
// live/paused status, and monitored interface count.
func RenderHeader(theme styles.Theme, source string, paused bool, ifaceCount, width int, ver string) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Base0D).
		Background(theme.Base01).
		Bold(true).
		Render("netspeed")

	center := lipgloss.NewStyle().
		Foreground(theme.Base05).
		Background(theme.Base01).
		Render(source)

	status := "LIVE"
	statusColor := theme.Base0B
	if paused {
		status = "PAUSED"
		statusColor = theme.Base0A
	}
	right := lipgloss.NewStyle().
		Foreground(statusColor).
		Background(theme.Base01).
		Render(status)

	ifaces := lipgloss.NewStyle().
		Foreground(theme.Base04).
		Background(theme.Base01).
		Render(fmt.Sprintf("%d interfaces", ifaceCount))

	versionSeg := lipgloss.NewStyle().
		Foreground(theme.Base04).
		Background(theme.Base01).
		Render("v" + ver)

	content := fmt.Sprintf(" %s  |  %s  |  %s  |  %s  |  %s ", left, center, right, ifaces, versionSeg)

	return lipgloss.NewStyle().
		Background(theme.Base01).
		Width(width).
		Render(content)
}
