package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/justrawaccel/network-speed/tui/styles"
)

// RenderStatusBar renders the two-line footer showing sampling info and key
// bindings.
func RenderStatusBar(theme styles.Theme, interval time.Duration, lastSample time.Time, sampleErrs int, width int) string {
	bg := theme.Base01
	bgStyle := lipgloss.NewStyle().Background(bg)
	sep := lipgloss.NewStyle().Foreground(theme.Base03).Background(bg).Render(" | ")

	intervalSeg := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg).
		Render(fmt.Sprintf("every: %s", interval))
	lastStr := "never"
	if !lastSample.IsZero() {
		lastStr = lastSample.Format("15:04:05")
	}
	lastSeg := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg).
		Render(fmt.Sprintf("last: %s", lastStr))

	errColor := theme.Base0B
	if sampleErrs > 0 {
		errColor = theme.Base0A
	}
	errSeg := lipgloss.NewStyle().Foreground(errColor).Background(bg).
		Render(fmt.Sprintf("%d errors", sampleErrs))

	topContent := bgStyle.Render(" ") + intervalSeg + sep + lastSeg + sep + errSeg
	topWidth := lipgloss.Width(topContent)
	if topWidth < width {
		topContent += bgStyle.Render(strings.Repeat(" ", width-topWidth))
	}

	keyStyle := lipgloss.NewStyle().Foreground(theme.Base0D).Background(bg).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Base04).Background(bg)
	spacer := bgStyle.Render("  ")

	keys := bgStyle.Render(" ") +
		keyStyle.Render("p") + descStyle.Render(":pause") + spacer +
		keyStyle.Render("x") + descStyle.Render(":reset") + spacer +
		keyStyle.Render("r") + descStyle.Render(":refresh") + spacer +
		keyStyle.Render("u") + descStyle.Render(":units") + spacer +
		keyStyle.Render("q") + descStyle.Render(":quit")

	keysWidth := lipgloss.Width(keys)
	if keysWidth < width {
		keys += bgStyle.Render(strings.Repeat(" ", width-keysWidth))
	}

	return lipgloss.JoinVertical(lipgloss.Left, topContent, keys)
}
