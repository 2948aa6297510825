package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	netspeed "github.com/justrawaccel/network-speed"
	"github.com/justrawaccel/network-speed/tui/components"
	"github.com/justrawaccel/network-speed/tui/keys"
	"github.com/justrawaccel/network-speed/tui/styles"
)

// Column width constants (minimum widths).
const (
	colName   = 22
	colType   = 12
	colStatus = 8
	colLink   = 12
	colTotal  = 14
)

// DashboardView renders the live throughput panels, history sparklines,
// windowed statistics, and the monitored interface table.
type DashboardView struct {
	theme styles.Theme
	sty   *styles.Styles

	current  netspeed.Speed
	upHist   []uint64
	downHist []uint64

	avg      netspeed.Speed
	haveAvg  bool
	peak     netspeed.Speed
	havePeak bool

	ifaces []netspeed.Interface
	cursor int
	offset int

	showBits bool
	width    int
	height   int
}

// NewDashboardView creates a new DashboardView with the given theme.
func NewDashboardView(theme styles.Theme) DashboardView {
	return DashboardView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// Update handles key messages for cursor navigation within the table.
func (v DashboardView) Update(msg tea.Msg) (DashboardView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Up):
			if v.cursor > 0 {
				v.cursor--
				v.ensureVisible()
			}
		case key.Matches(msg, keys.DefaultKeyMap.Down):
			if v.cursor < len(v.ifaces)-1 {
				v.cursor++
				v.ensureVisible()
			}
		case key.Matches(msg, keys.DefaultKeyMap.Units):
			v.showBits = !v.showBits
		}
	}
	return v, nil
}

// PushSample appends one reading to the history, trimming to maxHistory.
func (v *DashboardView) PushSample(speed netspeed.Speed, maxHistory int) {
	v.current = speed
	v.upHist = append(v.upHist, speed.UploadBytesPerSec)
	v.downHist = append(v.downHist, speed.DownloadBytesPerSec)
	if len(v.upHist) > maxHistory {
		v.upHist = v.upHist[len(v.upHist)-maxHistory:]
		v.downHist = v.downHist[len(v.downHist)-maxHistory:]
	}
}

// SetStats updates the windowed average and peak readouts.
func (v *DashboardView) SetStats(avg netspeed.Speed, haveAvg bool, peak netspeed.Speed, havePeak bool) {
	v.avg, v.haveAvg = avg, haveAvg
	v.peak, v.havePeak = peak, havePeak
}

// SetInterfaces replaces the interface table rows, clamping the cursor.
func (v *DashboardView) SetInterfaces(ifaces []netspeed.Interface) {
	v.ifaces = ifaces
	if v.cursor >= len(ifaces) && len(ifaces) > 0 {
		v.cursor = len(ifaces) - 1
	}
}

// ResetHistory drops the sparkline history.
func (v *DashboardView) ResetHistory() {
	v.upHist = nil
	v.downHist = nil
	v.haveAvg = false
	v.havePeak = false
}

// SetSize updates the available dimensions for the view.
func (v *DashboardView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

func (v *DashboardView) ensureVisible() {
	visible := v.tableHeight() - 1
	if visible < 1 {
		visible = 1
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
}

// tableHeight is the space left for the interface table under the two rate
// panels and the stats line.
func (v DashboardView) tableHeight() int {
	h := v.height - 6
	if h < 2 {
		h = 2
	}
	return h
}

func (v DashboardView) formatRate(bytesPerSec uint64) string {
	if v.showBits {
		return netspeed.FormatBitsPerSecond(bytesPerSec * 8)
	}
	return netspeed.FormatBytesPerSecond(bytesPerSec)
}

// View renders the dashboard.
func (v DashboardView) View() string {
	panels := v.renderPanels()
	stats := v.renderStats()
	table := v.renderTable()
	return lipgloss.JoinVertical(lipgloss.Left, panels, stats, table)
}

// renderPanels draws the upload and download rate panels side by side, each
// with its current rate and sparkline on a shared vertical scale.
func (v DashboardView) renderPanels() string {
	panelWidth := v.width/2 - 2
	if panelWidth < 20 {
		panelWidth = 20
	}
	sparkWidth := panelWidth - 4
	max := components.SeriesMax(v.upHist, v.downHist)

	up := lipgloss.JoinVertical(lipgloss.Left,
		v.sty.PanelTitle.Render("Upload"),
		v.sty.RateUpload.Render(v.formatRate(v.current.UploadBytesPerSec)),
		v.sty.SparkUpload.Render(components.Sparkline(v.upHist, sparkWidth, max)),
	)
	down := lipgloss.JoinVertical(lipgloss.Left,
		v.sty.PanelTitle.Render("Download"),
		v.sty.RateDownload.Render(v.formatRate(v.current.DownloadBytesPerSec)),
		v.sty.SparkDownload.Render(components.Sparkline(v.downHist, sparkWidth, max)),
	)

	panel := v.sty.PanelBorder.Width(panelWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, panel.Render(up), panel.Render(down))
}

func (v DashboardView) renderStats() string {
	if !v.haveAvg && !v.havePeak {
		return v.sty.StatSecondary.Render(" collecting...")
	}
	var parts []string
	if v.haveAvg {
		parts = append(parts, fmt.Sprintf("avg %s up / %s down",
			v.formatRate(v.avg.UploadBytesPerSec), v.formatRate(v.avg.DownloadBytesPerSec)))
	}
	if v.havePeak {
		parts = append(parts, fmt.Sprintf("peak %s up / %s down",
			v.formatRate(v.peak.UploadBytesPerSec), v.formatRate(v.peak.DownloadBytesPerSec)))
	}
	return v.sty.StatSecondary.Render(" " + strings.Join(parts, "   "))
}

func (v DashboardView) renderTable() string {
	if len(v.ifaces) == 0 {
		return v.sty.TableCellDim.Render(" no interfaces accepted by the current filters")
	}

	header := fmt.Sprintf("%s%s%s%s%s",
		v.sty.TableHeader.Render(padRight("Interface", colName)),
		v.sty.TableHeader.Render(padRight("Type", colType)),
		v.sty.TableHeader.Render(padRight("Status", colStatus)),
		v.sty.TableHeader.Render(padLeft("Link", colLink)),
		v.sty.TableHeader.Render(padLeft("Total", colTotal)),
	)
	lines := []string{header}

	visible := v.tableHeight() - 1
	if visible < 1 {
		visible = 1
	}
	end := v.offset + visible
	if end > len(v.ifaces) {
		end = len(v.ifaces)
	}
	for i := v.offset; i < end; i++ {
		lines = append(lines, v.renderRow(v.ifaces[i], i == v.cursor))
	}
	return strings.Join(lines, "\n")
}

func (v DashboardView) renderRow(iface netspeed.Interface, selected bool) string {
	rowStyle := v.sty.TableRow
	if selected {
		rowStyle = v.sty.TableRowSel
	}

	name := rowStyle.Render(padRight(truncate(iface.Description, colName-1), colName))
	ifType := rowStyle.Render(padRight(truncate(iface.TypeName(), colType-1), colType))

	statusStyle := v.sty.StatusDown
	statusText := "down"
	if iface.Operational {
		statusStyle = v.sty.StatusUp
		statusText = "up"
	}
	if selected {
		statusStyle = statusStyle.Background(v.theme.Base02)
	}
	status := statusStyle.Render(padRight(statusText, colStatus))

	link := rowStyle.Render(padLeft(iface.FormattedSpeed(), colLink))
	total := rowStyle.Render(padLeft(formatBytes(iface.TotalBytes()), colTotal))

	return name + ifType + status + link + total
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
