package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	netspeed "github.com/justrawaccel/network-speed"
	"github.com/justrawaccel/network-speed/tui/components"
	"github.com/justrawaccel/network-speed/tui/keys"
	"github.com/justrawaccel/network-speed/tui/styles"
	"github.com/justrawaccel/network-speed/tui/views"
)

// Options configures the application model.
type Options struct {
	Theme       string
	Interval    time.Duration
	StatsWindow time.Duration
	MaxHistory  int
	Source      string
	Version     string
}

// SampleMsg carries one measurement from the background producer.
type SampleMsg netspeed.Sample

// channelClosedMsg signals that the producer shut down.
type channelClosedMsg struct{}

// interfacesMsg carries a refreshed interface listing.
type interfacesMsg struct {
	ifaces []netspeed.Interface
	err    error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	theme   styles.Theme
	tracker *netspeed.AsyncTracker
	samples <-chan netspeed.Sample
	cancel  context.CancelFunc

	dashboard views.DashboardView
	opts      Options

	paused     bool
	errCount   int
	lastSample time.Time
	ifaceCount int

	width  int
	height int
}

// NewAppModel creates the root model and starts the measurement producer.
func NewAppModel(tracker *netspeed.AsyncTracker, opts Options) AppModel {
	theme := styles.DefaultTheme
	if t := styles.GetThemeByName(opts.Theme); t != nil {
		theme = *t
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.StatsWindow <= 0 {
		opts.StatsWindow = time.Minute
	}
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = 300
	}

	ctx, cancel := context.WithCancel(context.Background())
	samples := tracker.StartTracking(ctx, opts.Interval, 4)

	return AppModel{
		theme:     theme,
		tracker:   tracker,
		samples:   samples,
		cancel:    cancel,
		dashboard: views.NewDashboardView(theme),
		opts:      opts,
	}
}

// Init starts waiting for the first sample and interface listing.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(waitForSample(m.samples), m.fetchInterfaces())
}

func waitForSample(ch <-chan netspeed.Sample) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return channelClosedMsg{}
		}
		return SampleMsg(s)
	}
}

func (m AppModel) fetchInterfaces() tea.Cmd {
	tracker := m.tracker
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ifaces, err := tracker.Interfaces(ctx)
		return interfacesMsg{ifaces: ifaces, err: err}
	}
}

// Update handles messages and dispatches to the dashboard view.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Body height = total - 1 (header) - 2 (status bar lines)
		m.dashboard.SetSize(msg.Width, msg.Height-3)
		return m, nil

	case SampleMsg:
		m.lastSample = time.Now()
		if msg.Err != nil {
			m.errCount++
		} else if !m.paused {
			m.dashboard.PushSample(msg.Speed, m.opts.MaxHistory)
			avg, haveAvg := m.tracker.Average(m.opts.StatsWindow)
			peak, havePeak := m.tracker.Peak(m.opts.StatsWindow)
			m.dashboard.SetStats(avg, haveAvg, peak, havePeak)
		}
		return m, waitForSample(m.samples)

	case channelClosedMsg:
		return m, tea.Quit

	case interfacesMsg:
		if msg.err == nil {
			m.ifaceCount = len(msg.ifaces)
			m.dashboard.SetInterfaces(msg.ifaces)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Quit):
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, keys.DefaultKeyMap.Pause):
			m.paused = !m.paused
			return m, nil
		case key.Matches(msg, keys.DefaultKeyMap.Reset):
			m.tracker.Clear()
			m.dashboard.ResetHistory()
			return m, nil
		case key.Matches(msg, keys.DefaultKeyMap.Refresh):
			return m, m.fetchInterfaces()
		}
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View composes the header, dashboard body, and status bar.
func (m AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := components.RenderHeader(m.theme, m.opts.Source, m.paused, m.ifaceCount, m.width, m.opts.Version)
	body := m.dashboard.View()
	statusBar := components.RenderStatusBar(m.theme, m.opts.Interval, m.lastSample, m.errCount, m.width)

	bodyHeight := m.height - 1 - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	bodyStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		Background(m.theme.Base00).
		Foreground(m.theme.Base05)

	return lipgloss.JoinVertical(lipgloss.Left, header, bodyStyle.Render(body), statusBar)
}
