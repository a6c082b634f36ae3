package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/colare/recruit/pkg/domain"
)

// dashboardLoadError is the only message shown when either fetch fails.
const dashboardLoadError = "Failed to load dashboard data."

// dashboardLoadedMsg carries the joined result of the dashboard and
// notification fetches. gen identifies the load that produced it.
type dashboardLoadedMsg struct {
	gen  int
	data *domain.DashboardData
	feed *domain.NotificationFeed
	err  error
}

type dashboardModel struct {
	client  API
	gen     int
	loading bool
	err     string
	data    *domain.DashboardData
	feed    domain.NotificationFeed
	spinner spinner.Model
	width   int
	height  int
}

func newDashboardModel(c API) dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = accentStyle
	return dashboardModel{client: c, loading: true, spinner: s}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

// reload starts a new load generation. Responses of earlier loads are dropped.
func (m *dashboardModel) reload() tea.Cmd {
	m.gen++
	m.loading = true
	return tea.Batch(m.load(), m.spinner.Tick)
}

// leave invalidates in-flight loads when the view is closed.
func (m *dashboardModel) leave() {
	m.gen++
	m.loading = false
}

func (m dashboardModel) load() tea.Cmd {
	c := m.client
	gen := m.gen
	return func() tea.Msg {
		if c == nil {
			return dashboardLoadedMsg{gen: gen, err: errNoClient}
		}
		var (
			g    errgroup.Group
			data *domain.DashboardData
			feed *domain.NotificationFeed
		)
		ctx := context.Background()
		g.Go(func() error {
			var err error
			data, err = c.GetDashboard(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			feed, err = c.GetNotifications(ctx)
			return err
		})
		err := g.Wait()
		return dashboardLoadedMsg{gen: gen, data: data, feed: feed, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case dashboardLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			log.WithError(msg.err).Warn("dashboard load failed")
			m.err = dashboardLoadError
			return m, nil
		}
		m.err = ""
		m.data = msg.data
		if msg.feed != nil {
			m.feed = *msg.feed
		} else {
			m.feed = domain.NotificationFeed{}
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, keys.Reload) {
			return m, m.reload()
		}
	}
	return m, nil
}

// unread is the unread notification count shown on the bell.
func (m dashboardModel) unread() int {
	return m.feed.UnreadCount
}

func (m dashboardModel) View() string {
	var b strings.Builder

	if m.loading {
		b.WriteString(" " + infoBannerStyle.Render(m.spinner.View()+" Loading dashboard...") + "\n")
	}
	if m.err != "" {
		b.WriteString(" " + errorBannerStyle.Render(m.err) + "\n")
	}

	var stats domain.DashboardStats
	var jobs []domain.DashboardJob
	var apps []domain.DashboardApplication
	pending := 0
	if m.data != nil {
		stats = m.data.Stats
		jobs = m.data.RecentJobs
		apps = m.data.RecentApplications
		pending = m.data.PendingReviews()
	}

	cardWidth := (m.width - 8) / 3
	if cardWidth < 18 {
		cardWidth = 18
	}
	card := func(label string, value int, hint string) string {
		body := dimStyle.Render(label) + "\n" +
			cardValueStyle.Render(humanize.Comma(int64(value))) + "\n" +
			metaStyle.Render(hint)
		return cardStyle.Width(cardWidth).Render(body)
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Active Tests", stats.TotalJobs, fmt.Sprintf("%d active", stats.ActiveJobs)),
		" ",
		card("Candidates", stats.TotalApplications, "all time"),
		" ",
		card("Pending review", pending, "awaiting decision"),
	)
	for _, line := range strings.Split(cards, "\n") {
		b.WriteString(" " + line + "\n")
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("Recent tests") + "\n")
	if len(jobs) == 0 {
		b.WriteString("   " + dimStyle.Render("No tests yet.") + "\n")
	}
	titleWidth := m.width - 24
	if titleWidth < 20 {
		titleWidth = 20
	}
	for _, j := range jobs {
		title := truncStr(j.Title, titleWidth)
		pad := titleWidth - lipgloss.Width(title)
		if pad < 1 {
			pad = 1
		}
		b.WriteString("   " + normalStyle.Render(title) + strings.Repeat(" ", pad) +
			dimStyle.Render(candidatesLabel(j.ApplicationCount())) + "\n")
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("Recent candidates") + "\n")
	if len(apps) == 0 {
		b.WriteString("   " + dimStyle.Render("No candidates yet.") + "\n")
	}
	for _, a := range apps {
		name := a.CandidateName()
		row := "   " + avatarStyle.Render(initials(name)) + " " +
			selectedStyle.Render(name) + "  " +
			dimStyle.Render(a.JobTitle()) + "  " +
			metaStyle.Render(formatDate(a.CreatedAt.Time))
		if a.Status != "" {
			row += "  " + StatusStyle(a.Status).Render(a.Status)
		}
		b.WriteString(row + "\n")
	}

	return b.String()
}

func (m dashboardModel) helpKeys() string {
	return helpFor(keys.TabDash, keys.TabTest, keys.Create, keys.Bell, keys.Reload, keys.Help, keys.Quit)
}
