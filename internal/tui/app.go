package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colare/recruit/internal/browser"
	"github.com/colare/recruit/internal/preview"
	"github.com/colare/recruit/pkg/client"
	"github.com/colare/recruit/pkg/domain"
)

// API is the part of the recruiting API the TUI reads.
type API interface {
	GetDashboard(ctx context.Context) (*domain.DashboardData, error)
	GetNotifications(ctx context.Context) (*domain.NotificationFeed, error)
	GetCompanyProfile(ctx context.Context) (*domain.CompanyProfile, error)
}

type view int

const (
	viewDashboard view = iota
	viewTests
	viewCreate
	viewPreview
)

// userContextMsg carries the resolved header identity.
type userContextMsg struct {
	user domain.UserContext
}

// Options configures NewApp.
type Options struct {
	Client API
	Store  preview.Reader
	Local  *domain.LocalUser
	WebURL string

	// TestID opens the preview of a test directly, at QuestionID when set.
	TestID     string
	QuestionID string
}

// App is the root Bubbletea model.
type App struct {
	client      API
	profiles    *client.CachedProfiles
	store       preview.Reader
	local       *domain.LocalUser
	webURL      string
	view        view
	back        view // where esc on the preview intro returns to
	dashboard   dashboardModel
	tests       testsModel
	create      createModel
	preview     previewModel
	notifOpen   bool
	notifCursor int
	helpOpen    bool
	helpCursor  int
	user        *domain.UserContext
	bodySize    tea.WindowSizeMsg
	width       int
	height      int
	frame       int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(opts Options) App {
	var profiles *client.CachedProfiles
	var src client.ProfileSource
	if opts.Client != nil {
		profiles = client.NewCachedProfiles(opts.Client)
		src = profiles
	}
	a := App{
		client:    opts.Client,
		profiles:  profiles,
		store:     opts.Store,
		local:     opts.Local,
		webURL:    opts.WebURL,
		dashboard: newDashboardModel(opts.Client),
		tests:     newTestsModel(src, opts.WebURL),
		create:    newCreateModel(),
	}
	if opts.TestID != "" {
		a.view = viewPreview
		a.back = viewTests
		a.preview = newPreviewModel(opts.Store, opts.TestID, opts.QuestionID)
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd(), a.loadUser()}
	switch a.view {
	case viewPreview:
		cmds = append(cmds, a.preview.Init())
	default:
		cmds = append(cmds, a.dashboard.Init())
	}
	return tea.Batch(cmds...)
}

func (a App) loadUser() tea.Cmd {
	var src client.ProfileSource
	if a.profiles != nil {
		src = a.profiles
	}
	local := a.local
	return func() tea.Msg {
		return userContextMsg{user: client.ResolveUserContext(context.Background(), src, local)}
	}
}

// switchTo changes the active view, invalidating dashboard loads when the
// dashboard is left and starting a fresh one when it is entered.
func (a App) switchTo(v view) (App, tea.Cmd) {
	if a.view == v {
		return a, nil
	}
	if a.view == viewDashboard {
		a.dashboard.leave()
	}
	a.view = v
	switch v {
	case viewDashboard:
		return a, a.dashboard.reload()
	case viewTests:
		a.tests.loading = true
		return a, a.tests.Init()
	}
	return a, nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + blank(1) + help(1) = 5 lines
		a.bodySize = tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.dashboard, _ = a.dashboard.Update(a.bodySize)
		a.tests, _ = a.tests.Update(a.bodySize)
		a.create, _ = a.create.Update(a.bodySize)
		if a.view == viewPreview {
			a.preview, _ = a.preview.Update(a.bodySize)
		}
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case userContextMsg:
		user := msg.user
		a.user = &user
		return a, nil

	case dashboardLoadedMsg:
		// Routed regardless of the active view so the generation check
		// can drop it.
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.Update(msg)
		return a, cmd

	case openPreviewMsg:
		if a.view != viewPreview {
			a.back = a.view
		}
		if a.view == viewDashboard {
			a.dashboard.leave()
		}
		a.view = viewPreview
		a.preview = newPreviewModel(a.store, msg.testID, msg.questionID)
		a.preview, _ = a.preview.Update(a.bodySize)
		return a, a.preview.Init()

	case closePreviewMsg:
		return a.switchTo(a.back)

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) && msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Help overlay captures all keys when open
		if a.helpOpen {
			switch {
			case key.Matches(msg, keys.Help), key.Matches(msg, keys.Back):
				a.helpOpen = false
			case key.Matches(msg, keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, keys.Down):
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case key.Matches(msg, keys.Up):
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case key.Matches(msg, keys.Open):
				item := helpItems[a.helpCursor]
				browser.Open(webLink(a.webURL, item.path)) //nolint:errcheck // best-effort browser open
			}
			return a, nil
		}

		// Notifications overlay captures all keys when open
		if a.notifOpen {
			switch {
			case key.Matches(msg, keys.Bell), key.Matches(msg, keys.Back):
				a.notifOpen = false
			case key.Matches(msg, keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, keys.Down):
				if a.notifCursor < len(a.dashboard.feed.Notifications)-1 {
					a.notifCursor++
				}
			case key.Matches(msg, keys.Up):
				if a.notifCursor > 0 {
					a.notifCursor--
				}
			case key.Matches(msg, keys.Open):
				a.notifOpen = false
				browser.Open(webLink(a.webURL, "/candidates")) //nolint:errcheck // best-effort browser open
			}
			return a, nil
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch {
			case key.Matches(msg, keys.Help):
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case key.Matches(msg, keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, keys.TabDash):
				return a.switchTo(viewDashboard)
			case key.Matches(msg, keys.TabTest):
				return a.switchTo(viewTests)
			case key.Matches(msg, keys.Create):
				if a.view != viewPreview {
					a.create, _ = newCreateModel().Update(a.bodySize)
					return a.switchTo(viewCreate)
				}
			case key.Matches(msg, keys.Bell):
				a.notifOpen = true
				a.notifCursor = 0
				return a, nil
			}
		} else if key.Matches(msg, keys.Back) && a.view == viewCreate {
			return a.switchTo(viewDashboard)
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewTests:
		a.tests, cmd = a.tests.Update(msg)
	case viewCreate:
		a.create, cmd = a.create.Update(msg)
	case viewPreview:
		a.preview, cmd = a.preview.Update(msg)
	}

	return a, cmd
}

func (a App) isEditing() bool {
	switch a.view {
	case viewCreate:
		return true
	case viewPreview:
		return a.preview.editing()
	}
	return false
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)

	userLine := ""
	if a.user != nil {
		userLine = selectedStyle.Render(a.user.DisplayName) +
			metaStyle.Render(" · ") + accentStyle.Render(a.user.CompanyName) +
			metaStyle.Render(" · ") + dimStyle.Render(a.user.Email)
	}

	header := centerLine(logo, a.width) + "\n"
	if userLine != "" {
		header += centerLine(userLine, a.width)
	}

	// Tab bar: 1 Dashboard  2 Tests  n New test, bell on the right
	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Dashboard", viewDashboard},
		{"2", "Tests", viewTests},
		{"n", "New test", viewCreate},
	}

	colWidth := (a.width - 8) / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	tabBar.WriteString(" " + bellLabel(a.dashboard.unread()))

	// Body
	var body, help string
	switch a.view {
	case viewDashboard:
		body = a.dashboard.View()
		help = a.dashboard.helpKeys()
	case viewTests:
		body = a.tests.View()
		help = a.tests.helpKeys()
	case viewCreate:
		body = a.create.View()
		help = a.create.helpKeys()
	case viewPreview:
		body = a.preview.View()
		help = a.preview.helpKeys()
	}

	if a.notifOpen {
		body = notificationsView(a.dashboard.feed, a.notifCursor, a.width)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "candidates") + "  " + helpEntry("esc", "close")
	}

	if a.helpOpen {
		body = helpView(a.helpCursor, a.webURL)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	chrome := 5
	body = strings.TrimRight(clipLines(body, a.height-chrome), "\n")

	return header + "\n" + tabBar.String() + "\n\n" + body + "\n" + help
}

// clipLines keeps the first n lines of s. n <= 0 leaves s untouched.
func clipLines(s string, n int) string {
	if n <= 0 {
		return s
	}
	lines := strings.SplitAfter(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "")
}

func centerLine(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
