package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colare/recruit/internal/browser"
	"github.com/colare/recruit/pkg/client"
	"github.com/colare/recruit/pkg/domain"
)

var errNoClient = errors.New("no API client configured")

// -- messages --

type testsLoadedMsg struct {
	jobs []domain.CompanyJob
	err  error
}

type copyResultMsg struct {
	err error
}

type openResultMsg struct {
	err error
}

// openPreviewMsg asks the app to show the preview of a test.
type openPreviewMsg struct {
	testID     string
	questionID string
}

// -- model --

type testsModel struct {
	profiles     client.ProfileSource
	webURL       string
	jobs         []domain.CompanyJob
	cursor       int
	statusFilter string // "" = all, else job status
	statusCycle  int    // index into statusOrder for cycling
	statusOrder  []string
	statusMsg    string
	err          string
	loading      bool
	width        int
	height       int
}

func newTestsModel(profiles client.ProfileSource, webURL string) testsModel {
	return testsModel{profiles: profiles, webURL: webURL}
}

func (m *testsModel) buildStatusOrder() {
	seen := make(map[string]bool)
	for _, j := range m.jobs {
		if j.Status != "" {
			seen[j.Status] = true
		}
	}
	statuses := make([]string, 0, len(seen))
	for s := range seen {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	m.statusOrder = append([]string{""}, statuses...) // "" = all
	m.statusCycle = 0
	m.statusFilter = ""
}

// visible returns the jobs passing the status filter.
func (m testsModel) visible() []domain.CompanyJob {
	if m.statusFilter == "" {
		return m.jobs
	}
	var out []domain.CompanyJob
	for _, j := range m.jobs {
		if j.Status == m.statusFilter {
			out = append(out, j)
		}
	}
	return out
}

func (m testsModel) selected() (domain.CompanyJob, bool) {
	jobs := m.visible()
	if m.cursor < 0 || m.cursor >= len(jobs) {
		return domain.CompanyJob{}, false
	}
	return jobs[m.cursor], true
}

func (m testsModel) Init() tea.Cmd {
	return m.load()
}

func (m testsModel) load() tea.Cmd {
	src := m.profiles
	return func() tea.Msg {
		if src == nil {
			return testsLoadedMsg{err: errNoClient}
		}
		profile, err := src.GetCompanyProfile(context.Background())
		if err != nil {
			return testsLoadedMsg{err: err}
		}
		var jobs []domain.CompanyJob
		if profile != nil && profile.Company != nil {
			jobs = profile.Company.Jobs
		}
		return testsLoadedMsg{jobs: jobs}
	}
}

func (m testsModel) Update(msg tea.Msg) (testsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case testsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if client.IsStatus(msg.err, http.StatusUnauthorized) {
				m.err = "not authenticated -- run: recruit login"
			} else {
				m.err = "Failed to load tests."
			}
			return m, nil
		}
		m.jobs = msg.jobs
		m.err = ""
		m.buildStatusOrder()
		if m.cursor >= len(m.visible()) {
			m.cursor = 0
		}

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "preview link copied!"
		}

	case openResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("open failed: %v", msg.err)
		}

	case tea.KeyMsg:
		m.statusMsg = ""
		return m.handleKey(msg)
	}
	return m, nil
}

func (m testsModel) handleKey(msg tea.KeyMsg) (testsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Status):
		if len(m.statusOrder) > 1 {
			m.statusCycle = (m.statusCycle + 1) % len(m.statusOrder)
			m.statusFilter = m.statusOrder[m.statusCycle]
			m.cursor = 0
		}
	case key.Matches(msg, keys.Open):
		if job, ok := m.selected(); ok {
			id := job.ID
			return m, func() tea.Msg { return openPreviewMsg{testID: id} }
		}
	case key.Matches(msg, keys.Web):
		if job, ok := m.selected(); ok {
			url := webLink(m.webURL, "/tests/"+job.ID)
			return m, func() tea.Msg {
				return openResultMsg{err: browser.Open(url)}
			}
		}
	case key.Matches(msg, keys.Copy):
		if job, ok := m.selected(); ok {
			link := previewLink(m.webURL, job.ID)
			return m, func() tea.Msg {
				return copyResultMsg{err: clipboard.WriteAll(link)}
			}
		}
	case key.Matches(msg, keys.Reload):
		if inv, ok := m.profiles.(interface{ Invalidate() }); ok {
			inv.Invalidate()
		}
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

// previewLink is the web URL of a test's candidate preview.
func previewLink(webURL, testID string) string {
	return webLink(webURL, "/tests/"+testID+"/preview")
}

func (m testsModel) View() string {
	var b strings.Builder

	if m.statusFilter != "" {
		b.WriteString(" " + dimStyle.Render("status: ") + StatusStyle(m.statusFilter).Render(m.statusFilter) + "\n")
	}

	if m.loading && len(m.jobs) == 0 {
		b.WriteString(" " + dimStyle.Render("loading tests...") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + errorBannerStyle.Render(m.err) + "\n")
		return b.String()
	}
	jobs := m.visible()
	if len(jobs) == 0 {
		b.WriteString("\n " + dimStyle.Render("No tests yet. Press n to create one.") + "\n")
		return b.String()
	}

	titleWidth := m.width - 40
	if titleWidth < 20 {
		titleWidth = 20
	}
	for i, job := range jobs {
		cursor := " "
		title := normalStyle.Render(truncStr(job.Title, titleWidth))
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			title = selectedStyle.Render(truncStr(job.Title, titleWidth))
		}
		pad := titleWidth - lipgloss.Width(title)
		if pad < 1 {
			pad = 1
		}
		row := fmt.Sprintf(" %s %s%s%s", cursor, title, strings.Repeat(" ", pad), dimStyle.Render(candidatesLabel(job.ApplicationCount())))
		if job.Status != "" {
			row += "  " + StatusStyle(job.Status).Render(job.Status)
		}
		if !job.CreatedAt.IsZero() {
			row += "  " + metaStyle.Render(formatDate(job.CreatedAt.Time))
		}
		b.WriteString(row + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n " + statusStyle.Render(m.statusMsg) + "\n")
	}

	return b.String()
}

func (m testsModel) helpKeys() string {
	return helpFor(keys.Down, keys.Open, keys.Web, keys.Copy, keys.Status, keys.Reload, keys.Help, keys.Quit)
}
