package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/colare/recruit/pkg/domain"
)

func sampleDashboard() *domain.DashboardData {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	return &domain.DashboardData{
		Stats: domain.DashboardStats{TotalJobs: 3, ActiveJobs: 2, TotalApplications: 1250},
		RecentJobs: []domain.DashboardJob{
			{ID: "j1", Title: "Mechanical Design Engineer", CreatedAt: domain.At(created), Count: &domain.Counts{Applications: 1}},
			{ID: "j2", Title: "PCB Layout Engineer", CreatedAt: domain.At(created)},
		},
		RecentApplications: []domain.DashboardApplication{
			{ID: "a1", Status: "submitted", CreatedAt: domain.At(created), Candidate: &domain.Candidate{FirstName: "Ada", LastName: "Lovelace"}, Job: &domain.JobRef{Title: "Mechanical Design Engineer"}},
			{ID: "a2", Status: "reviewed", CreatedAt: domain.At(created)},
		},
	}
}

func TestDashboardLoadJoinsBothFetches(t *testing.T) {
	api := &fakeAPI{dashboard: sampleDashboard(), feed: &domain.NotificationFeed{UnreadCount: 4}}
	m := newDashboardModel(api)

	msg, ok := m.load()().(dashboardLoadedMsg)
	if !ok {
		t.Fatal("expected dashboardLoadedMsg")
	}
	m, _ = m.Update(msg)
	if m.loading {
		t.Error("expected loading=false after load")
	}
	if m.data == nil || m.data.Stats.TotalJobs != 3 {
		t.Errorf("data = %+v", m.data)
	}
	if m.unread() != 4 {
		t.Errorf("unread = %d, want 4", m.unread())
	}
}

func TestDashboardFailureShowsSingleBanner(t *testing.T) {
	m := newDashboardModel(&fakeAPI{err: errors.New("GET /api/notifications failed (500)")})
	m.width = 90
	m, _ = m.Update(m.load()())

	view := m.View()
	if strings.Count(view, dashboardLoadError) != 1 {
		t.Errorf("expected exactly one error banner, got view:\n%s", view)
	}
	if strings.Contains(view, "500") {
		t.Error("banner must not expose the underlying error")
	}
	if !strings.Contains(view, "No tests yet.") || !strings.Contains(view, "No candidates yet.") {
		t.Error("expected empty states below the banner")
	}
}

func TestDashboardStaleGenerationIgnored(t *testing.T) {
	m := newDashboardModel(&fakeAPI{})
	m.reload()
	m, _ = m.Update(dashboardLoadedMsg{gen: m.gen - 1, data: sampleDashboard()})
	if m.data != nil {
		t.Error("expected stale result to be dropped")
	}
	if !m.loading {
		t.Error("expected to still be loading")
	}
}

func TestDashboardLeaveStopsLoading(t *testing.T) {
	m := newDashboardModel(&fakeAPI{})
	gen := m.gen
	m.leave()
	if m.loading {
		t.Error("expected loading=false after leave")
	}
	m, _ = m.Update(dashboardLoadedMsg{gen: gen, err: errors.New("late failure")})
	if m.err != "" {
		t.Errorf("expected late failure to be ignored, err=%q", m.err)
	}
}

func TestDashboardCardsAndLists(t *testing.T) {
	m := newDashboardModel(&fakeAPI{})
	m.width = 100
	m, _ = m.Update(dashboardLoadedMsg{gen: m.gen, data: sampleDashboard(), feed: &domain.NotificationFeed{}})

	view := m.View()
	for _, want := range []string{
		"Active Tests", "Candidates", "Pending review",
		"1,250",
		"Mechanical Design Engineer", "1 candidate", "0 candidates",
		"Ada Lovelace", "AL",
		"Unknown Candidate", "Untitled Job",
		"Mar 1, 2026",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard view missing %q", want)
		}
	}
	if strings.Contains(view, "Loading dashboard") {
		t.Error("expected no loading banner after load")
	}
}

func TestDashboardNilFeedResetsUnread(t *testing.T) {
	m := newDashboardModel(&fakeAPI{})
	m.feed = domain.NotificationFeed{UnreadCount: 3}
	m, _ = m.Update(dashboardLoadedMsg{gen: m.gen, data: sampleDashboard()})
	if m.unread() != 0 {
		t.Errorf("unread = %d, want 0", m.unread())
	}
}

func TestDashboardReloadKey(t *testing.T) {
	m := newDashboardModel(&fakeAPI{})
	m.loading = false
	gen := m.gen
	m, cmd := m.Update(keyMsg("r"))
	if cmd == nil {
		t.Fatal("expected reload command")
	}
	if m.gen != gen+1 || !m.loading {
		t.Errorf("gen=%d loading=%v, want gen=%d loading=true", m.gen, m.loading, gen+1)
	}
}

func TestDashboardWithoutClient(t *testing.T) {
	m := newDashboardModel(nil)
	msg := m.load()().(dashboardLoadedMsg)
	if msg.err == nil {
		t.Fatal("expected error without a client")
	}
}
