package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/colare/recruit/pkg/domain"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data}) //nolint:errcheck
}

func TestGetDashboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/companies/dashboard" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeEnvelope(t, w, domain.DashboardData{
			Stats: domain.DashboardStats{TotalJobs: 4, ActiveJobs: 3, TotalApplications: 12},
			RecentJobs: []domain.DashboardJob{
				{ID: "job-1", Title: "Mechanical Design Engineer", Count: &domain.Counts{Applications: 5}},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-token")
	d, err := c.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("GetDashboard() error: %v", err)
	}
	if d.Stats.TotalJobs != 4 {
		t.Errorf("Stats.TotalJobs = %d, want 4", d.Stats.TotalJobs)
	}
	if len(d.RecentJobs) != 1 || d.RecentJobs[0].ApplicationCount() != 5 {
		t.Errorf("RecentJobs = %+v, want one job with 5 applications", d.RecentJobs)
	}
}

func TestGetRawReturnsDataUnchanged(t *testing.T) {
	const data = `{"notifications":[{"id":"n1","message":"hi","isRead":false}],"unreadCount":1,"extra":[1,2,3]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":true,"data":` + data + `,"message":"ok"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	raw, err := c.GetRaw(context.Background(), "/api/notifications")
	if err != nil {
		t.Fatalf("GetRaw() error: %v", err)
	}
	if string(raw) != data {
		t.Errorf("GetRaw() = %s, want %s", raw, data)
	}
}

func TestGetNotifications(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/notifications" {
			http.NotFound(w, r)
			return
		}
		writeEnvelope(t, w, domain.NotificationFeed{
			Notifications: []domain.Notification{{ID: "n1", Message: "New application", CreatedAt: domain.At(created)}},
			UnreadCount:   1,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	feed, err := c.GetNotifications(context.Background())
	if err != nil {
		t.Fatalf("GetNotifications() error: %v", err)
	}
	if feed.UnreadCount != 1 {
		t.Errorf("UnreadCount = %d, want 1", feed.UnreadCount)
	}
	if len(feed.Notifications) != 1 || !feed.Notifications[0].CreatedAt.Equal(created) {
		t.Errorf("Notifications = %+v, want one created at %v", feed.Notifications, created)
	}
}

func TestGetNotificationsToleratesBadCreatedAt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"notifications":[`+
			`{"id":"n1","message":"hi","createdAt":""},`+
			`{"id":"n2","message":"no time"},`+
			`{"id":"n3","message":"garbled","createdAt":"yesterday"},`+
			`{"id":"n4","message":"null","createdAt":null}],"unreadCount":4}}`)
	}))
	defer srv.Close()

	feed, err := New(srv.URL, "tok").GetNotifications(context.Background())
	if err != nil {
		t.Fatalf("GetNotifications() error: %v", err)
	}
	if len(feed.Notifications) != 4 {
		t.Fatalf("len(Notifications) = %d, want 4", len(feed.Notifications))
	}
	for _, n := range feed.Notifications {
		if !n.CreatedAt.IsZero() {
			t.Errorf("%s CreatedAt = %v, want zero", n.ID, n.CreatedAt)
		}
	}
}

func TestGetDashboardToleratesEmptyCreatedAt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"stats":{"totalJobs":1},`+
			`"recentJobs":[{"id":"j1","title":"A","createdAt":""}],`+
			`"recentApplications":[{"id":"a1","status":"submitted"}]}}`)
	}))
	defer srv.Close()

	data, err := New(srv.URL, "tok").GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("GetDashboard() error: %v", err)
	}
	if len(data.RecentJobs) != 1 || !data.RecentJobs[0].CreatedAt.IsZero() {
		t.Errorf("RecentJobs = %+v, want one with zero CreatedAt", data.RecentJobs)
	}
	if data.PendingReviews() != 1 {
		t.Errorf("PendingReviews() = %d, want 1", data.PendingReviews())
	}
}

func TestNonSuccessStatusAlwaysFails(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized with envelope", http.StatusUnauthorized, `{"success":true,"data":{}}`},
		{"not found empty", http.StatusNotFound, ``},
		{"server error json", http.StatusInternalServerError, `{"error":"boom"}`},
		{"bad gateway html", http.StatusBadGateway, `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body)) //nolint:errcheck
			}))
			defer srv.Close()

			c := New(srv.URL, "tok")
			_, err := c.GetDashboard(context.Background())
			if err == nil {
				t.Fatalf("expected error for status %d", tt.status)
			}
			if !IsStatus(err, tt.status) {
				t.Errorf("IsStatus(err, %d) = false, err = %v", tt.status, err)
			}
			if strings.Contains(err.Error(), "boom") || strings.Contains(err.Error(), "oops") {
				t.Errorf("error = %q, must not include the response body", err.Error())
			}
		})
	}
}

func TestHTTPErrorMessage(t *testing.T) {
	err := &HTTPError{Method: http.MethodGet, Path: "/api/notifications", StatusCode: 503}
	if got, want := err.Error(), "GET /api/notifications failed (503)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnsuccessfulEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":false,"data":{"stats":{"totalJobs":1}}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.GetDashboard(context.Background())
	if !errors.Is(err, ErrUnsuccessful) {
		t.Fatalf("GetDashboard() error = %v, want ErrUnsuccessful", err)
	}
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	if _, err := c.GetDashboard(context.Background()); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestNonBoolSuccessIsRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"number", `{"success":1,"data":{}}`},
		{"string", `{"success":"true","data":{}}`},
		{"object", `{"success":{},"data":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body)) //nolint:errcheck
			}))
			defer srv.Close()

			raw, err := New(srv.URL, "tok").GetRaw(context.Background(), "/api/companies/dashboard")
			if err == nil {
				t.Fatalf("GetRaw() = %s, want error", raw)
			}
			if errors.Is(err, ErrUnsuccessful) {
				t.Errorf("GetRaw() error = %v, want a decode error", err)
			}
			if !strings.Contains(err.Error(), "decode response") {
				t.Errorf("GetRaw() error = %v, want decode response", err)
			}
		})
	}
}

func TestNoTokenSendsNoAuthorization(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		writeEnvelope(t, w, domain.NotificationFeed{UnreadCount: 2})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if c.HasToken() {
		t.Fatal("HasToken() = true for empty token")
	}
	feed, err := c.GetNotifications(context.Background())
	if err != nil {
		t.Fatalf("GetNotifications() error: %v", err)
	}
	if sawAuth {
		t.Error("request carried an Authorization header without a token")
	}
	if feed.UnreadCount != 2 {
		t.Errorf("UnreadCount = %d, want 2", feed.UnreadCount)
	}
}

func TestNoTokenFailureStillFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.GetNotifications(context.Background())
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("error = %v, want HTTP 401", err)
	}
}

func TestRequestDisablesCaching(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Cache-Control") != "no-store" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		writeEnvelope(t, w, domain.CompanyProfile{Company: &domain.Company{ID: "c1", Name: "Acme"}})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "tok")
	p, err := c.GetCompanyProfile(context.Background())
	if err != nil {
		t.Fatalf("GetCompanyProfile() error: %v", err)
	}
	if p.Company == nil || p.Company.Name != "Acme" {
		t.Errorf("Company = %+v, want Acme", p.Company)
	}
}

func TestCookiesAreSentBack(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc", Path: "/"})
			writeEnvelope(t, w, domain.NotificationFeed{})
			return
		}
		if ck, err := r.Cookie("sid"); err != nil || ck.Value != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeEnvelope(t, w, domain.NotificationFeed{UnreadCount: 1})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if _, err := c.GetNotifications(context.Background()); err != nil {
		t.Fatalf("first call error: %v", err)
	}
	feed, err := c.GetNotifications(context.Background())
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if feed.UnreadCount != 1 {
		t.Errorf("UnreadCount = %d, want 1", feed.UnreadCount)
	}
}

func TestGetRaw_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Second) // slow server
		writeEnvelope(t, w, domain.DashboardData{})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	if _, err := c.GetDashboard(ctx); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestRateLimitRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(t, w, domain.DashboardData{})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	c.SetRateLimit(0.001)
	if _, err := c.GetDashboard(context.Background()); err != nil {
		t.Fatalf("first call should use the initial burst: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.GetDashboard(ctx); err == nil {
		t.Fatal("expected rate limiter to give up before the deadline")
	}

	c.SetRateLimit(0)
	if _, err := c.GetDashboard(context.Background()); err != nil {
		t.Errorf("GetDashboard() after removing limit: %v", err)
	}
}
