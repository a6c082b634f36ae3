package tui

import (
	"strings"
	"testing"
	"time"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ada Lovelace", "AL"},
		{"ada", "A"},
		{"  grace   brewster hopper ", "GH"},
		{"Unknown Candidate", "UC"},
		{"", "?"},
		{"émile zola", "ÉZ"},
	}
	for _, tt := range tests {
		if got := initials(tt.name); got != tt.want {
			t.Errorf("initials(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCandidatesLabel(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 candidates"},
		{1, "1 candidate"},
		{2, "2 candidates"},
		{1200, "1,200 candidates"},
	}
	for _, tt := range tests {
		if got := candidatesLabel(tt.n); got != tt.want {
			t.Errorf("candidatesLabel(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatWhen(t *testing.T) {
	if got := formatWhen(time.Time{}); got != "Just now" {
		t.Errorf("formatWhen(zero) = %q, want %q", got, "Just now")
	}
	ts := time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)
	if got := formatWhen(ts); !strings.Contains(got, "Mar 4, 2026") {
		t.Errorf("formatWhen(%v) = %q, want it to contain the date", ts, got)
	}
}

func TestTruncStr(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"PCB Layout Engineer", 30, "PCB Layout Engineer"},
		{"PCB Layout Engineer", 19, "PCB Layout Engineer"},
		{"PCB Layout Engineer", 10, "PCB Layou…"},
		{"Ingénieur mécanique", 10, "Ingénieur…"},
		{"", 4, ""},
	}
	for _, tt := range tests {
		if got := truncStr(tt.s, tt.n); got != tt.want {
			t.Errorf("truncStr(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}
