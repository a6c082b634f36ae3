package domain

import (
	"strings"

	"github.com/samber/lo"
)

// ApplicationStatusSubmitted marks an application still awaiting a decision.
const ApplicationStatusSubmitted = "submitted"

// DashboardStats holds the aggregate counters shown on the dashboard cards.
type DashboardStats struct {
	TotalJobs         int `json:"totalJobs"`
	ActiveJobs        int `json:"activeJobs"`
	TotalApplications int `json:"totalApplications"`
}

// Counts is the aggregate relation count block attached to a job.
type Counts struct {
	Applications int `json:"applications"`
}

// DashboardJob is a recently created job posting.
type DashboardJob struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt Timestamp `json:"createdAt"`
	Count     *Counts   `json:"_count,omitempty"`
}

// ApplicationCount returns the number of applications, zero when the count block is absent.
func (j DashboardJob) ApplicationCount() int {
	if j.Count == nil {
		return 0
	}
	return j.Count.Applications
}

// Candidate is the applicant attached to an application.
type Candidate struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// JobRef is the minimal job reference embedded in an application.
type JobRef struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// DashboardApplication is a recent candidate application.
type DashboardApplication struct {
	ID        string     `json:"id"`
	Status    string     `json:"status"`
	CreatedAt Timestamp  `json:"createdAt"`
	Candidate *Candidate `json:"candidate,omitempty"`
	Job       *JobRef    `json:"job,omitempty"`
}

// CandidateName returns "First Last", or "Unknown Candidate" when both are blank.
func (a DashboardApplication) CandidateName() string {
	if a.Candidate == nil {
		return "Unknown Candidate"
	}
	full := strings.TrimSpace(strings.TrimSpace(a.Candidate.FirstName) + " " + strings.TrimSpace(a.Candidate.LastName))
	if full == "" {
		return "Unknown Candidate"
	}
	return full
}

// JobTitle returns the title of the job applied for, or "Untitled Job".
func (a DashboardApplication) JobTitle() string {
	if a.Job == nil || a.Job.Title == "" {
		return "Untitled Job"
	}
	return a.Job.Title
}

// DashboardData is the read-only snapshot served by /api/companies/dashboard.
type DashboardData struct {
	Stats              DashboardStats         `json:"stats"`
	RecentJobs         []DashboardJob         `json:"recentJobs"`
	RecentApplications []DashboardApplication `json:"recentApplications"`
}

// PendingReviews counts recent applications that are still submitted.
func (d DashboardData) PendingReviews() int {
	return len(lo.Filter(d.RecentApplications, func(a DashboardApplication, _ int) bool {
		return a.Status == ApplicationStatusSubmitted
	}))
}
