package domain

// CompanyJob is a job listed on the company profile.
type CompanyJob struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt Timestamp `json:"createdAt"`
	Count     *Counts   `json:"_count,omitempty"`
}

// ApplicationCount returns the number of applications, zero when the count block is absent.
func (j CompanyJob) ApplicationCount() int {
	if j.Count == nil {
		return 0
	}
	return j.Count.Applications
}

// Company is the hiring company owning the session.
type Company struct {
	ID   string       `json:"id"`
	Name string       `json:"name,omitempty"`
	Jobs []CompanyJob `json:"jobs,omitempty"`
}

// CompanyProfile is the payload of /api/companies/profile.
type CompanyProfile struct {
	Company      *Company `json:"company,omitempty"`
	MemberRole   string   `json:"memberRole,omitempty"`
	MemberStatus string   `json:"memberStatus,omitempty"`
}

// LocalUser is the locally persisted profile of the signed-in member.
type LocalUser struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// UserContext is what the header shows about the current member.
type UserContext struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
}
