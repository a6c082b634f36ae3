package domain

// DefaultDurationMinutes is the estimated test time when a role does not set one.
const DefaultDurationMinutes = 60

// PreviewSection is a seed section title shown before a test has content.
type PreviewSection struct {
	Title string `json:"title"`
}

// RolePreview is the static preview content of a role's hiring test.
type RolePreview struct {
	TestTitle       string           `json:"testTitle"`
	DurationMinutes int              `json:"durationMinutes"`
	Sections        []PreviewSection `json:"sections"`
}

// Role is a hiring role with a ready-made test template.
type Role struct {
	ID      string      `json:"id"`
	Label   string      `json:"label"`
	Preview RolePreview `json:"preview"`
}

// Role ids produced by the create-test wizard.
const (
	RoleMechanicalDesign = "mechanical-design-engineer"
	RoleElectricalDesign = "electrical-design-engineer"
)

// Roles is the built-in role catalog. The first entry is the fallback.
var Roles = []Role{
	{
		ID:    RoleMechanicalDesign,
		Label: "Mechanical Design Engineer",
		Preview: RolePreview{
			TestTitle:       "Mechanical Design Engineer Assessment",
			DurationMinutes: 60,
			Sections: []PreviewSection{
				{Title: "CAD & Modeling"},
				{Title: "GD&T and Tolerancing"},
				{Title: "Design for Manufacturing"},
				{Title: "Engineering Judgment"},
			},
		},
	},
	{
		ID:    RoleElectricalDesign,
		Label: "Electrical Design Engineer",
		Preview: RolePreview{
			TestTitle:       "Electrical Design Engineer Assessment",
			DurationMinutes: 60,
			Sections: []PreviewSection{
				{Title: "Schematics & Components"},
				{Title: "PCB Layout"},
				{Title: "Power & Signal Integrity"},
				{Title: "Debugging & Validation"},
			},
		},
	},
}

// FindRole returns the role with the given id, or the first role when none matches.
func FindRole(id string) Role {
	for _, r := range Roles {
		if r.ID == id {
			return r
		}
	}
	return Roles[0]
}

// Duration returns the role's estimated test time in minutes.
func (r Role) Duration() int {
	if r.Preview.DurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return r.Preview.DurationMinutes
}

// TestTitle returns the role's test title, or "Hiring Test".
func (r Role) TestTitle() string {
	if r.Preview.TestTitle == "" {
		return "Hiring Test"
	}
	return r.Preview.TestTitle
}
