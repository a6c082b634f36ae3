package domain

import (
	"slices"

	"github.com/samber/lo"
)

// EngineerType is the discipline picked in the first step of the create-test wizard.
type EngineerType string

// Supported engineer types.
const (
	EngineerMechanical EngineerType = "mechanical"
	EngineerElectrical EngineerType = "electrical"
)

// EngineerOption is a selectable engineer type.
type EngineerOption struct {
	ID    EngineerType
	Label string
	Icon  string
}

// EngineerTypes lists the engineer types in display order.
var EngineerTypes = []EngineerOption{
	{ID: EngineerMechanical, Label: "Mechanical Engineer", Icon: "⚙"},
	{ID: EngineerElectrical, Label: "Electrical Engineer", Icon: "⚡"},
}

// Industries lists the industries offered by the wizard.
var Industries = []string{
	"Automotive",
	"Aerospace & Defense",
	"Consumer Electronics",
	"Industrial / Manufacturing",
	"Medical Devices",
	"Energy & Utilities",
	"Semiconductors",
	"Other",
}

// MechanicalSkills are the assessable areas for mechanical engineers.
var MechanicalSkills = []string{
	"CAD / SolidWorks",
	"GD&T",
	"DFM / DFA",
	"FEA / Simulation",
	"Tolerance Analysis",
	"Materials Selection",
	"Thermal Management",
	"Prototyping",
	"Manufacturing Processes",
	"Root Cause Analysis",
}

// ElectricalSkills are the assessable areas for electrical engineers.
var ElectricalSkills = []string{
	"Schematic Capture",
	"PCB Design",
	"Power Electronics",
	"EMI/EMC",
	"Signal Integrity",
	"Embedded Systems",
	"Debugging",
	"Component Selection",
	"Test & Validation",
	"Documentation",
}

// TestDraft holds the answers collected by the create-test wizard.
type TestDraft struct {
	EngineerType EngineerType
	Industry     string
	Skills       []string
	Notes        string
}

// SetEngineerType selects an engineer type. Picking a type always clears the skills.
func (d *TestDraft) SetEngineerType(t EngineerType) {
	d.EngineerType = t
	d.Skills = nil
}

// AvailableSkills returns the skills offered for the selected engineer type.
func (d TestDraft) AvailableSkills() []string {
	switch d.EngineerType {
	case EngineerMechanical:
		return MechanicalSkills
	case EngineerElectrical:
		return ElectricalSkills
	}
	return nil
}

// ToggleSkill adds skill when absent and removes it when present.
// Skills not offered for the current engineer type are ignored.
func (d *TestDraft) ToggleSkill(skill string) {
	if !slices.Contains(d.AvailableSkills(), skill) {
		return
	}
	if slices.Contains(d.Skills, skill) {
		d.Skills = lo.Without(d.Skills, skill)
		return
	}
	d.Skills = append(d.Skills, skill)
}

// HasSkill reports whether skill is selected.
func (d TestDraft) HasSkill(skill string) bool {
	return slices.Contains(d.Skills, skill)
}

// CanCreate reports whether the draft has a type, an industry and at least one skill.
func (d TestDraft) CanCreate() bool {
	return d.EngineerType != "" && d.Industry != "" && len(d.Skills) > 0
}

// RoleID maps the draft to the role whose test template it produces.
func (d TestDraft) RoleID() string {
	if d.EngineerType == EngineerMechanical {
		return RoleMechanicalDesign
	}
	return RoleElectricalDesign
}
