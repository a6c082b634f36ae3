package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colare/recruit/pkg/domain"
)

type createField int

const (
	fieldType createField = iota
	fieldIndustry
	fieldSkills
	fieldNotes
	numFields
)

type createModel struct {
	draft       domain.TestDraft
	focus       createField
	typeIdx     int // index into domain.EngineerTypes, -1 = unset
	industryIdx int // index into domain.Industries, -1 = unset
	skillCursor int
	notes       textarea.Model
	statusMsg   string
}

func newCreateModel() createModel {
	ta := textarea.New()
	ta.Placeholder = "optional"
	ta.ShowLineNumbers = false
	ta.CharLimit = maxInputLen
	ta.SetHeight(3)
	return createModel{typeIdx: -1, industryIdx: -1, notes: ta}
}

func (m createModel) Init() tea.Cmd {
	return nil
}

func (m createModel) Update(msg tea.Msg) (createModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 12 {
			m.notes.SetWidth(msg.Width - 8)
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	if m.focus == fieldNotes {
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setFocus moves the wizard focus. Only the notes field takes a text cursor.
func (m createModel) setFocus(f createField) (createModel, tea.Cmd) {
	m.focus = f
	if f == fieldNotes {
		cmd := m.notes.Focus()
		return m, cmd
	}
	m.notes.Blur()
	return m, nil
}

func (m createModel) updateKeys(msg tea.KeyMsg) (createModel, tea.Cmd) {
	m.statusMsg = ""

	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "tab":
		return m.setFocus((m.focus + 1) % numFields)
	case "shift+tab":
		return m.setFocus((m.focus - 1 + numFields) % numFields)
	}

	switch m.focus {
	case fieldType:
		switch msg.String() {
		case "h", "left":
			m.cycleType(-1)
		case "l", "right", " ":
			m.cycleType(1)
		case "enter":
			return m.setFocus(fieldIndustry)
		}
	case fieldIndustry:
		switch msg.String() {
		case "h", "left":
			m.industryIdx = cycle(m.industryIdx, -1, len(domain.Industries))
			m.draft.Industry = domain.Industries[m.industryIdx]
		case "l", "right", " ":
			m.industryIdx = cycle(m.industryIdx, 1, len(domain.Industries))
			m.draft.Industry = domain.Industries[m.industryIdx]
		case "enter":
			return m.setFocus(fieldSkills)
		}
	case fieldSkills:
		skills := m.draft.AvailableSkills()
		switch msg.String() {
		case "j", "down":
			if m.skillCursor < len(skills)-1 {
				m.skillCursor++
			}
		case "k", "up":
			if m.skillCursor > 0 {
				m.skillCursor--
			}
		case " ", "x":
			if m.skillCursor < len(skills) {
				m.draft.ToggleSkill(skills[m.skillCursor])
			}
		case "enter":
			return m.setFocus(fieldNotes)
		}
	case fieldNotes:
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		m.draft.Notes = m.notes.Value()
		return m, cmd
	}
	return m, nil
}

// cycleType moves through the engineer types. Each change clears the skills.
func (m *createModel) cycleType(step int) {
	m.typeIdx = cycle(m.typeIdx, step, len(domain.EngineerTypes))
	m.draft.SetEngineerType(domain.EngineerTypes[m.typeIdx].ID)
	m.skillCursor = 0
}

// cycle steps idx through [0,n). An unset idx (-1) lands on the first or last entry.
func cycle(idx, step, n int) int {
	if idx < 0 {
		if step < 0 {
			return n - 1
		}
		return 0
	}
	return (idx + step + n) % n
}

func (m createModel) submit() (createModel, tea.Cmd) {
	switch {
	case m.draft.EngineerType == "":
		m.statusMsg = "pick an engineer type (h/l)"
		return m, nil
	case m.draft.Industry == "":
		m.statusMsg = "pick an industry (h/l)"
		return m, nil
	case len(m.draft.Skills) == 0:
		m.statusMsg = "select at least one skill (space)"
		return m, nil
	}
	if !m.draft.CanCreate() {
		return m, nil
	}
	roleID := m.draft.RoleID()
	return m, func() tea.Msg { return openPreviewMsg{testID: roleID} }
}

func (m createModel) View() string {
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render("Create a test") + "\n")
	b.WriteString(" " + dimStyle.Render("Tell us who you are hiring. We will draft the assessment.") + "\n\n")

	label := func(f createField, text string) string {
		if f == m.focus {
			return accentStyle.Render("> ") + selectedStyle.Render(text)
		}
		return "  " + metaStyle.Render(text)
	}

	// Engineer type
	b.WriteString(label(fieldType, "Engineer type") + "  ")
	for i, opt := range domain.EngineerTypes {
		text := opt.Icon + " " + opt.Label
		if i == m.typeIdx {
			b.WriteString(selectedRowBg.Render(violetStyle.Render(text)))
		} else {
			b.WriteString(dimStyle.Render(text))
		}
		b.WriteString("   ")
	}
	b.WriteString("\n\n")

	// Industry
	industry := m.draft.Industry
	if industry == "" {
		industry = "select..."
	}
	fmt.Fprintf(&b, "%s  %s  %s\n\n", label(fieldIndustry, "Industry"), normalStyle.Render(industry), metaStyle.Render("(h/l to cycle)"))

	// Skills
	b.WriteString(label(fieldSkills, "Skills to assess") + "\n")
	skills := m.draft.AvailableSkills()
	if len(skills) == 0 {
		b.WriteString("    " + dimStyle.Render("pick an engineer type first") + "\n")
	}
	for i, s := range skills {
		box := "[ ]"
		if m.draft.HasSkill(s) {
			box = accentStyle.Render("[x]")
		}
		cursor := "  "
		if m.focus == fieldSkills && i == m.skillCursor {
			cursor = accentStyle.Render("▸ ")
		}
		b.WriteString("   " + cursor + box + " " + normalStyle.Render(s) + "\n")
	}
	b.WriteString("\n")

	// Notes
	b.WriteString(label(fieldNotes, "Notes") + "\n")
	for _, line := range strings.Split(m.notes.View(), "\n") {
		b.WriteString("    " + line + "\n")
	}
	b.WriteString("\n")

	if m.draft.CanCreate() {
		b.WriteString(" " + avatarStyle.Render("Create test ▸") + "  " + metaStyle.Render("ctrl+s") + "\n")
	} else {
		b.WriteString(" " + metaStyle.Render("Create test ▸") + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + errorBannerStyle.Render(m.statusMsg) + "\n")
	}

	return b.String()
}

func (m createModel) helpKeys() string {
	return " " + helpEntry("tab", "next") + "  " + helpEntry("h/l", "choose") + "  " + helpEntry("space", "toggle") + "  " + helpEntry("ctrl+s", "create") + "  " + helpEntry("esc", "cancel")
}
