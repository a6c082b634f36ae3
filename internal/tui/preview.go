package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colare/recruit/internal/preview"
	"github.com/colare/recruit/pkg/domain"
)

type previewLoadedMsg struct {
	result preview.Result
}

// closePreviewMsg asks the app to leave the preview.
type closePreviewMsg struct{}

type previewModel struct {
	store      preview.Reader
	testID     string
	questionID string
	result     preview.Result
	loaded     bool

	// Answers are kept for the session only; nothing is written back.
	optionCursor int
	selected     map[int]int // by Position
	answers      map[int]string
	answer       textarea.Model

	width  int
	height int
}

func newPreviewModel(store preview.Reader, testID, questionID string) previewModel {
	ta := textarea.New()
	ta.Placeholder = "Type your answer here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = maxInputLen
	ta.SetHeight(5)
	return previewModel{
		store:      store,
		testID:     testID,
		questionID: questionID,
		selected:   make(map[int]int),
		answers:    make(map[int]string),
		answer:     ta,
	}
}

func (m previewModel) Init() tea.Cmd {
	return m.load()
}

func (m previewModel) load() tea.Cmd {
	store, testID, questionID := m.store, m.testID, m.questionID
	return func() tea.Msg {
		return previewLoadedMsg{result: preview.Lookup(context.Background(), store, testID, questionID)}
	}
}

// goTo switches to questionID ("" is the intro), keeping the current answer.
func (m previewModel) goTo(questionID string) (previewModel, tea.Cmd) {
	m.saveAnswer()
	m.questionID = questionID
	m.loaded = false
	m.answer.Blur()
	return m, m.load()
}

// step moves delta questions in flattened order without reloading.
func (m previewModel) step(delta int) (previewModel, tea.Cmd) {
	res, ok := m.result.Step(delta)
	if !ok {
		return m, nil
	}
	m.saveAnswer()
	m.answer.Blur()
	m.questionID = res.QuestionID
	return m.show(res)
}

// show makes res current and restores what was entered for its question.
func (m previewModel) show(res preview.Result) (previewModel, tea.Cmd) {
	m.result = res
	m.loaded = true
	q := res.Question
	if q == nil {
		return m, nil
	}
	if q.IsMultipleChoice() {
		m.optionCursor = m.selected[res.Position()]
		return m, nil
	}
	m.answer.SetValue(m.answers[res.Position()])
	cmd := m.answer.Focus()
	return m, cmd
}

func (m *previewModel) saveAnswer() {
	if q := m.result.Question; q != nil && !q.IsMultipleChoice() {
		m.answers[m.result.Position()] = m.answer.Value()
	}
}

// editing reports whether keystrokes belong to the free-text answer box.
func (m previewModel) editing() bool {
	q := m.result.Question
	return m.loaded && q != nil && !q.IsMultipleChoice()
}

func (m previewModel) Update(msg tea.Msg) (previewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width > 8 {
			m.answer.SetWidth(msg.Width - 6)
		}

	case previewLoadedMsg:
		if msg.result.TestID != m.testID || msg.result.QuestionID != m.questionID {
			return m, nil
		}
		return m.show(msg.result)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.editing() {
		var cmd tea.Cmd
		m.answer, cmd = m.answer.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m previewModel) handleKey(msg tea.KeyMsg) (previewModel, tea.Cmd) {
	if key.Matches(msg, keys.Back) {
		if m.questionID == "" {
			return m, func() tea.Msg { return closePreviewMsg{} }
		}
		return m.goTo("")
	}
	if !m.loaded {
		return m, nil
	}

	if m.questionID == "" {
		if key.Matches(msg, keys.Open) {
			if first := m.result.FirstQuestionID(); first != "" {
				return m.goTo(first)
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.NextQuestion):
		return m.step(1)
	case key.Matches(msg, keys.PrevQuestion):
		return m.step(-1)
	}

	q := m.result.Question
	if q == nil {
		return m, nil
	}
	if q.IsMultipleChoice() {
		switch {
		case key.Matches(msg, keys.Down):
			if m.optionCursor < len(q.Options)-1 {
				m.optionCursor++
			}
		case key.Matches(msg, keys.Up):
			if m.optionCursor > 0 {
				m.optionCursor--
			}
		case key.Matches(msg, keys.Select):
			m.selected[m.result.Position()] = m.optionCursor
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.answer, cmd = m.answer.Update(msg)
	return m, cmd
}

func (m previewModel) View() string {
	if !m.loaded {
		return " " + dimStyle.Render("loading preview...")
	}
	if m.questionID == "" {
		return m.introView()
	}
	return m.questionView()
}

func (m previewModel) introView() string {
	r := m.result
	var b strings.Builder

	b.WriteString(" " + infoBannerStyle.Render("This is a preview of your test. Complete the steps below before starting.") + "\n\n")
	b.WriteString(" " + accentStyle.Render("A S S E S S M E N T") + "\n")
	b.WriteString(" " + titleStyle.Render(r.Role.TestTitle()) + "\n")
	b.WriteString(" " + normalStyle.Render("Welcome. You've been invited to take a test.") + "\n\n")
	b.WriteString(" " + violetStyle.Render(fmt.Sprintf("Estimated time: %d minutes", r.Duration())) + "\n\n")

	b.WriteString(" " + sectionHeaderStyle.Render("Sections") + "\n")
	for i, s := range r.Sections {
		line := fmt.Sprintf("   %d. %s", i+1, s.Title)
		if !r.Seeded {
			line += metaStyle.Render(fmt.Sprintf("  %d questions", len(s.Questions)))
			if s.Minutes > 0 {
				line += metaStyle.Render(fmt.Sprintf(" · %d mins", s.Minutes))
			}
		}
		b.WriteString(normalStyle.Render(line) + "\n")
	}
	b.WriteString("\n")

	if r.FirstQuestionID() != "" {
		b.WriteString(" " + avatarStyle.Render("Start test ▸") + "  " + metaStyle.Render(fmt.Sprintf("%d questions", r.TotalQuestions())) + "\n")
	} else {
		b.WriteString(" " + metaStyle.Render("Start test ▸") + "\n")
		b.WriteString(" " + dimStyle.Render("No questions yet. Import sections with: recruit tests import "+m.testID+" <file>") + "\n")
	}
	return b.String()
}

func (m previewModel) questionView() string {
	r := m.result
	var b strings.Builder

	b.WriteString(" " + metaStyle.Render("Tests › "+r.Role.TestTitle()+" › Preview") + "\n")
	heading := " " + titleStyle.Render("Question Preview")
	if pos := r.Position(); pos > 0 {
		heading += "  " + metaStyle.Render(fmt.Sprintf("%d/%d", pos, r.TotalQuestions()))
	}
	b.WriteString(heading + "\n\n")

	q := r.Question
	if q == nil {
		b.WriteString("   " + dimStyle.Render(preview.NotFoundMessage) + "\n")
		return b.String()
	}

	b.WriteString(" " + questionChips(*q) + "\n\n")
	b.WriteString(" " + selectedStyle.Render(q.Title) + "\n")
	if q.Description != "" {
		b.WriteString(" " + normalStyle.Render(q.Description) + "\n")
	}
	b.WriteString("\n")

	if q.IsMultipleChoice() {
		chosen, hasChoice := m.selected[r.Position()]
		for i, opt := range q.Options {
			radio := "○"
			if hasChoice && chosen == i {
				radio = accentStyle.Render("●")
			}
			cursor := "  "
			label := normalStyle.Render(opt)
			if i == m.optionCursor {
				cursor = accentStyle.Render("▸ ")
				label = selectedStyle.Render(opt)
			}
			b.WriteString(" " + cursor + radio + " " + label + "\n")
		}
		return b.String()
	}

	for _, line := range strings.Split(m.answer.View(), "\n") {
		b.WriteString(" " + line + "\n")
	}
	return b.String()
}

func questionChips(q domain.Question) string {
	var chips []string
	if q.Skill != "" {
		chips = append(chips, chipStyle.Render(q.Skill))
	}
	if q.Type != "" {
		chips = append(chips, chipStyle.Render(q.Type))
	}
	chips = append(chips, chipStyle.Render(fmt.Sprintf("%d mins", q.TimeMinutes)))
	return strings.Join(chips, " ")
}

func (m previewModel) helpKeys() string {
	switch {
	case m.questionID == "":
		return " " + helpEntry("enter", "start test") + "  " + helpEntry("esc", "back") + "  " + helpEntry("q", "quit")
	case m.result.Question != nil && m.result.Question.IsMultipleChoice():
		return helpFor(keys.Down, keys.Select, keys.NextQuestion, keys.PrevQuestion, keys.Back, keys.Quit)
	default:
		return helpFor(keys.NextQuestion, keys.PrevQuestion, keys.Back) + "  " + helpEntry("ctrl+c", "quit")
	}
}
