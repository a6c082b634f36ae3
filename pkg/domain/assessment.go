package domain

import "github.com/samber/lo"

// Question types understood by the preview.
const (
	QuestionTypeFreeText       = "Free Text"
	QuestionTypeMultipleChoice = "Multiple Choice"
)

// ValidQuestionType reports whether t is a known question type.
func ValidQuestionType(t string) bool {
	return t == QuestionTypeFreeText || t == QuestionTypeMultipleChoice
}

// Question is a single assessment question.
type Question struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Skill       string   `json:"skill" yaml:"skill"`
	Type        string   `json:"type" yaml:"type" validate:"questiontype"`
	TimeMinutes int      `json:"timeMinutes" yaml:"timeMinutes" validate:"gte=0"`
	Description string   `json:"description" yaml:"description"`
	Options     []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// IsMultipleChoice reports whether the question should render as a choice list.
func (q Question) IsMultipleChoice() bool {
	return q.Type == QuestionTypeMultipleChoice && len(q.Options) > 0
}

// Section is an ordered group of questions within a test.
type Section struct {
	ID        string     `json:"id" yaml:"id" validate:"required"`
	Title     string     `json:"title" yaml:"title" validate:"required"`
	Minutes   int        `json:"minutes" yaml:"minutes" validate:"gte=0"`
	Questions []Question `json:"questions" yaml:"questions" validate:"dive"`
}

// FlattenQuestions returns every question in section then question order.
func FlattenQuestions(sections []Section) []Question {
	return lo.FlatMap(sections, func(s Section, _ int) []Question {
		return s.Questions
	})
}

// QuestionIDs returns the ids of every question in section then question order.
func QuestionIDs(sections []Section) []string {
	return lo.Map(FlattenQuestions(sections), func(q Question, _ int) string {
		return q.ID
	})
}

// DuplicateQuestionIDs lists ids used by more than one question, in first-seen order.
func DuplicateQuestionIDs(sections []Section) []string {
	return lo.FindDuplicates(QuestionIDs(sections))
}
