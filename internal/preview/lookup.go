// Package preview resolves the locally stored content of a hiring test for
// the preview screens and imports section lists into the local store.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/colare/recruit/internal/localstore"
	"github.com/colare/recruit/pkg/domain"
)

// NotFoundMessage is shown when a question id matches nothing.
const NotFoundMessage = "Question not found. It may have been removed."

// Reader is the read side of the local store.
type Reader interface {
	Get(ctx context.Context, key string) (string, error)
}

// Result is the outcome of a preview lookup.
type Result struct {
	TestID   string
	Role     domain.Role
	Sections []domain.Section
	// Seeded is true when the stored list was absent, malformed or empty
	// and Sections holds the role's seed titles instead.
	Seeded bool

	QuestionID    string
	Question      *domain.Question
	SectionIndex  int
	QuestionIndex int
}

// NotFound reports whether a question was requested and none matched.
func (r Result) NotFound() bool {
	return r.QuestionID != "" && r.Question == nil
}

// TotalQuestions counts the questions across all sections.
func (r Result) TotalQuestions() int {
	total := 0
	for _, s := range r.Sections {
		total += len(s.Questions)
	}
	return total
}

// FirstQuestionID is the id of the first question, or "" when there is none.
func (r Result) FirstQuestionID() string {
	for _, s := range r.Sections {
		if len(s.Questions) > 0 {
			return s.Questions[0].ID
		}
	}
	return ""
}

// Duration is the estimated test time in minutes.
func (r Result) Duration() int {
	return r.Role.Duration()
}

// Step returns the result moved delta questions along the flattened order,
// so repeated ids are visited one by one. It reports false at either end or
// when no question is current.
func (r Result) Step(delta int) (Result, bool) {
	if r.Question == nil {
		return r, false
	}
	target := r.Position() - 1 + delta
	if target < 0 {
		return r, false
	}
	for si := range r.Sections {
		qs := r.Sections[si].Questions
		if target < len(qs) {
			r.Question, r.SectionIndex, r.QuestionIndex = &qs[target], si, target
			r.QuestionID = qs[target].ID
			return r, true
		}
		target -= len(qs)
	}
	return r, false
}

// Position is the 1-based index of the current question in flattened order.
func (r Result) Position() int {
	if r.Question == nil {
		return 0
	}
	pos := r.QuestionIndex + 1
	for si := 0; si < r.SectionIndex; si++ {
		pos += len(r.Sections[si].Questions)
	}
	return pos
}

// Lookup loads the sections of testID and, when questionID is set, finds
// the first question with that id. It never fails: storage problems fall
// back to the seed sections and a missing question is reported by NotFound.
func Lookup(ctx context.Context, store Reader, testID, questionID string) Result {
	sections, seeded := Sections(ctx, store, testID)
	res := Result{
		TestID:     testID,
		Role:       domain.FindRole(testID),
		Sections:   sections,
		Seeded:     seeded,
		QuestionID: questionID,
	}
	if questionID == "" {
		return res
	}
	if q, si, qi, ok := FindQuestion(sections, questionID); ok {
		res.Question, res.SectionIndex, res.QuestionIndex = q, si, qi
	}
	return res
}

// Sections returns the stored section list of testID. When the list is
// absent, malformed or empty it returns the seed sections and true.
func Sections(ctx context.Context, store Reader, testID string) ([]domain.Section, bool) {
	sections, err := storedSections(ctx, store, testID)
	if err != nil {
		entry := log.WithField("test_id", testID)
		if !errors.Is(err, localstore.ErrNotFound) {
			entry = entry.WithError(err)
		}
		entry.Debug("using seed sections")
		return SeedSections(domain.FindRole(testID)), true
	}
	if len(sections) == 0 {
		return SeedSections(domain.FindRole(testID)), true
	}
	return sections, false
}

func storedSections(ctx context.Context, store Reader, testID string) ([]domain.Section, error) {
	if store == nil {
		return nil, localstore.ErrNotFound
	}
	raw, err := store.Get(ctx, localstore.SectionsKey(testID))
	if err != nil {
		return nil, err
	}
	var sections []domain.Section
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		return nil, fmt.Errorf("parse sections: %w", err)
	}
	return sections, nil
}

// SeedSections builds question-less sections from a role's preview titles.
func SeedSections(role domain.Role) []domain.Section {
	sections := make([]domain.Section, 0, len(role.Preview.Sections))
	for i, s := range role.Preview.Sections {
		sections = append(sections, domain.Section{
			ID:    fmt.Sprintf("seed-%d", i),
			Title: s.Title,
		})
	}
	return sections
}

// FindQuestion scans sections then questions in order and returns the first
// question whose id matches, with its section and question indexes.
func FindQuestion(sections []domain.Section, id string) (*domain.Question, int, int, bool) {
	for si := range sections {
		for qi := range sections[si].Questions {
			if sections[si].Questions[qi].ID == id {
				return &sections[si].Questions[qi], si, qi, true
			}
		}
	}
	return nil, 0, 0, false
}
