package preview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colare/recruit/internal/localstore"
	"github.com/colare/recruit/pkg/domain"
)

type mapStore map[string]string

func (m mapStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", localstore.ErrNotFound
	}
	return v, nil
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("disk on fire")
}

const storedSectionsJSON = `[
  {"id":"s1","title":"CAD","minutes":20,"questions":[
    {"id":"q1","title":"Model a bracket","skill":"CAD / SolidWorks","type":"Free Text","timeMinutes":10,"description":"Describe your approach."},
    {"id":"dup","title":"First duplicate","skill":"GD&T","type":"Multiple Choice","timeMinutes":5,"description":"Pick one.","options":["A","B"]}
  ]},
  {"id":"s2","title":"DFM","minutes":15,"questions":[
    {"id":"dup","title":"Second duplicate","skill":"DFM / DFA","type":"Free Text","timeMinutes":5,"description":""},
    {"id":"q4","title":"Injection molding","skill":"DFM / DFA","type":"Free Text","timeMinutes":10,"description":""}
  ]}
]`

func TestLookupFindsQuestion(t *testing.T) {
	store := mapStore{localstore.SectionsKey("job-1"): storedSectionsJSON}

	res := Lookup(context.Background(), store, "job-1", "q4")
	require.NotNil(t, res.Question)
	assert.False(t, res.Seeded)
	assert.False(t, res.NotFound())
	assert.Equal(t, "Injection molding", res.Question.Title)
	assert.Equal(t, 1, res.SectionIndex)
	assert.Equal(t, 1, res.QuestionIndex)
	assert.Equal(t, 4, res.TotalQuestions())
	assert.Equal(t, 4, res.Position())
	assert.Equal(t, "q1", res.FirstQuestionID())
}

func TestLookupFirstMatchWins(t *testing.T) {
	store := mapStore{localstore.SectionsKey("job-1"): storedSectionsJSON}

	res := Lookup(context.Background(), store, "job-1", "dup")
	require.NotNil(t, res.Question)
	assert.Equal(t, "First duplicate", res.Question.Title)
	assert.Equal(t, 0, res.SectionIndex)
	assert.Equal(t, 1, res.QuestionIndex)
	assert.True(t, res.Question.IsMultipleChoice())
}

func TestLookupMissingQuestionIsNotFound(t *testing.T) {
	store := mapStore{localstore.SectionsKey("job-1"): storedSectionsJSON}

	res := Lookup(context.Background(), store, "job-1", "nope")
	assert.Nil(t, res.Question)
	assert.True(t, res.NotFound())
	assert.Len(t, res.Sections, 2)
}

func TestLookupWithoutQuestionID(t *testing.T) {
	store := mapStore{localstore.SectionsKey("job-1"): storedSectionsJSON}

	res := Lookup(context.Background(), store, "job-1", "")
	assert.Nil(t, res.Question)
	assert.False(t, res.NotFound())
}

func TestLookupFallsBackToSeedSections(t *testing.T) {
	tests := []struct {
		name  string
		store Reader
	}{
		{"absent", mapStore{}},
		{"malformed", mapStore{localstore.SectionsKey(domain.RoleElectricalDesign): "{oops"}},
		{"wrong shape", mapStore{localstore.SectionsKey(domain.RoleElectricalDesign): `{"sections":[]}`}},
		{"empty list", mapStore{localstore.SectionsKey(domain.RoleElectricalDesign): "[]"}},
		{"null", mapStore{localstore.SectionsKey(domain.RoleElectricalDesign): "null"}},
		{"read error", failingStore{}},
		{"nil store", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Lookup(context.Background(), tt.store, domain.RoleElectricalDesign, "q1")
			assert.True(t, res.Seeded)
			assert.True(t, res.NotFound())
			assert.Zero(t, res.TotalQuestions())
			assert.Empty(t, res.FirstQuestionID())
			require.Len(t, res.Sections, 4)
			assert.Equal(t, "Schematics & Components", res.Sections[0].Title)
			assert.Equal(t, "seed-0", res.Sections[0].ID)
			assert.Equal(t, domain.RoleElectricalDesign, res.Role.ID)
		})
	}
}

func TestSeedSectionsForUnknownTestUseFirstRole(t *testing.T) {
	sections, seeded := Sections(context.Background(), mapStore{}, "cl9x-unknown")
	assert.True(t, seeded)
	assert.Equal(t, SeedSections(domain.Roles[0]), sections)
}

func TestLookupDoesNotWriteBack(t *testing.T) {
	store := mapStore{}
	Lookup(context.Background(), store, "job-1", "q1")
	assert.Empty(t, store)
}

func TestStepVisitsRepeatedIDs(t *testing.T) {
	store := mapStore{localstore.SectionsKey("job-1"): storedSectionsJSON}
	res := Lookup(context.Background(), store, "job-1", "q1")

	var titles []string
	for {
		next, ok := res.Step(1)
		if !ok {
			break
		}
		res = next
		titles = append(titles, res.Question.Title)
	}
	assert.Equal(t, []string{"First duplicate", "Second duplicate", "Injection molding"}, titles)
	assert.Equal(t, "q4", res.QuestionID)
	assert.Equal(t, 4, res.Position())

	back, ok := res.Step(-1)
	require.True(t, ok)
	assert.Equal(t, "Second duplicate", back.Question.Title)
	assert.Equal(t, "dup", back.QuestionID)
	assert.Equal(t, 1, back.SectionIndex)
	assert.Equal(t, 0, back.QuestionIndex)

	back, ok = back.Step(-1)
	require.True(t, ok)
	assert.Equal(t, "First duplicate", back.Question.Title)
}

func TestStepStopsAtEnds(t *testing.T) {
	store := mapStore{localstore.SectionsKey("job-1"): storedSectionsJSON}
	ctx := context.Background()

	first := Lookup(ctx, store, "job-1", "q1")
	_, ok := first.Step(-1)
	assert.False(t, ok)

	last := Lookup(ctx, store, "job-1", "q4")
	_, ok = last.Step(1)
	assert.False(t, ok)

	missing := Lookup(ctx, store, "job-1", "missing")
	_, ok = missing.Step(1)
	assert.False(t, ok)
}

func TestStepSkipsEmptySections(t *testing.T) {
	sections := `[{"id":"a","title":"A","questions":[{"id":"x","title":"X","type":"Free Text"}]},` +
		`{"id":"b","title":"B","questions":[]},` +
		`{"id":"c","title":"C","questions":[{"id":"y","title":"Y","type":"Free Text"}]}]`
	store := mapStore{localstore.SectionsKey("job-1"): sections}

	next, ok := Lookup(context.Background(), store, "job-1", "x").Step(1)
	require.True(t, ok)
	assert.Equal(t, "y", next.QuestionID)
	assert.Equal(t, 2, next.SectionIndex)
}

func TestDurationDefaults(t *testing.T) {
	res := Lookup(context.Background(), mapStore{}, domain.RoleMechanicalDesign, "")
	assert.Equal(t, 60, res.Duration())
}
