package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/colare/recruit/internal/localstore"
	"github.com/colare/recruit/pkg/domain"
)

// ErrNoSections is returned when an import file holds no sections.
var ErrNoSections = errors.New("no sections")

// Writer is the write side of the local store.
type Writer interface {
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// sectionFile is the object form of an import file: {"sections": [...]}.
type sectionFile struct {
	Sections []domain.Section `json:"sections" yaml:"sections"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("questiontype", func(fl validator.FieldLevel) bool {
		return domain.ValidQuestionType(fl.Field().String())
	})
	return v
}

// ReadFile parses a section list from a .json, .jsonc, .yaml or .yml file.
func ReadFile(path string) ([]domain.Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	sections, err := ParseSections(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sections, nil
}

// ParseSections decodes data according to ext. Both a bare section list and
// an object with a "sections" field are accepted. Missing ids are filled in,
// missing question types default to Free Text, and the result is validated.
func ParseSections(ext string, data []byte) ([]domain.Section, error) {
	var (
		sections []domain.Section
		err      error
	)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		sections, err = decodeYAML(data)
	default:
		sections, err = decodeJSON(jsonc.ToJSON(data))
	}
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, ErrNoSections
	}

	normalize(sections)
	for i := range sections {
		if err := validate.Struct(sections[i]); err != nil {
			return nil, fmt.Errorf("section %d (%q): %w", i+1, sections[i].Title, err)
		}
	}
	return sections, nil
}

func decodeJSON(data []byte) ([]domain.Section, error) {
	var list []domain.Section
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var file sectionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing sections: %w", err)
	}
	return file.Sections, nil
}

func decodeYAML(data []byte) ([]domain.Section, error) {
	var list []domain.Section
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var file sectionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing sections: %w", err)
	}
	return file.Sections, nil
}

func normalize(sections []domain.Section) {
	for si := range sections {
		s := &sections[si]
		s.Title = strings.TrimSpace(s.Title)
		if strings.TrimSpace(s.ID) == "" {
			s.ID = uuid.NewString()
		}
		for qi := range s.Questions {
			q := &s.Questions[qi]
			q.Title = strings.TrimSpace(q.Title)
			if strings.TrimSpace(q.ID) == "" {
				q.ID = uuid.NewString()
			}
			if q.Type == "" {
				q.Type = domain.QuestionTypeFreeText
			}
		}
	}
}

// Import stores sections as the section list of testID, replacing any
// previous list.
func Import(ctx context.Context, store Writer, testID string, sections []domain.Section) error {
	if len(sections) == 0 {
		return ErrNoSections
	}
	data, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	if err := store.Set(ctx, localstore.SectionsKey(testID), string(data)); err != nil {
		return fmt.Errorf("preview.Import: %w", err)
	}
	return nil
}

// Clear removes the stored section list of testID so the preview falls back
// to the seed sections.
func Clear(ctx context.Context, store Writer, testID string) error {
	if err := store.Delete(ctx, localstore.SectionsKey(testID)); err != nil {
		return fmt.Errorf("preview.Clear: %w", err)
	}
	return nil
}
