package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
)

var (
	ErrMissingRequiredFields = errors.New("japanese and korean are required")
	ErrInvalidImport         = errors.New("import payload must be a JSON array or object")
)

const (
	defaultLevel    = "N5"
	defaultCategory = "기타"
)

// VocabRepo persists vocabulary items.
type VocabRepo interface {
	Create(ctx context.Context, w *entities.Word) error
	GetAll(ctx context.Context) ([]entities.Word, error)
	GetUserAdded(ctx context.Context) ([]entities.Word, error)
	Delete(ctx context.Context, id int64) error
}

// VocabManager handles user-authored vocabulary: CRUD plus JSON bulk
// import and export in the corpus file format.
type VocabManager struct {
	words VocabRepo
}

// NewVocabManager creates a new VocabManager.
func NewVocabManager(words VocabRepo) *VocabManager {
	return &VocabManager{words: words}
}

// AddWord validates and stores one user-added word. Missing optional
// fields get the usual defaults.
func (s *VocabManager) AddWord(ctx context.Context, w *entities.Word) error {
	if w.Japanese == "" || w.Korean == "" {
		return ErrMissingRequiredFields
	}

	applyWordDefaults(w)
	w.IsUserAdded = true

	return s.words.Create(ctx, w)
}

// UserWords returns the learner's own words, newest first.
func (s *VocabManager) UserWords(ctx context.Context) ([]entities.Word, error) {
	return s.words.GetUserAdded(ctx)
}

// AllWords returns every word, user-added first.
func (s *VocabManager) AllWords(ctx context.Context) ([]entities.Word, error) {
	return s.words.GetAll(ctx)
}

// DeleteWord removes a user-added word. Corpus words are immutable;
// deleting one returns repository.ErrWordNotFound.
func (s *VocabManager) DeleteWord(ctx context.Context, id int64) error {
	return s.words.Delete(ctx, id)
}

// SearchUserWords filters the learner's words by a case-insensitive
// substring of the Japanese form or the Korean meaning.
func (s *VocabManager) SearchUserWords(ctx context.Context, query string) ([]entities.Word, error) {
	words, err := s.words.GetUserAdded(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return words, nil
	}

	matched := make([]entities.Word, 0, len(words))
	for _, w := range words {
		if strings.Contains(strings.ToLower(w.Japanese), query) ||
			strings.Contains(strings.ToLower(w.Korean), query) {
			matched = append(matched, w)
		}
	}

	return matched, nil
}

// ImportJSON bulk-adds words from a JSON array (or a single object).
// A syntax error rejects the whole payload; entries missing the required
// fields are skipped silently. Returns the number of words added.
func (s *VocabManager) ImportJSON(ctx context.Context, data []byte) (int, error) {
	var batch []entities.Word
	if err := json.Unmarshal(data, &batch); err != nil {
		// Not an array; a single object is accepted too.
		var single entities.Word
		if err = json.Unmarshal(data, &single); err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidImport, err)
		}
		batch = []entities.Word{single}
	}

	added := 0
	for _, w := range batch {
		if w.Japanese == "" || w.Korean == "" {
			continue
		}

		applyWordDefaults(&w)
		w.IsUserAdded = true

		if err := s.words.Create(ctx, &w); err != nil {
			return added, err
		}
		added++
	}

	return added, nil
}

// ExportJSON serializes words in the corpus file format. With userOnly
// set, only the learner's own words are exported.
func (s *VocabManager) ExportJSON(ctx context.Context, userOnly bool) ([]byte, error) {
	var (
		words []entities.Word
		err   error
	)
	if userOnly {
		words, err = s.words.GetUserAdded(ctx)
	} else {
		words, err = s.words.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	if words == nil {
		words = []entities.Word{}
	}

	return json.MarshalIndent(words, "", "  ")
}

func applyWordDefaults(w *entities.Word) {
	if w.Level == "" {
		w.Level = defaultLevel
	}
	if w.Category == "" {
		w.Category = defaultCategory
	}
}
