package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
	"github.com/soominpark/nihongo-tracker/internal/repository"
)

type fakeVocabStore struct {
	words  []entities.Word
	nextID int64
}

func newFakeVocabStore() *fakeVocabStore {
	return &fakeVocabStore{nextID: 1}
}

func (f *fakeVocabStore) Create(_ context.Context, w *entities.Word) error {
	w.ID = f.nextID
	f.nextID++
	f.words = append(f.words, *w)
	return nil
}

func (f *fakeVocabStore) GetAll(_ context.Context) ([]entities.Word, error) {
	out := make([]entities.Word, len(f.words))
	copy(out, f.words)
	return out, nil
}

func (f *fakeVocabStore) GetUserAdded(_ context.Context) ([]entities.Word, error) {
	var out []entities.Word
	for _, w := range f.words {
		if w.IsUserAdded {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeVocabStore) Delete(_ context.Context, id int64) error {
	for i, w := range f.words {
		if w.ID == id {
			if !w.IsUserAdded {
				return repository.ErrWordNotFound
			}
			f.words = append(f.words[:i], f.words[i+1:]...)
			return nil
		}
	}
	return repository.ErrWordNotFound
}

func TestAddWord(t *testing.T) {
	store := newFakeVocabStore()
	mgr := NewVocabManager(store)

	err := mgr.AddWord(context.Background(), &entities.Word{Japanese: "勉強", Korean: "공부"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.words) != 1 {
		t.Fatalf("expected 1 stored word, got %d", len(store.words))
	}
	w := store.words[0]
	if !w.IsUserAdded {
		t.Error("added word must be flagged user-added")
	}
	if w.Level != defaultLevel {
		t.Errorf("Level = %q, want default %q", w.Level, defaultLevel)
	}
	if w.Category != defaultCategory {
		t.Errorf("Category = %q, want default %q", w.Category, defaultCategory)
	}
}

func TestAddWord_Validation(t *testing.T) {
	mgr := NewVocabManager(newFakeVocabStore())

	tests := []struct {
		name string
		word entities.Word
	}{
		{name: "missing japanese", word: entities.Word{Korean: "공부"}},
		{name: "missing korean", word: entities.Word{Japanese: "勉強"}},
		{name: "empty", word: entities.Word{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mgr.AddWord(context.Background(), &tt.word)
			if !errors.Is(err, ErrMissingRequiredFields) {
				t.Fatalf("expected ErrMissingRequiredFields, got %v", err)
			}
		})
	}
}

func TestDeleteWord_UserAddedOnly(t *testing.T) {
	store := newFakeVocabStore()
	store.words = []entities.Word{
		{ID: 1, Japanese: "水", Korean: "물"},
		{ID: 2, Japanese: "勉強", Korean: "공부", IsUserAdded: true},
	}
	store.nextID = 3
	mgr := NewVocabManager(store)

	if err := mgr.DeleteWord(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error deleting user word: %v", err)
	}
	if err := mgr.DeleteWord(context.Background(), 1); !errors.Is(err, repository.ErrWordNotFound) {
		t.Fatalf("corpus word must not be deletable, got %v", err)
	}
	if err := mgr.DeleteWord(context.Background(), 99); !errors.Is(err, repository.ErrWordNotFound) {
		t.Fatalf("unknown id must report not found, got %v", err)
	}
}

func TestSearchUserWords(t *testing.T) {
	store := newFakeVocabStore()
	mgr := NewVocabManager(store)

	seed := []entities.Word{
		{Japanese: "勉強する", Korean: "공부하다"},
		{Japanese: "食べる", Korean: "먹다"},
		{Japanese: "Benkyou", Korean: "공부"},
	}
	for i := range seed {
		if err := mgr.AddWord(context.Background(), &seed[i]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "korean substring", query: "공부", want: 2},
		{name: "japanese substring", query: "食べ", want: 1},
		{name: "case insensitive", query: "benkyou", want: 1},
		{name: "blank returns all", query: "   ", want: 3},
		{name: "no match", query: "없는말", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mgr.SearchUserWords(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("query %q: got %d words, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestImportJSON(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantAdded int
		wantErr   bool
	}{
		{
			name: "array with one invalid entry",
			payload: `[
				{"japanese": "水", "korean": "물", "level": "N5"},
				{"japanese": "火"},
				{"japanese": "風", "korean": "바람"}
			]`,
			wantAdded: 2,
		},
		{
			name:      "single object",
			payload:   `{"japanese": "土", "korean": "흙"}`,
			wantAdded: 1,
		},
		{
			name:    "syntax error rejects whole payload",
			payload: `[{"japanese": "水"`,
			wantErr: true,
		},
		{
			name:      "empty array",
			payload:   `[]`,
			wantAdded: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeVocabStore()
			mgr := NewVocabManager(store)

			added, err := mgr.ImportJSON(context.Background(), []byte(tt.payload))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidImport) {
					t.Fatalf("expected ErrInvalidImport, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if added != tt.wantAdded {
				t.Fatalf("added = %d, want %d", added, tt.wantAdded)
			}
			if len(store.words) != tt.wantAdded {
				t.Fatalf("stored = %d, want %d", len(store.words), tt.wantAdded)
			}
			for _, w := range store.words {
				if !w.IsUserAdded {
					t.Errorf("imported word %q must be flagged user-added", w.Japanese)
				}
				if w.Level == "" || w.Category == "" {
					t.Errorf("imported word %q missing defaults: level=%q category=%q", w.Japanese, w.Level, w.Category)
				}
			}
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	source := newFakeVocabStore()
	mgr := NewVocabManager(source)

	seed := []entities.Word{
		{Japanese: "勉強", Reading: "べんきょう", Korean: "공부", Level: "N4", Category: "동사", MemoTip: "tip"},
		{Japanese: "食べる", Korean: "먹다"},
	}
	for i := range seed {
		if err := mgr.AddWord(context.Background(), &seed[i]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	data, err := mgr.ExportJSON(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	target := newFakeVocabStore()
	added, err := NewVocabManager(target).ImportJSON(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != len(seed) {
		t.Fatalf("round trip added %d words, want %d", added, len(seed))
	}

	for i, w := range target.words {
		orig := source.words[i]
		if w.Japanese != orig.Japanese || w.Reading != orig.Reading || w.Korean != orig.Korean ||
			w.Level != orig.Level || w.Category != orig.Category || w.MemoTip != orig.MemoTip {
			t.Errorf("word %d changed in round trip: got %+v, want %+v", i, w, orig)
		}
	}
}

func TestExportJSON_EmptyStore(t *testing.T) {
	mgr := NewVocabManager(newFakeVocabStore())

	data, err := mgr.ExportJSON(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var words []entities.Word
	if err = json.Unmarshal(data, &words); err != nil {
		t.Fatalf("export is not a JSON array: %v", err)
	}
	if len(words) != 0 {
		t.Fatalf("expected empty array, got %d entries", len(words))
	}
}
