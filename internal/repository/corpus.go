package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
)

// CorpusLoader seeds the content store from JSON corpus files on first run.
// Each file is loaded in a single transaction and only when its table is
// empty, so an existing store is never overwritten.
type CorpusLoader struct {
	db *pgxpool.Pool
}

// NewCorpusLoader creates a new CorpusLoader.
func NewCorpusLoader(db *pgxpool.Pool) *CorpusLoader {
	return &CorpusLoader{db: db}
}

// LoadIfEmpty seeds words and grammars from the given files. A missing
// file is skipped; the corresponding table simply stays empty. Returns
// the number of loaded words and grammars.
func (l *CorpusLoader) LoadIfEmpty(ctx context.Context, wordsPath, grammarPath string) (int, int, error) {
	words, err := l.loadWords(ctx, wordsPath)
	if err != nil {
		return 0, 0, err
	}

	grammars, err := l.loadGrammars(ctx, grammarPath)
	if err != nil {
		return words, 0, err
	}

	return words, grammars, nil
}

func (l *CorpusLoader) loadWords(ctx context.Context, path string) (int, error) {
	var count int
	if err := l.db.QueryRow(ctx, `SELECT COUNT(*) FROM words`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	var words []entities.Word
	ok, err := readCorpusFile(path, &words)
	if err != nil || !ok {
		return 0, err
	}

	tx, err := l.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin corpus tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO words (japanese, hiragana, kanji, korean, level, category,
			example_sentence, example_korean, memo_tip, is_user_added)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE)
	`

	loaded := 0
	for _, w := range words {
		if w.Japanese == "" || w.Korean == "" {
			continue
		}
		if w.Level == "" {
			w.Level = "N5"
		}

		_, err = tx.Exec(
			ctx, query,
			w.Japanese,
			w.Reading,
			w.KanjiForm,
			w.Korean,
			w.Level,
			w.Category,
			w.ExampleSentence,
			w.ExampleTranslation,
			w.MemoTip,
		)
		if err != nil {
			return 0, fmt.Errorf("seed word: %w", err)
		}
		loaded++
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit corpus tx: %w", err)
	}

	return loaded, nil
}

func (l *CorpusLoader) loadGrammars(ctx context.Context, path string) (int, error) {
	var count int
	if err := l.db.QueryRow(ctx, `SELECT COUNT(*) FROM grammars`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count grammars: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	var grammars []entities.Grammar
	ok, err := readCorpusFile(path, &grammars)
	if err != nil || !ok {
		return 0, err
	}

	tx, err := l.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin corpus tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO grammars (pattern, meaning, explanation, level,
			connection_rule, example_sentence, example_korean)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	loaded := 0
	for _, g := range grammars {
		if g.Pattern == "" || g.Meaning == "" {
			continue
		}
		if g.Level == "" {
			g.Level = "N5"
		}

		_, err = tx.Exec(
			ctx, query,
			g.Pattern,
			g.Meaning,
			g.Explanation,
			g.Level,
			g.ConnectionRule,
			g.ExampleSentence,
			g.ExampleTranslation,
		)
		if err != nil {
			return 0, fmt.Errorf("seed grammar: %w", err)
		}
		loaded++
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit corpus tx: %w", err)
	}

	return loaded, nil
}

// readCorpusFile unmarshals a corpus file into v. Returns false without an
// error when the file doesn't exist.
func readCorpusFile(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read corpus file: %w", err)
	}

	if err = json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("unmarshal corpus file %s: %w", path, err)
	}

	return true, nil
}
