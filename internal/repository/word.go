package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
)

var ErrWordNotFound = errors.New("word not found")

const wordColumns = `id, japanese, hiragana, kanji, korean, level, category,
	example_sentence, example_korean, memo_tip, is_user_added, created_at`

// WordRepository provides access to vocabulary items.
type WordRepository struct {
	db *pgxpool.Pool
}

// NewWordRepository creates a new WordRepository.
func NewWordRepository(db *pgxpool.Pool) *WordRepository {
	return &WordRepository{db: db}
}

func scanWord(row pgx.Row) (*entities.Word, error) {
	var w entities.Word
	err := row.Scan(
		&w.ID,
		&w.Japanese,
		&w.Reading,
		&w.KanjiForm,
		&w.Korean,
		&w.Level,
		&w.Category,
		&w.ExampleSentence,
		&w.ExampleTranslation,
		&w.MemoTip,
		&w.IsUserAdded,
		&w.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func collectWords(rows pgx.Rows) ([]entities.Word, error) {
	defer rows.Close()

	var words []entities.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, *w)
	}

	return words, rows.Err()
}

// Create inserts a new word and fills its id and creation timestamp.
func (r *WordRepository) Create(ctx context.Context, w *entities.Word) error {
	query := `
		INSERT INTO words (japanese, hiragana, kanji, korean, level, category,
			example_sentence, example_korean, memo_tip, is_user_added)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
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
		w.IsUserAdded,
	).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return fmt.Errorf("create word: %w", err)
	}

	return nil
}

// GetByID retrieves a word by its id.
// Returns ErrWordNotFound if the word doesn't exist.
func (r *WordRepository) GetByID(ctx context.Context, id int64) (*entities.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE id = $1`

	w, err := scanWord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("get word: %w", err)
	}

	return w, nil
}

// GetByIDs retrieves words by id, ordered by id ascending.
// Ids that no longer exist are simply absent from the result.
func (r *WordRepository) GetByIDs(ctx context.Context, ids []int64) ([]entities.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE id = ANY($1) ORDER BY id`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get words by ids: %w", err)
	}

	return collectWords(rows)
}

// GetAll retrieves all words, user-added first, newest first within each group.
func (r *WordRepository) GetAll(ctx context.Context) ([]entities.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words ORDER BY is_user_added DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all words: %w", err)
	}

	return collectWords(rows)
}

// GetUserAdded retrieves only user-added words, newest first.
func (r *WordRepository) GetUserAdded(ctx context.Context) ([]entities.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE is_user_added ORDER BY id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get user added words: %w", err)
	}

	return collectWords(rows)
}

// Delete removes a user-added word. Corpus words cannot be deleted.
// Returns ErrWordNotFound when no user-added word has the given id.
func (r *WordRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM words WHERE id = $1 AND is_user_added`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrWordNotFound
	}

	return nil
}

// Count returns the total number of words.
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM words`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}

	return count, nil
}

// CountUserAdded returns the number of user-added words.
func (r *WordRepository) CountUserAdded(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM words WHERE is_user_added`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count user added words: %w", err)
	}

	return count, nil
}

// ListIDs returns the ids of all words with the given origin.
func (r *WordRepository) ListIDs(ctx context.Context, userAdded bool) ([]int64, error) {
	query := `SELECT id FROM words WHERE is_user_added = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, userAdded)
	if err != nil {
		return nil, fmt.Errorf("list word ids: %w", err)
	}

	return collectIDs(rows, "word id")
}

// ListUnlearnedIDs returns the ids of words with the given origin that
// have no learning record yet.
func (r *WordRepository) ListUnlearnedIDs(ctx context.Context, userAdded bool) ([]int64, error) {
	query := `
		SELECT w.id
		FROM words w
		LEFT JOIN learning_history lh
			ON lh.content_id = w.id AND lh.content_type = 'word'
		WHERE lh.id IS NULL AND w.is_user_added = $1
		ORDER BY w.id
	`

	rows, err := r.db.Query(ctx, query, userAdded)
	if err != nil {
		return nil, fmt.Errorf("list unlearned word ids: %w", err)
	}

	return collectIDs(rows, "unlearned word id")
}

func collectIDs(rows pgx.Rows, what string) ([]int64, error) {
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
