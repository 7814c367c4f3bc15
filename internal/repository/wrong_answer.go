package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
)

// WrongAnswerRepository manages the wrong-answer ledger.
type WrongAnswerRepository struct {
	db *pgxpool.Pool
}

// NewWrongAnswerRepository creates a new WrongAnswerRepository.
func NewWrongAnswerRepository(db *pgxpool.Pool) *WrongAnswerRepository {
	return &WrongAnswerRepository{db: db}
}

// RecordMiss upserts a ledger entry for an incorrect answer. A new entry
// starts with a wrong count of 1; a repeat miss increments the counter,
// refreshes the timestamp and un-resolves the entry.
func (r *WrongAnswerRepository) RecordMiss(ctx context.Context, questionType string, ref entities.ContentRef, at time.Time) error {
	query := `
		INSERT INTO wrong_answers (question_type, content_type, content_id, wrong_count, last_wrong_at, resolved)
		VALUES ($1, $2, $3, 1, $4, FALSE)
		ON CONFLICT (question_type, content_type, content_id)
		DO UPDATE SET
			wrong_count = wrong_answers.wrong_count + 1,
			last_wrong_at = excluded.last_wrong_at,
			resolved = FALSE
	`

	_, err := r.db.Exec(ctx, query, questionType, ref.Type, ref.ID, at)
	if err != nil {
		return fmt.Errorf("record miss: %w", err)
	}

	return nil
}

// Resolve marks a ledger entry as resolved. Resolving an already resolved
// or missing entry is a no-op.
func (r *WrongAnswerRepository) Resolve(ctx context.Context, id int64) error {
	query := `UPDATE wrong_answers SET resolved = TRUE WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("resolve wrong answer: %w", err)
	}

	return nil
}

// ListUnresolvedWords returns unresolved word entries joined with the
// current word fields, worst first. Entries whose word was deleted are
// dropped by the join.
func (r *WrongAnswerRepository) ListUnresolvedWords(ctx context.Context) ([]entities.WrongWord, error) {
	query := `
		SELECT wa.id, wa.question_type, wa.content_id, wa.wrong_count,
		       wa.last_wrong_at, w.japanese, w.hiragana, w.korean, w.memo_tip
		FROM wrong_answers wa
		JOIN words w ON w.id = wa.content_id
		WHERE wa.content_type = 'word' AND NOT wa.resolved
		ORDER BY wa.wrong_count DESC, wa.last_wrong_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list unresolved words: %w", err)
	}
	defer rows.Close()

	var entries []entities.WrongWord
	for rows.Next() {
		var e entities.WrongWord
		err = rows.Scan(
			&e.ID,
			&e.QuestionType,
			&e.Content.ID,
			&e.WrongCount,
			&e.LastWrongAt,
			&e.Japanese,
			&e.Reading,
			&e.Korean,
			&e.MemoTip,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wrong word: %w", err)
		}
		e.Content.Type = entities.ContentWord
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ListUnresolvedGrammars returns unresolved grammar entries joined with
// the current grammar fields, worst first.
func (r *WrongAnswerRepository) ListUnresolvedGrammars(ctx context.Context) ([]entities.WrongGrammar, error) {
	query := `
		SELECT wa.id, wa.question_type, wa.content_id, wa.wrong_count,
		       wa.last_wrong_at, g.pattern, g.meaning, g.explanation
		FROM wrong_answers wa
		JOIN grammars g ON g.id = wa.content_id
		WHERE wa.content_type = 'grammar' AND NOT wa.resolved
		ORDER BY wa.wrong_count DESC, wa.last_wrong_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list unresolved grammars: %w", err)
	}
	defer rows.Close()

	var entries []entities.WrongGrammar
	for rows.Next() {
		var e entities.WrongGrammar
		err = rows.Scan(
			&e.ID,
			&e.QuestionType,
			&e.Content.ID,
			&e.WrongCount,
			&e.LastWrongAt,
			&e.Pattern,
			&e.Meaning,
			&e.Explanation,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wrong grammar: %w", err)
		}
		e.Content.Type = entities.ContentGrammar
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
