package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
)

// LearningRepository manages the learning history ledger.
// One record per content reference, upserted.
type LearningRepository struct {
	db *pgxpool.Pool
}

// NewLearningRepository creates a new LearningRepository.
func NewLearningRepository(db *pgxpool.Pool) *LearningRepository {
	return &LearningRepository{db: db}
}

// MarkLearned records that a piece of content was studied. The first mark
// creates the record with a zero review count; repeat marks refresh the
// timestamp and increment the counter.
func (r *LearningRepository) MarkLearned(ctx context.Context, ref entities.ContentRef, at time.Time) error {
	query := `
		INSERT INTO learning_history (content_type, content_id, learned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (content_type, content_id)
		DO UPDATE SET
			review_count = learning_history.review_count + 1,
			learned_at = excluded.learned_at
	`

	_, err := r.db.Exec(ctx, query, ref.Type, ref.ID, at)
	if err != nil {
		return fmt.Errorf("mark learned: %w", err)
	}

	return nil
}

// ListLearnedWordIDs returns the ids of all words with a learning record.
func (r *LearningRepository) ListLearnedWordIDs(ctx context.Context) ([]int64, error) {
	query := `
		SELECT DISTINCT content_id
		FROM learning_history
		WHERE content_type = 'word'
		ORDER BY content_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list learned word ids: %w", err)
	}

	return collectIDs(rows, "learned word id")
}

// CountLearned returns the number of distinct learned content ids of a kind.
func (r *LearningRepository) CountLearned(ctx context.Context, contentType entities.ContentType) (int, error) {
	query := `
		SELECT COUNT(DISTINCT content_id)
		FROM learning_history
		WHERE content_type = $1
	`

	var count int
	err := r.db.QueryRow(ctx, query, contentType).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count learned: %w", err)
	}

	return count, nil
}
