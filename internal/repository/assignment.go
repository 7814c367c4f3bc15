package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
)

// AssignmentRepository manages the per-date daily study sets.
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListForDate returns the content ids assigned for a date, ordered by id.
func (r *AssignmentRepository) ListForDate(ctx context.Context, date time.Time, contentType entities.ContentType) ([]int64, error) {
	query := `
		SELECT content_id
		FROM daily_assignment
		WHERE date = $1 AND content_type = $2
		ORDER BY content_id
	`

	rows, err := r.db.Query(ctx, query, date, contentType)
	if err != nil {
		return nil, fmt.Errorf("list assignment for date: %w", err)
	}

	return collectIDs(rows, "assignment content id")
}

// Store persists a freshly selected assignment for a date and returns the
// canonical stored set. The check-then-insert is serialized with an
// advisory transaction lock keyed on (date, content type), so two
// concurrent first-of-the-day callers cannot write divergent sets: the
// loser of the race re-reads and returns the winner's rows. The unique
// index on (date, content_type, content_id) backstops the lock.
func (r *AssignmentRepository) Store(ctx context.Context, date time.Time, contentType entities.ContentType, ids []int64) ([]int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin assignment tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, assignmentLockKey(date, contentType)); err != nil {
		return nil, fmt.Errorf("lock assignment: %w", err)
	}

	checkQuery := `
		SELECT content_id
		FROM daily_assignment
		WHERE date = $1 AND content_type = $2
		ORDER BY content_id
	`
	rows, err := tx.Query(ctx, checkQuery, date, contentType)
	if err != nil {
		return nil, fmt.Errorf("recheck assignment: %w", err)
	}
	existing, err := collectIDs(rows, "assignment content id")
	if err != nil {
		return nil, err
	}

	if len(existing) > 0 {
		// Lost the race; the stored set wins.
		if err = tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("commit assignment tx: %w", err)
		}
		return existing, nil
	}

	insertQuery := `
		INSERT INTO daily_assignment (date, content_type, content_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (date, content_type, content_id) DO NOTHING
	`
	for _, id := range ids {
		if _, err = tx.Exec(ctx, insertQuery, date, contentType, id); err != nil {
			return nil, fmt.Errorf("store assignment: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit assignment tx: %w", err)
	}

	return sortedIDs(ids), nil
}

func assignmentLockKey(date time.Time, contentType entities.ContentType) int64 {
	h := fnv.New64a()
	h.Write([]byte(date.Format("2006-01-02")))
	h.Write([]byte(contentType))
	return int64(h.Sum64())
}

func sortedIDs(ids []int64) []int64 {
	out := make([]int64, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
