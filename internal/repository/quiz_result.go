package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
)

// QuizResultRepository provides access to the append-only quiz score log.
type QuizResultRepository struct {
	db *pgxpool.Pool
}

// NewQuizResultRepository creates a new QuizResultRepository.
func NewQuizResultRepository(db *pgxpool.Pool) *QuizResultRepository {
	return &QuizResultRepository{db: db}
}

// Create appends one completed quiz session to the log.
func (r *QuizResultRepository) Create(ctx context.Context, result *entities.QuizResult) error {
	query := `
		INSERT INTO quiz_results (quiz_type, score, total_questions, details)
		VALUES ($1, $2, $3, $4)
		RETURNING id, completed_at
	`

	err := r.db.QueryRow(
		ctx, query,
		result.QuizType,
		result.Score,
		result.TotalQuestions,
		result.Details,
	).Scan(&result.ID, &result.CompletedAt)
	if err != nil {
		return fmt.Errorf("create quiz result: %w", err)
	}

	return nil
}

// ListRecent returns the most recent quiz results, newest first.
func (r *QuizResultRepository) ListRecent(ctx context.Context, limit int) ([]entities.QuizResult, error) {
	query := `
		SELECT id, quiz_type, score, total_questions, details, completed_at
		FROM quiz_results
		ORDER BY completed_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent quiz results: %w", err)
	}
	defer rows.Close()

	var results []entities.QuizResult
	for rows.Next() {
		var res entities.QuizResult
		err = rows.Scan(
			&res.ID,
			&res.QuizType,
			&res.Score,
			&res.TotalQuestions,
			&res.Details,
			&res.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		results = append(results, res)
	}

	return results, rows.Err()
}

// ScoreStats contains aggregate quiz score statistics.
type ScoreStats struct {
	Count int     // total completed quizzes
	Avg   float64 // mean score percentage, 0 when no quizzes
	Best  float64 // best score percentage, 0 when no quizzes
}

// Stats returns the score aggregates across all quiz results.
func (r *QuizResultRepository) Stats(ctx context.Context) (*ScoreStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG(score * 100.0 / total_questions), 0),
			COALESCE(MAX(score * 100.0 / total_questions), 0)
		FROM quiz_results
	`

	var stats ScoreStats
	err := r.db.QueryRow(ctx, query).Scan(&stats.Count, &stats.Avg, &stats.Best)
	if err != nil {
		return nil, fmt.Errorf("quiz result stats: %w", err)
	}

	return &stats, nil
}
