package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
)

// AttendanceRepository manages per-day attendance rows.
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// EnsureDate creates the attendance row for a date if it doesn't exist.
// Safe to call any number of times per day.
func (r *AttendanceRepository) EnsureDate(ctx context.Context, date time.Time) error {
	query := `
		INSERT INTO attendance (date)
		VALUES ($1)
		ON CONFLICT (date) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, date)
	if err != nil {
		return fmt.Errorf("ensure attendance: %w", err)
	}

	return nil
}

// AddCounters additively updates a date's counters. A missing row makes
// this a no-op; callers ensure the row exists first.
func (r *AttendanceRepository) AddCounters(ctx context.Context, date time.Time, wordsLearned, quizTaken, studyMinutes int) error {
	query := `
		UPDATE attendance
		SET words_learned = words_learned + $1,
		    quiz_taken = quiz_taken + $2,
		    study_minutes = study_minutes + $3
		WHERE date = $4
	`

	_, err := r.db.Exec(ctx, query, wordsLearned, quizTaken, studyMinutes, date)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}

	return nil
}

// ListDates returns all attendance dates, newest first.
func (r *AttendanceRepository) ListDates(ctx context.Context) ([]time.Time, error) {
	query := `SELECT date FROM attendance ORDER BY date DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list attendance dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err = rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan attendance date: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}

// Count returns the total number of attendance days.
func (r *AttendanceRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM attendance`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}

	return count, nil
}

// History returns the most recent attendance rows, newest first.
func (r *AttendanceRepository) History(ctx context.Context, days int) ([]entities.Attendance, error) {
	query := `
		SELECT id, date, study_minutes, words_learned, quiz_taken, created_at
		FROM attendance
		ORDER BY date DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("attendance history: %w", err)
	}
	defer rows.Close()

	var records []entities.Attendance
	for rows.Next() {
		var a entities.Attendance
		err = rows.Scan(
			&a.ID,
			&a.Date,
			&a.StudyMinutes,
			&a.WordsLearned,
			&a.QuizTaken,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}
