package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
	"github.com/soominpark/nihongo-tracker/internal/repository"
)

// AttendanceRepo persists per-day attendance rows.
type AttendanceRepo interface {
	EnsureDate(ctx context.Context, date time.Time) error
	AddCounters(ctx context.Context, date time.Time, wordsLearned, quizTaken, studyMinutes int) error
	ListDates(ctx context.Context) ([]time.Time, error)
	Count(ctx context.Context) (int, error)
	History(ctx context.Context, days int) ([]entities.Attendance, error)
}

// QuizResultRepo persists the quiz score log.
type QuizResultRepo interface {
	Create(ctx context.Context, result *entities.QuizResult) error
	ListRecent(ctx context.Context, limit int) ([]entities.QuizResult, error)
	Stats(ctx context.Context) (*repository.ScoreStats, error)
}

// LearnedCountRepo counts distinct learned content.
type LearnedCountRepo interface {
	CountLearned(ctx context.Context, contentType entities.ContentType) (int, error)
}

// WordCountRepo counts the vocabulary store.
type WordCountRepo interface {
	Count(ctx context.Context) (int, error)
	CountUserAdded(ctx context.Context) (int, error)
}

// StatsAggregator derives dashboard statistics from the progress store
// and owns the attendance write path.
type StatsAggregator struct {
	attendance AttendanceRepo
	results    QuizResultRepo
	learning   LearnedCountRepo
	words      WordCountRepo

	now func() time.Time
}

// NewStatsAggregator creates a new StatsAggregator.
func NewStatsAggregator(
	attendance AttendanceRepo,
	results QuizResultRepo,
	learning LearnedCountRepo,
	words WordCountRepo,
) *StatsAggregator {
	return &StatsAggregator{
		attendance: attendance,
		results:    results,
		learning:   learning,
		words:      words,
		now:        time.Now,
	}
}

// Statistics assembles the learning dashboard summary.
func (s *StatsAggregator) Statistics(ctx context.Context) (*entities.Statistics, error) {
	learned, err := s.learning.CountLearned(ctx, entities.ContentWord)
	if err != nil {
		return nil, err
	}

	total, err := s.words.Count(ctx)
	if err != nil {
		return nil, err
	}

	userAdded, err := s.words.CountUserAdded(ctx)
	if err != nil {
		return nil, err
	}

	scores, err := s.results.Stats(ctx)
	if err != nil {
		return nil, err
	}

	studyDays, err := s.attendance.Count(ctx)
	if err != nil {
		return nil, err
	}

	dates, err := s.attendance.ListDates(ctx)
	if err != nil {
		return nil, err
	}

	return &entities.Statistics{
		LearnedWords:   learned,
		TotalWords:     total,
		UserAddedWords: userAdded,
		QuizCount:      scores.Count,
		AvgScore:       roundScore(scores.Avg),
		BestScore:      roundScore(scores.Best),
		TotalStudyDays: studyDays,
		Streak:         streak(dates, civilDate(s.now())),
	}, nil
}

// streak counts consecutive attendance days walking backward from today.
// Dates arrive newest first; the chain breaks on the first gap, and a
// missing row for today itself means the streak is zero.
func streak(dates []time.Time, today time.Time) int {
	count := 0
	for i, d := range dates {
		expected := today.AddDate(0, 0, -i)
		if !civilDate(d).Equal(expected) {
			break
		}
		count++
	}
	return count
}

func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

// CheckInToday creates today's attendance row if it doesn't exist.
// Called once per session before any counter update or streak read.
func (s *StatsAggregator) CheckInToday(ctx context.Context) error {
	return s.attendance.EnsureDate(ctx, civilDate(s.now()))
}

// UpdateAttendance additively updates today's activity counters. When
// today's row is missing the update silently does nothing; ensuring the
// row exists first is the caller's precondition.
func (s *StatsAggregator) UpdateAttendance(ctx context.Context, wordsLearned, quizTaken, studyMinutes int) error {
	return s.attendance.AddCounters(ctx, civilDate(s.now()), wordsLearned, quizTaken, studyMinutes)
}

// SaveQuizResult appends one completed quiz session to the score log.
// Details, when given, are stored as serialized JSON.
func (s *StatsAggregator) SaveQuizResult(ctx context.Context, quizType entities.QuizType, score, total int, details any) error {
	result := &entities.QuizResult{
		QuizType:       quizType,
		Score:          score,
		TotalQuestions: total,
	}

	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshal quiz details: %w", err)
		}
		result.Details = string(data)
	}

	return s.results.Create(ctx, result)
}

// RecentQuizResults returns the latest quiz results, newest first.
func (s *StatsAggregator) RecentQuizResults(ctx context.Context, limit int) ([]entities.QuizResult, error) {
	return s.results.ListRecent(ctx, limit)
}

// AttendanceHistory returns the most recent attendance rows, newest first.
func (s *StatsAggregator) AttendanceHistory(ctx context.Context, days int) ([]entities.Attendance, error) {
	return s.attendance.History(ctx, days)
}
