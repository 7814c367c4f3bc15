package entities

import "time"

// Attendance is the per-day activity record. One row per calendar date,
// created on first visit; counters are incremented throughout the day.
type Attendance struct {
	ID           int64
	Date         time.Time // UTC civil date, unique
	StudyMinutes int
	WordsLearned int
	QuizTaken    int
	CreatedAt    time.Time
}

// Statistics is the aggregated dashboard summary derived from the
// progress store.
type Statistics struct {
	LearnedWords   int     // distinct words with a learning record
	TotalWords     int
	UserAddedWords int
	QuizCount      int
	AvgScore       float64 // mean percentage across all quiz results
	BestScore      float64 // max percentage across all quiz results
	TotalStudyDays int     // attendance rows, not necessarily contiguous
	Streak         int     // consecutive attendance days ending today
}
