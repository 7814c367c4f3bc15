package entities

import "time"

// LearningRecord links a piece of content to its learning progress.
// At most one record exists per content reference; marking content learned
// again refreshes the timestamp and increments the review counter.
type LearningRecord struct {
	ID          int64
	Content     ContentRef
	LearnedAt   time.Time
	ReviewCount int // times the item was re-marked learned after the first

	// Placeholders carried in the schema for future scheduling; never
	// populated with non-default values.
	NextReview   *time.Time
	MasteryLevel int
}
