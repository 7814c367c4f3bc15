package entities

import "time"

// DailyAssignment is one row of a day's fixed study set. The set for a
// given date is written once and re-read on later calls, never re-rolled.
type DailyAssignment struct {
	ID        int64
	Date      time.Time // UTC civil date
	Content   ContentRef
	Completed bool
	CreatedAt time.Time
}
