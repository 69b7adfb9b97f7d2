package entity

import "time"

// JobExperience is a past position held by a job candidate.
type JobExperience struct {
	ID            int64
	CandidateID   int64
	WorkplaceName string
	Position      string
	StartDate     time.Time
	EndDate       *time.Time // nil while the position is still held
	CreatedAt     time.Time
}
