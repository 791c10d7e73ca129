package domain

import "time"

// Invitation tracks onboarding progress for one phone number. Consumed only
// ever moves from false to true.
type Invitation struct {
	ID             int64
	Phone          string
	Consumed       bool
	Partial        ProfessionalFields
	Missing        []Field
	Version        int64 // bumped on every write, used for optimistic concurrency
	ProfessionalID *int64
	CreatedAt      time.Time
	ConsumedAt     *time.Time
}
