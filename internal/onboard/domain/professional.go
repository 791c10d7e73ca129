package domain

import "time"

type Professional struct {
	ID        int64
	Phone     string
	Name      string
	Email     *string
	Bio       *string
	Embedding []float32
	CreatedAt time.Time
}

// EmbeddingText is the text a professional's embedding is computed from.
func (p Professional) EmbeddingText() string {
	bio := ""
	if p.Bio != nil {
		bio = *p.Bio
	}
	return p.Name + ". " + bio
}

type Client struct {
	ID        int64
	Name      string
	Phone     *string
	CreatedAt time.Time
}

type ServiceKind string

const (
	ServiceKindSlot  ServiceKind = "SLOT"  // one client per booking
	ServiceKindGroup ServiceKind = "GROUP" // shared class
)

type Service struct {
	ID             int64
	ProfessionalID int64
	Name           string
	Kind           ServiceKind
	Price          *float64
	CreatedAt      time.Time
}
