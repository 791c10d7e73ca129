package service

import "errors"

var (
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrAlreadyProfessional = errors.New("phone already belongs to a professional")
	ErrInvitationExists    = errors.New("phone already has an invitation")

	// ErrEmbeddingUnavailable wraps any failure to obtain a valid embedding.
	// Operations that need one fail rather than persist a row without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrOnboardingContention is returned when concurrent writers kept
	// invalidating the invitation for longer than MergeRetries attempts.
	ErrOnboardingContention = errors.New("invitation kept changing concurrently")

	ErrProfessionalNotFound = errors.New("professional not found")
	ErrClientNotFound       = errors.New("client not found")

	// ErrRelationshipConflict is returned when the relationship upsert lost
	// the race twice in a row.
	ErrRelationshipConflict = errors.New("relationship state upsert conflict")

	ErrEmptyQuery = errors.New("search query is empty")
)
