package store

import (
	"context"
	"errors"
	"time"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict is returned by conditional writes whose expected version no
	// longer matches the stored row.
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface. Sub-repositories are exposed as
// methods so a Tx-scoped store can hand out the same repos bound to the
// transaction.
type Store interface {
	Invitations() Invitations
	Professionals() Professionals
	Clients() Clients
	Services() Services
	Bookings() Bookings
	Payments() Payments
	Relationships() Relationships
	Messages() Messages

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST call Commit() or
	// Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// PurgeProfessional removes a professional and everything hanging off it
	// in dependency order: relationship states, payments, bookings, services,
	// then clears invitation and message links before deleting the row.
	PurgeProfessional(ctx context.Context, professionalID int64) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Invitations interface {
	// CreateInvitation returns ErrAlreadyExists when the phone already has one.
	CreateInvitation(ctx context.Context, inv domain.Invitation) (domain.Invitation, error)

	GetInvitationByPhone(ctx context.Context, phone string) (domain.Invitation, error)

	// UpdateInvitationProgress stores the merged fields of an open invitation
	// if its version still equals expectedVersion, bumping the version.
	// Returns ErrConflict otherwise.
	UpdateInvitationProgress(
		ctx context.Context,
		phone string,
		expectedVersion int64,
		partial domain.ProfessionalFields,
		missing []domain.Field,
	) error

	// ConsumeInvitation marks an open invitation consumed under the same
	// version guard as UpdateInvitationProgress.
	ConsumeInvitation(
		ctx context.Context,
		phone string,
		expectedVersion int64,
		professionalID int64,
		at time.Time,
	) error

	// ListInvitations returns invitations newest first.
	ListInvitations(ctx context.Context, includeConsumed bool) ([]domain.Invitation, error)
}

type Professionals interface {
	// CreateProfessional returns ErrAlreadyExists on a duplicate phone.
	CreateProfessional(ctx context.Context, p domain.Professional) (domain.Professional, error)
	GetProfessionalByID(ctx context.Context, id int64) (domain.Professional, error)
	GetProfessionalByPhone(ctx context.Context, phone string) (domain.Professional, error)
}

type Clients interface {
	CreateClient(ctx context.Context, c domain.Client) (domain.Client, error)
	GetClientByID(ctx context.Context, id int64) (domain.Client, error)
}

type Services interface {
	CreateService(ctx context.Context, s domain.Service) (domain.Service, error)
	GetServiceByID(ctx context.Context, id int64) (domain.Service, error)
}

type Bookings interface {
	CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) error

	// NextUpcomingBooking returns the earliest booking for the pair whose
	// status is one of domain.UpcomingStatuses, or ErrNotFound.
	NextUpcomingBooking(ctx context.Context, professionalID, clientID int64) (domain.Booking, error)

	// RecentBookings returns up to limit bookings, latest first.
	RecentBookings(ctx context.Context, professionalID, clientID int64, limit int) ([]domain.Booking, error)

	// FirstServiceID returns the service of the first booking recorded for the
	// pair, or ErrNotFound.
	FirstServiceID(ctx context.Context, professionalID, clientID int64) (int64, error)
}

type Payments interface {
	CreatePayment(ctx context.Context, p domain.Payment) (domain.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error

	// SumVerifiedPayments returns 0 when the pair has no verified payment.
	SumVerifiedPayments(ctx context.Context, professionalID, clientID int64) (float64, error)
}

type Relationships interface {
	GetRelationship(ctx context.Context, professionalID, clientID int64) (domain.RelationshipState, error)

	// CreateRelationship returns ErrAlreadyExists if the pair already has a row.
	CreateRelationship(ctx context.Context, st domain.RelationshipState) (domain.RelationshipState, error)

	// UpdateRelationship overwrites every derived column of the pair's row.
	UpdateRelationship(ctx context.Context, st domain.RelationshipState) error

	ListRelationshipsByProfessional(ctx context.Context, professionalID int64) ([]domain.RelationshipState, error)
}

type Messages interface {
	AppendMessage(ctx context.Context, m domain.Message) error

	// ListMessagesBySender returns the latest limit messages for a sender,
	// newest first.
	ListMessagesBySender(ctx context.Context, rawSender string, limit int) ([]domain.Message, error)

	// DeleteMessagesBefore removes messages logged before the cutoff and
	// reports how many were deleted.
	DeleteMessagesBefore(ctx context.Context, before time.Time) (int64, error)
}
