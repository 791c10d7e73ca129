package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/internal/onboard/store/drivers/sqlite/gen"
	"github.com/fmalaspina/vallebot/pkg/embedx"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// DSN builds a modernc DSN for a database file with foreign keys on, WAL
// journaling, a busy timeout and write transactions that take the write lock
// at BEGIN.
func DSN(path string) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "busy_timeout(5000)")
	params.Set("_txlock", "immediate")
	params.Set("_time_format", "sqlite")
	return "file:" + path + "?" + params.Encode()
}

// NewStore opens dsn. A bare file path is expanded with DSN.
func NewStore(dsn string) (*Store, error) {
	if !strings.HasPrefix(dsn, "file:") {
		dsn = DSN(dsn)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) PurgeProfessional(ctx context.Context, professionalID int64) error {
	return s.WithTx(ctx, func(tx store.Tx) error {
		return tx.PurgeProfessional(ctx, professionalID)
	})
}

func (s *Store) Invitations() store.Invitations     { return &invitationsRepo{q: s.q} }
func (s *Store) Professionals() store.Professionals { return &professionalsRepo{q: s.q} }
func (s *Store) Clients() store.Clients             { return &clientsRepo{q: s.q} }
func (s *Store) Services() store.Services           { return &servicesRepo{q: s.q} }
func (s *Store) Bookings() store.Bookings           { return &bookingsRepo{q: s.q} }
func (s *Store) Payments() store.Payments           { return &paymentsRepo{q: s.q} }
func (s *Store) Relationships() store.Relationships { return &relationshipsRepo{q: s.q} }
func (s *Store) Messages() store.Messages           { return &messagesRepo{q: s.q} }

// purgeProfessional deletes in child-to-parent order so no foreign key is
// ever left dangling. q must be bound to a transaction.
func purgeProfessional(ctx context.Context, q *gen.Queries, id int64) error {
	ref := sql.NullInt64{Int64: id, Valid: true}

	steps := []struct {
		name string
		run  func() error
	}{
		{"relationship_states", func() error { return q.DeleteRelationshipsByProfessional(ctx, id) }},
		{"payments", func() error { return q.DeletePaymentsByProfessional(ctx, id) }},
		{"bookings", func() error { return q.DeleteBookingsByProfessional(ctx, id) }},
		{"services", func() error { return q.DeleteServicesByProfessional(ctx, id) }},
		{"invitations", func() error { return q.UnlinkInvitationsFromProfessional(ctx, ref) }},
		{"messages", func() error { return q.UnlinkMessagesFromProfessional(ctx, ref) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("purge %s: %w", step.name, err)
		}
	}

	n, err := q.DeleteProfessional(ctx, id)
	if err != nil {
		return fmt.Errorf("purge professional: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns unique and primary key violations into
// store.ErrAlreadyExists.
func mapConstraint(err error) error {
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		}
	}
	return err
}

// requireOne maps a zero row count from an :execrows query to notFound.
func requireOne(n int64, err error, notFound error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func mapNullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

func mapNullInt64Ptr(n sql.NullInt64) *int64 {
	if n.Valid {
		val := n.Int64
		return &val
	}
	return nil
}

func mapOptionalInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func mapNullFloat64Ptr(n sql.NullFloat64) *float64 {
	if n.Valid {
		val := n.Float64
		return &val
	}
	return nil
}

func mapOptionalFloat64(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time
		return &val
	}
	return nil
}

func mapInvitation(row gen.Invitation) (domain.Invitation, error) {
	inv := domain.Invitation{
		ID:             row.ID,
		Phone:          row.Phone,
		Consumed:       row.Consumed,
		Version:        row.Version,
		ProfessionalID: mapNullInt64Ptr(row.ProfessionalID),
		CreatedAt:      row.CreatedAt,
		ConsumedAt:     mapNullTimePtr(row.ConsumedAt),
	}
	if err := json.Unmarshal([]byte(row.PartialData), &inv.Partial); err != nil {
		return domain.Invitation{}, fmt.Errorf("decode partial_data for %d: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.MissingFields), &inv.Missing); err != nil {
		return domain.Invitation{}, fmt.Errorf("decode missing_fields for %d: %w", row.ID, err)
	}
	if inv.Missing == nil {
		inv.Missing = []domain.Field{}
	}
	return inv, nil
}

func encodeProgress(partial domain.ProfessionalFields, missing []domain.Field) (string, string, error) {
	if missing == nil {
		missing = []domain.Field{}
	}
	p, err := json.Marshal(partial)
	if err != nil {
		return "", "", err
	}
	m, err := json.Marshal(missing)
	if err != nil {
		return "", "", err
	}
	return string(p), string(m), nil
}

func mapProfessional(row gen.Professional) (domain.Professional, error) {
	vec, err := embedx.Decode(row.Embedding)
	if err != nil {
		return domain.Professional{}, fmt.Errorf("decode embedding for professional %d: %w", row.ID, err)
	}
	return domain.Professional{
		ID:        row.ID,
		Phone:     row.Phone,
		Name:      row.Name,
		Email:     mapNullStringPtr(row.Email),
		Bio:       mapNullStringPtr(row.Bio),
		Embedding: vec,
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapClient(row gen.Client) domain.Client {
	return domain.Client{
		ID:        row.ID,
		Name:      row.Name,
		Phone:     mapNullStringPtr(row.Phone),
		CreatedAt: row.CreatedAt,
	}
}

func mapService(row gen.Service) domain.Service {
	return domain.Service{
		ID:             row.ID,
		ProfessionalID: row.ProfessionalID,
		Name:           row.Name,
		Kind:           domain.ServiceKind(row.Kind),
		Price:          mapNullFloat64Ptr(row.Price),
		CreatedAt:      row.CreatedAt,
	}
}

func mapBooking(row gen.Booking) domain.Booking {
	return domain.Booking{
		ID:             row.ID,
		ProfessionalID: row.ProfessionalID,
		ClientID:       row.ClientID,
		ServiceID:      row.ServiceID,
		Date:           row.Date,
		Time:           row.Time,
		Status:         domain.BookingStatus(row.Status),
		CreatedAt:      row.CreatedAt,
	}
}

func mapPayment(row gen.Payment) domain.Payment {
	return domain.Payment{
		ID:             row.ID,
		ProfessionalID: row.ProfessionalID,
		ClientID:       row.ClientID,
		BookingID:      mapNullInt64Ptr(row.BookingID),
		Amount:         row.Amount,
		Status:         domain.PaymentStatus(row.Status),
		CreatedAt:      row.CreatedAt,
	}
}

func mapRelationship(row gen.RelationshipState) (domain.RelationshipState, error) {
	st := domain.RelationshipState{
		ID:             row.ID,
		ProfessionalID: row.ProfessionalID,
		ClientID:       row.ClientID,
		Summary:        row.SummaryText,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(row.StateJson), &st.Snapshot); err != nil {
		return domain.RelationshipState{}, fmt.Errorf("decode state_json for %d: %w", row.ID, err)
	}
	vec, err := embedx.Decode(row.SummaryEmbedding)
	if err != nil {
		return domain.RelationshipState{}, fmt.Errorf("decode summary_embedding for %d: %w", row.ID, err)
	}
	st.Embedding = vec
	return st, nil
}

func mapMessage(row gen.Message) domain.Message {
	return domain.Message{
		ID:             row.ID,
		Direction:      domain.Direction(row.Direction),
		RawSender:      row.RawSender,
		ProfessionalID: mapNullInt64Ptr(row.ProfessionalID),
		Text:           row.Text,
		CreatedAt:      row.CreatedAt,
	}
}
