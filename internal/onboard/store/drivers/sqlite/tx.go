package sqlite

import (
	"context"
	"database/sql"

	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/internal/onboard/store/drivers/sqlite/gen"
)

type txStore struct {
	tx *sql.Tx
	q  *gen.Queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{
		tx: tx,
		q:  gen.New(tx),
	}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // the outer DB stays open

func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) PurgeProfessional(ctx context.Context, professionalID int64) error {
	return purgeProfessional(ctx, t.q, professionalID)
}

func (t *txStore) Invitations() store.Invitations     { return &invitationsRepo{q: t.q} }
func (t *txStore) Professionals() store.Professionals { return &professionalsRepo{q: t.q} }
func (t *txStore) Clients() store.Clients             { return &clientsRepo{q: t.q} }
func (t *txStore) Services() store.Services           { return &servicesRepo{q: t.q} }
func (t *txStore) Bookings() store.Bookings           { return &bookingsRepo{q: t.q} }
func (t *txStore) Payments() store.Payments           { return &paymentsRepo{q: t.q} }
func (t *txStore) Relationships() store.Relationships { return &relationshipsRepo{q: t.q} }
func (t *txStore) Messages() store.Messages           { return &messagesRepo{q: t.q} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
