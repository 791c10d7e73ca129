package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/pkg/embedx"
	"github.com/fmalaspina/vallebot/pkg/retryx"
	"github.com/fmalaspina/vallebot/pkg/slogx"
)

// Materializer renders a snapshot to text, embeds it and upserts the pair's
// relationship state.
type Materializer struct {
	Store      store.Store
	Embedder   embedx.Embedder
	Dimensions int
	Retry      retryx.Policy
	Now        func() time.Time
}

// RenderSummary formats the fixed one-line summary of a relationship.
func RenderSummary(p domain.Professional, c domain.Client, snap domain.RelationshipSnapshot) string {
	next := "no upcoming appointment"
	if nb := snap.NextBooking; nb != nil {
		next = fmt.Sprintf("%s %s (service %d, %s)", nb.Date, nb.Time, nb.ServiceID, nb.Status)
	}

	history := "no history"
	if len(snap.RecentBookings) > 0 {
		parts := make([]string, len(snap.RecentBookings))
		for i, b := range snap.RecentBookings {
			parts[i] = b.Date + " " + string(b.Status)
		}
		history = strings.Join(parts, ", ")
	}

	return fmt.Sprintf(
		"Professional: %s. Client: %s. Next: %s. History: %s. Paid: %.2f. Estimated: %.2f. Pending balance: %.2f.",
		p.Name, c.Name, next, history, snap.TotalPaid, snap.EstimatedCost, snap.PendingBalance,
	)
}

// Materialize overwrites every derived column of the pair's row, creating it
// on first use. A concurrent first insert is absorbed by retrying once as an
// update; a second conflict returns ErrRelationshipConflict.
func (m *Materializer) Materialize(
	ctx context.Context,
	p domain.Professional,
	c domain.Client,
	snap domain.RelationshipSnapshot,
) (domain.RelationshipState, error) {
	log := slogx.FromContext(ctx)

	text := RenderSummary(p, c, snap)
	vec, err := embedText(ctx, m.Embedder, m.Dimensions, m.Retry, text)
	if err != nil {
		return domain.RelationshipState{}, err
	}

	st := domain.RelationshipState{
		ProfessionalID: p.ID,
		ClientID:       c.ID,
		Snapshot:       snap,
		Summary:        text,
		Embedding:      vec,
		UpdatedAt:      m.now(),
	}
	repo := m.Store.Relationships()

	for attempt := 0; attempt < 2; attempt++ {
		existing, err := repo.GetRelationship(ctx, p.ID, c.ID)
		switch {
		case err == nil:
			st.ID, st.CreatedAt = existing.ID, existing.CreatedAt
			if err := repo.UpdateRelationship(ctx, st); err != nil {
				return domain.RelationshipState{}, fmt.Errorf("update relationship: %w", err)
			}
			return st, nil

		case errors.Is(err, store.ErrNotFound):
			created, err := repo.CreateRelationship(ctx, st)
			if errors.Is(err, store.ErrAlreadyExists) {
				log.Debug("relationship inserted concurrently, retrying as update")
				continue
			}
			if err != nil {
				return domain.RelationshipState{}, fmt.Errorf("create relationship: %w", err)
			}
			return created, nil

		default:
			return domain.RelationshipState{}, fmt.Errorf("read relationship: %w", err)
		}
	}

	log.Error("relationship upsert conflicted twice")
	return domain.RelationshipState{}, ErrRelationshipConflict
}

func (m *Materializer) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}
