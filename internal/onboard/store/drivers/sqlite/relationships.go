package sqlite

import (
	"context"
	"encoding/json"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/internal/onboard/store/drivers/sqlite/gen"
	"github.com/fmalaspina/vallebot/pkg/embedx"
)

type relationshipsRepo struct {
	q *gen.Queries
}

func (r *relationshipsRepo) GetRelationship(ctx context.Context, professionalID, clientID int64) (domain.RelationshipState, error) {
	row, err := r.q.GetRelationship(ctx, gen.GetRelationshipParams{
		ProfessionalID: professionalID,
		ClientID:       clientID,
	})
	if err != nil {
		return domain.RelationshipState{}, mapNotFound(err)
	}
	return mapRelationship(row)
}

func (r *relationshipsRepo) CreateRelationship(ctx context.Context, st domain.RelationshipState) (domain.RelationshipState, error) {
	state, err := json.Marshal(st.Snapshot)
	if err != nil {
		return domain.RelationshipState{}, err
	}

	if _, err := r.q.CreateRelationship(ctx, gen.CreateRelationshipParams{
		ProfessionalID:   st.ProfessionalID,
		ClientID:         st.ClientID,
		StateJson:        string(state),
		SummaryText:      st.Summary,
		SummaryEmbedding: embedx.Encode(st.Embedding),
		UpdatedAt:        st.UpdatedAt.UTC(),
	}); err != nil {
		return domain.RelationshipState{}, mapConstraint(err)
	}
	return r.GetRelationship(ctx, st.ProfessionalID, st.ClientID)
}

func (r *relationshipsRepo) UpdateRelationship(ctx context.Context, st domain.RelationshipState) error {
	state, err := json.Marshal(st.Snapshot)
	if err != nil {
		return err
	}

	n, err := r.q.UpdateRelationship(ctx, gen.UpdateRelationshipParams{
		StateJson:        string(state),
		SummaryText:      st.Summary,
		SummaryEmbedding: embedx.Encode(st.Embedding),
		UpdatedAt:        st.UpdatedAt.UTC(),
		ProfessionalID:   st.ProfessionalID,
		ClientID:         st.ClientID,
	})
	return requireOne(n, err, store.ErrNotFound)
}

func (r *relationshipsRepo) ListRelationshipsByProfessional(ctx context.Context, professionalID int64) ([]domain.RelationshipState, error) {
	rows, err := r.q.ListRelationshipsByProfessional(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.RelationshipState, 0, len(rows))
	for _, row := range rows {
		st, err := mapRelationship(row)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}
