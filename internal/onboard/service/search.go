package service

import (
	"context"
	"errors"
	"strings"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/pkg/embedx"
	"github.com/fmalaspina/vallebot/pkg/retryx"
)

const DefaultSearchK = 5

type RelationshipMatch struct {
	State domain.RelationshipState
	Score float64
}

// SearchService ranks a professional's relationship summaries against a free
// text query.
type SearchService struct {
	Store      store.Store
	Embedder   embedx.Embedder
	Dimensions int
	Retry      retryx.Policy
}

func (s *SearchService) SearchRelationships(
	ctx context.Context,
	professionalID int64,
	query string,
	k int,
) ([]RelationshipMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if k <= 0 {
		k = DefaultSearchK
	}

	if _, err := s.Store.Professionals().GetProfessionalByID(ctx, professionalID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}

	states, err := s.Store.Relationships().ListRelationshipsByProfessional(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return []RelationshipMatch{}, nil
	}

	qvec, err := embedText(ctx, s.Embedder, s.Dimensions, s.Retry, query)
	if err != nil {
		return nil, err
	}

	corpus := make([][]float32, len(states))
	for i, st := range states {
		corpus[i] = st.Embedding
	}

	ranked := embedx.TopK(qvec, corpus, k)
	out := make([]RelationshipMatch, len(ranked))
	for i, r := range ranked {
		out[i] = RelationshipMatch{State: states[r.Index], Score: r.Score}
	}
	return out, nil
}
