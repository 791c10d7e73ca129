package sqlite

import (
	"context"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store/drivers/sqlite/gen"
	"github.com/fmalaspina/vallebot/pkg/embedx"
)

type professionalsRepo struct {
	q *gen.Queries
}

func (r *professionalsRepo) CreateProfessional(ctx context.Context, p domain.Professional) (domain.Professional, error) {
	id, err := r.q.CreateProfessional(ctx, gen.CreateProfessionalParams{
		Phone:     p.Phone,
		Name:      p.Name,
		Email:     mapOptionalString(p.Email),
		Bio:       mapOptionalString(p.Bio),
		Embedding: embedx.Encode(p.Embedding),
	})
	if err != nil {
		return domain.Professional{}, mapConstraint(err)
	}
	return r.GetProfessionalByID(ctx, id)
}

func (r *professionalsRepo) GetProfessionalByID(ctx context.Context, id int64) (domain.Professional, error) {
	row, err := r.q.GetProfessionalByID(ctx, id)
	if err != nil {
		return domain.Professional{}, mapNotFound(err)
	}
	return mapProfessional(row)
}

func (r *professionalsRepo) GetProfessionalByPhone(ctx context.Context, phone string) (domain.Professional, error) {
	row, err := r.q.GetProfessionalByPhone(ctx, phone)
	if err != nil {
		return domain.Professional{}, mapNotFound(err)
	}
	return mapProfessional(row)
}
