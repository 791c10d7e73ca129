package sqlite

import (
	"context"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store/drivers/sqlite/gen"
)

type clientsRepo struct {
	q *gen.Queries
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	id, err := r.q.CreateClient(ctx, gen.CreateClientParams{
		Name:  c.Name,
		Phone: mapOptionalString(c.Phone),
	})
	if err != nil {
		return domain.Client{}, mapConstraint(err)
	}
	return r.GetClientByID(ctx, id)
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id int64) (domain.Client, error) {
	row, err := r.q.GetClientByID(ctx, id)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return mapClient(row), nil
}

type servicesRepo struct {
	q *gen.Queries
}

func (r *servicesRepo) CreateService(ctx context.Context, s domain.Service) (domain.Service, error) {
	kind := s.Kind
	if kind == "" {
		kind = domain.ServiceKindSlot
	}
	id, err := r.q.CreateService(ctx, gen.CreateServiceParams{
		ProfessionalID: s.ProfessionalID,
		Name:           s.Name,
		Kind:           string(kind),
		Price:          mapOptionalFloat64(s.Price),
	})
	if err != nil {
		return domain.Service{}, mapConstraint(err)
	}
	return r.GetServiceByID(ctx, id)
}

func (r *servicesRepo) GetServiceByID(ctx context.Context, id int64) (domain.Service, error) {
	row, err := r.q.GetServiceByID(ctx, id)
	if err != nil {
		return domain.Service{}, mapNotFound(err)
	}
	return mapService(row), nil
}
