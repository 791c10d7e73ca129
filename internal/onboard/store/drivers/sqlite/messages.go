package sqlite

import (
	"context"
	"time"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store/drivers/sqlite/gen"
)

type messagesRepo struct {
	q *gen.Queries
}

func (r *messagesRepo) AppendMessage(ctx context.Context, m domain.Message) error {
	return r.q.AppendMessage(ctx, gen.AppendMessageParams{
		Direction:      string(m.Direction),
		RawSender:      m.RawSender,
		ProfessionalID: mapOptionalInt64(m.ProfessionalID),
		Text:           m.Text,
	})
}

func (r *messagesRepo) ListMessagesBySender(ctx context.Context, rawSender string, limit int) ([]domain.Message, error) {
	rows, err := r.q.ListMessagesBySender(ctx, gen.ListMessagesBySenderParams{
		RawSender: rawSender,
		Limit:     int64(limit),
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMessage(row))
	}
	return out, nil
}

func (r *messagesRepo) DeleteMessagesBefore(ctx context.Context, before time.Time) (int64, error) {
	return r.q.DeleteMessagesBefore(ctx, before.UTC())
}
