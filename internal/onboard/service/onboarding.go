package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/pkg/embedx"
	"github.com/fmalaspina/vallebot/pkg/retryx"
	"github.com/fmalaspina/vallebot/pkg/slogx"
)

const DefaultMergeRetries = 5

const (
	replyNotInvited      = "This number has not been invited to register. Please contact the administrator."
	replyConsumedNoOwner = "Your invitation was already used but no professional record exists for this number. Please contact the administrator."
	replyMalformed       = "We could not read your message. Please send it again as plain text."
)

var fieldExamples = map[domain.Field]string{
	domain.FieldName:  "Name: Ana López",
	domain.FieldEmail: "Email: ana@example.com",
	domain.FieldBio:   "Bio: Psychologist, 10 years of experience",
}

// OnboardingService turns inbound messages from invited phones into
// professional records. The onboarding state is derived from the invitation
// and professional rows on every message; nothing else is persisted.
type OnboardingService struct {
	Store      store.Store
	Extractor  *Extractor
	Embedder   embedx.Embedder
	Dimensions int
	Retry      retryx.Policy

	// MergeRetries bounds how often a message re-reads the invitation after
	// losing an optimistic-concurrency race.
	MergeRetries int

	Now func() time.Time
}

// HandleMessage applies one inbound message and returns the reply for the
// sender. Errors are reserved for infrastructure failures; every business
// outcome is a Reply.
func (s *OnboardingService) HandleMessage(ctx context.Context, msg domain.InboundMessage) (domain.Reply, error) {
	phone := NormalizePhone(msg.Phone)
	ctx = slogx.With(ctx, slogx.Phone(phone))
	log := slogx.FromContext(ctx)

	if phone == "" || strings.TrimSpace(msg.Text) == "" {
		log.Warn("inbound message without sender or text")
		return MalformedReply(), nil
	}

	log.Info("inbound message", slog.Int("text_len", len(msg.Text)))
	s.appendMessage(ctx, domain.DirectionIn, phone, nil, msg.Text)

	reply, proID, err := s.handle(ctx, phone, msg.Text)
	if err != nil {
		return domain.Reply{}, err
	}

	log.Info("outbound reply",
		slog.String("status", string(reply.Status)),
		slog.Any("missing", reply.Missing),
	)
	s.appendMessage(ctx, domain.DirectionOut, phone, proID, reply.Reply)
	return reply, nil
}

// MalformedReply is the answer to a payload that carries no usable message.
func MalformedReply() domain.Reply {
	return domain.Reply{Status: domain.ReplyError, Reply: replyMalformed}
}

func (s *OnboardingService) handle(ctx context.Context, phone, text string) (domain.Reply, *int64, error) {
	log := slogx.FromContext(ctx)

	var (
		fields    domain.ProfessionalFields
		extracted bool
		embedFor  string
		vec       []float32
	)

	for attempt := range s.mergeRetries() {
		pro, err := s.Store.Professionals().GetProfessionalByPhone(ctx, phone)
		switch {
		case err == nil:
			return alreadyRegisteredReply(pro), &pro.ID, nil
		case !errors.Is(err, store.ErrNotFound):
			return domain.Reply{}, nil, fmt.Errorf("lookup professional: %w", err)
		}

		inv, err := s.Store.Invitations().GetInvitationByPhone(ctx, phone)
		switch {
		case errors.Is(err, store.ErrNotFound):
			log.Info("message from uninvited phone")
			return domain.Reply{Status: domain.ReplyError, Reply: replyNotInvited}, nil, nil
		case err != nil:
			return domain.Reply{}, nil, fmt.Errorf("lookup invitation: %w", err)
		}

		if inv.Consumed {
			log.Warn("invitation consumed but no professional record", slog.Int64("invitation_id", inv.ID))
			return domain.Reply{Status: domain.ReplyWarning, Reply: replyConsumedNoOwner}, nil, nil
		}

		if !extracted {
			fields = s.Extractor.Extract(ctx, text)
			extracted = true
		}

		merged := inv.Partial.Merge(fields)
		missing := merged.Missing(domain.RequiredFields)

		if len(missing) > 0 {
			if merged.Equal(inv.Partial) && domain.SameFields(missing, inv.Missing) {
				return pendingReply(merged, missing), nil, nil
			}

			err := s.Store.Invitations().UpdateInvitationProgress(ctx, phone, inv.Version, merged, missing)
			if errors.Is(err, store.ErrConflict) {
				log.Debug("invitation changed concurrently, retrying", slog.Int("attempt", attempt+1))
				continue
			}
			if err != nil {
				return domain.Reply{}, nil, fmt.Errorf("update invitation: %w", err)
			}
			return pendingReply(merged, missing), nil, nil
		}

		pro = professionalFrom(phone, merged)
		if embedFor != pro.EmbeddingText() {
			embedFor = pro.EmbeddingText()
			if vec, err = embedText(ctx, s.Embedder, s.Dimensions, s.Retry, embedFor); err != nil {
				return domain.Reply{}, nil, err
			}
		}
		pro.Embedding = vec

		created, err := s.complete(ctx, inv, pro)
		if errors.Is(err, store.ErrConflict) || errors.Is(err, store.ErrAlreadyExists) {
			log.Debug("completion raced with another message, retrying", slog.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return domain.Reply{}, nil, fmt.Errorf("complete onboarding: %w", err)
		}

		log.Info("professional registered", slog.Int64("professional_id", created.ID))
		return domain.Reply{
			Status:         domain.ReplyOK,
			Reply:          fmt.Sprintf("Registration successful. Welcome, %s!", created.Name),
			ProfessionalID: &created.ID,
		}, &created.ID, nil
	}

	log.Error("gave up merging message", slog.Int("attempts", s.mergeRetries()))
	return domain.Reply{}, nil, ErrOnboardingContention
}

// complete creates the professional and consumes the invitation atomically.
func (s *OnboardingService) complete(ctx context.Context, inv domain.Invitation, pro domain.Professional) (domain.Professional, error) {
	var created domain.Professional
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := tx.Professionals().CreateProfessional(ctx, pro)
		if err != nil {
			return err
		}
		if err := tx.Invitations().ConsumeInvitation(ctx, inv.Phone, inv.Version, p.ID, s.now()); err != nil {
			return err
		}
		created = p
		return nil
	})
	return created, err
}

func (s *OnboardingService) appendMessage(ctx context.Context, dir domain.Direction, phone string, proID *int64, text string) {
	err := s.Store.Messages().AppendMessage(ctx, domain.Message{
		Direction:      dir,
		RawSender:      phone,
		ProfessionalID: proID,
		Text:           text,
	})
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to record message",
			slog.String("direction", string(dir)),
			slog.Any("error", err),
		)
	}
}

func (s *OnboardingService) mergeRetries() int {
	if s.MergeRetries <= 0 {
		return DefaultMergeRetries
	}
	return s.MergeRetries
}

func (s *OnboardingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func professionalFrom(phone string, f domain.ProfessionalFields) domain.Professional {
	pro := domain.Professional{Phone: phone}
	pro.Name, _ = f.Get(domain.FieldName)
	if v, ok := f.Get(domain.FieldEmail); ok {
		pro.Email = &v
	}
	if v, ok := f.Get(domain.FieldBio); ok {
		pro.Bio = &v
	}
	return pro
}

func alreadyRegisteredReply(p domain.Professional) domain.Reply {
	return domain.Reply{
		Status:         domain.ReplyOK,
		Reply:          fmt.Sprintf("You are already registered as %s (prior registration).", p.Name),
		ProfessionalID: &p.ID,
	}
}

// pendingReply asks for every missing required field with one example line
// each, then offers the optional fields not provided yet.
func pendingReply(known domain.ProfessionalFields, missing []domain.Field) domain.Reply {
	var b strings.Builder
	b.WriteString("Thanks! To finish your registration please reply with:\n")
	for _, f := range missing {
		b.WriteString(fieldExamples[f])
		b.WriteByte('\n')
	}

	optional := known.Missing(domain.KnownFields)
	var extra []string
	for _, f := range optional {
		if !slices.Contains(domain.RequiredFields, f) {
			extra = append(extra, fieldExamples[f])
		}
	}
	if len(extra) > 0 {
		b.WriteString("Optionally also:\n")
		b.WriteString(strings.Join(extra, "\n"))
	}

	return domain.Reply{
		Status:  domain.ReplyPending,
		Reply:   strings.TrimRight(b.String(), "\n"),
		Missing: domain.FieldStrings(missing),
	}
}
