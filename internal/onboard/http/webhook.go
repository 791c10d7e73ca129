package http

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/service"
	"github.com/fmalaspina/vallebot/pkg/httpx"
	"github.com/fmalaspina/vallebot/pkg/onboardsdk"
	"github.com/fmalaspina/vallebot/pkg/slogx"
)

// ErrMalformedPayload reports a notification without a sender and text body
// at entry[0].changes[0].value.messages[0].
var ErrMalformedPayload = errors.New("malformed webhook payload")

const (
	replyUnavailable = "Registration is temporarily unavailable. Please send your message again in a few minutes."
	replyInternal    = "Something went wrong on our side. Please try again later."
)

// ParseInbound extracts the first text message of a WhatsApp Cloud API
// notification.
func ParseInbound(body []byte) (domain.InboundMessage, error) {
	var p onboardsdk.WebhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.InboundMessage{}, ErrMalformedPayload
	}
	if len(p.Entry) == 0 || len(p.Entry[0].Changes) == 0 {
		return domain.InboundMessage{}, ErrMalformedPayload
	}
	msgs := p.Entry[0].Changes[0].Value.Messages
	if len(msgs) == 0 {
		return domain.InboundMessage{}, ErrMalformedPayload
	}

	m := msgs[0]
	if m.From == "" || m.Text == nil {
		return domain.InboundMessage{}, ErrMalformedPayload
	}
	return domain.InboundMessage{Phone: m.From, Text: m.Text.Body}, nil
}

type WebhookHandler struct {
	OnboardingService *service.OnboardingService
	VerifyToken       string
}

// HandleMessage godoc
//
//	@Summary		Messaging Webhook
//	@Description	Receives WhatsApp Cloud API notifications and advances the sender's onboarding.
//	@Description	Business outcomes, including unreadable payloads, are always 200 with a Reply body.
//	@Tags			Webhook
//	@Accept			json
//	@Produce		json
//	@Param			request	body		onboardsdk.WebhookPayload	true	"Cloud API notification"
//	@Success		200		{object}	onboardsdk.Reply			"status, reply, missing, professional_id"
//	@Failure		500		{object}	onboardsdk.Reply			"status=error"
//	@Failure		503		{object}	onboardsdk.Reply			"status=error, embedding backend unavailable"
//	@Router			/webhook/whatsapp [post].
func (h *WebhookHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, httpx.MaxBodyBytes))
	if err != nil {
		log.Warn("failed to read webhook body", slog.Any("error", err))
		httpx.WriteJSON(w, http.StatusOK, toReply(service.MalformedReply()))
		return
	}

	msg, err := ParseInbound(body)
	if err != nil {
		log.Info("ignoring unreadable webhook payload")
		httpx.WriteJSON(w, http.StatusOK, toReply(service.MalformedReply()))
		return
	}

	reply, err := h.OnboardingService.HandleMessage(ctx, msg)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmbeddingUnavailable),
			errors.Is(err, service.ErrOnboardingContention):
			log.Warn("onboarding temporarily unavailable", slog.Any("error", err))
			httpx.WriteJSON(w, http.StatusServiceUnavailable, onboardsdk.Reply{
				Status: onboardsdk.StatusError,
				Reply:  replyUnavailable,
			})
		default:
			log.Error("failed to handle inbound message", slog.Any("error", err))
			httpx.WriteJSON(w, http.StatusInternalServerError, onboardsdk.Reply{
				Status: onboardsdk.StatusError,
				Reply:  replyInternal,
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toReply(reply))
}

// HandleVerify godoc
//
//	@Summary		Webhook Verification
//	@Description	Subscription handshake: echoes hub.challenge when hub.verify_token matches the configured token.
//	@Tags			Webhook
//	@Produce		plain
//	@Param			hub.mode			query		string	true	"subscribe"
//	@Param			hub.verify_token	query		string	true	"Configured verify token"
//	@Param			hub.challenge		query		string	true	"Challenge to echo"
//	@Success		200					{string}	string	"challenge"
//	@Failure		403					{object}	onboardsdk.ErrorResponse
//	@Router			/webhook/whatsapp [get].
func (h *WebhookHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if h.VerifyToken == "" || mode != "subscribe" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(h.VerifyToken)) != 1 {
		slogx.FromContext(r.Context()).Warn("webhook verification rejected", slog.String("mode", mode))
		httpx.WriteError(w, http.StatusForbidden, "verification_failed", "Invalid verify token")
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, strings.TrimSpace(challenge))
}

func toReply(r domain.Reply) onboardsdk.Reply {
	return onboardsdk.Reply{
		Status:         string(r.Status),
		Reply:          r.Reply,
		Missing:        r.Missing,
		ProfessionalID: r.ProfessionalID,
	}
}
