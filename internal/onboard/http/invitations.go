package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/service"
	"github.com/fmalaspina/vallebot/pkg/httpx"
	"github.com/fmalaspina/vallebot/pkg/onboardsdk"
	"github.com/fmalaspina/vallebot/pkg/slogx"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// HandleCreate godoc
//
//	@Summary		Invite Professional
//	@Description	Opens onboarding for a phone number. The number is normalized to digits.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		onboardsdk.CreateInvitationRequest	true	"Invitation request"
//	@Success		201		{object}	onboardsdk.Invitation
//	@Failure		400		{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Security		AdminToken
//	@Router			/v1/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req onboardsdk.CreateInvitationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, onboardsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	inv, err := h.InvitationService.CreateInvitation(ctx, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPhone):
			httpx.WriteError(w, http.StatusBadRequest, onboardsdk.ErrorCodeInvalidRequest, "phone is required")
		case errors.Is(err, service.ErrInvitationExists):
			httpx.WriteError(w, http.StatusConflict, onboardsdk.ErrorCodeConflict, "An invitation already exists for this phone")
		case errors.Is(err, service.ErrAlreadyProfessional):
			httpx.WriteError(w, http.StatusConflict, onboardsdk.ErrorCodeConflict, "This phone already belongs to a professional")
		default:
			log.Error("failed to create invitation", slog.Any("error", err))
			httpx.WriteError(w, http.StatusInternalServerError, onboardsdk.ErrorCodeServerError, "Failed to create invitation")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInvitation(inv))
}

// HandleList godoc
//
//	@Summary		List Invitations
//	@Description	Lists open invitations, or every invitation with all=true.
//	@Tags			Invitations
//	@Produce		json
//	@Param			all	query		bool	false	"Include consumed invitations"
//	@Success		200	{object}	onboardsdk.ListInvitationsResponse
//	@Failure		401	{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Security		AdminToken
//	@Router			/v1/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))

	invs, err := h.InvitationService.ListInvitations(ctx, all)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list invitations", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, onboardsdk.ErrorCodeServerError, "Failed to list invitations")
		return
	}

	out := onboardsdk.ListInvitationsResponse{Invitations: make([]onboardsdk.Invitation, 0, len(invs))}
	for _, inv := range invs {
		out.Invitations = append(out.Invitations, toInvitation(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func toInvitation(inv domain.Invitation) onboardsdk.Invitation {
	partial := map[string]string{}
	for _, f := range domain.KnownFields {
		if v, ok := inv.Partial.Get(f); ok {
			partial[string(f)] = v
		}
	}
	missing := domain.FieldStrings(inv.Missing)
	if missing == nil {
		missing = []string{}
	}
	return onboardsdk.Invitation{
		ID:             inv.ID,
		Phone:          inv.Phone,
		Consumed:       inv.Consumed,
		Partial:        partial,
		Missing:        missing,
		Version:        inv.Version,
		ProfessionalID: inv.ProfessionalID,
		CreatedAt:      inv.CreatedAt,
		ConsumedAt:     inv.ConsumedAt,
	}
}
