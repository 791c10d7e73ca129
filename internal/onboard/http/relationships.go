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

type RelationshipsHandler struct {
	RelationshipService *service.RelationshipService
	SearchService       *service.SearchService
}

// HandleRefresh godoc
//
//	@Summary		Refresh Relationship
//	@Description	Recomputes the snapshot, summary and embedding for a professional/client pair.
//	@Tags			Relationships
//	@Accept			json
//	@Produce		json
//	@Param			request	body		onboardsdk.RefreshRequest	true	"Pair to refresh"
//	@Success		200		{object}	onboardsdk.Relationship
//	@Failure		400		{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Failure		503		{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Security		AdminToken
//	@Router			/v1/relationships/refresh [post].
func (h *RelationshipsHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req onboardsdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, onboardsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}
	if req.ProfessionalID <= 0 || req.ClientID <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, onboardsdk.ErrorCodeInvalidRequest, "professional_id and client_id are required")
		return
	}

	st, err := h.RelationshipService.Refresh(ctx, req.ProfessionalID, req.ClientID, req.RecentLimit)
	if err != nil {
		writeRelationshipError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toRelationship(st))
}

// HandleSearch godoc
//
//	@Summary		Search Relationships
//	@Description	Ranks the professional's relationship summaries by cosine similarity to q.
//	@Tags			Relationships
//	@Produce		json
//	@Param			id	path		int		true	"Professional ID"
//	@Param			q	query		string	true	"Free text query"
//	@Param			k	query		int		false	"Maximum matches (default 5)"
//	@Success		200	{object}	onboardsdk.SearchResponse
//	@Failure		400	{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Failure		401	{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Failure		503	{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Security		AdminToken
//	@Router			/v1/professionals/{id}/relationships/search [get].
func (h *RelationshipsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, onboardsdk.ErrorCodeInvalidRequest, "Invalid professional id")
		return
	}

	query := r.URL.Query().Get("q")
	k := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		k, err = strconv.Atoi(raw)
		if err != nil || k < 0 {
			httpx.WriteError(w, http.StatusBadRequest, onboardsdk.ErrorCodeInvalidRequest, "k must be a positive integer")
			return
		}
	}

	matches, err := h.SearchService.SearchRelationships(ctx, id, query, k)
	if err != nil {
		writeRelationshipError(w, r, err)
		return
	}

	out := onboardsdk.SearchResponse{Query: query, Matches: make([]onboardsdk.RelationshipMatch, 0, len(matches))}
	for _, m := range matches {
		out.Matches = append(out.Matches, onboardsdk.RelationshipMatch{
			Relationship: toRelationship(m.State),
			Score:        m.Score,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func writeRelationshipError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyQuery):
		httpx.WriteError(w, http.StatusBadRequest, onboardsdk.ErrorCodeInvalidRequest, "q is required")
	case errors.Is(err, service.ErrProfessionalNotFound):
		httpx.WriteError(w, http.StatusNotFound, onboardsdk.ErrorCodeNotFound, "Professional not found")
	case errors.Is(err, service.ErrClientNotFound):
		httpx.WriteError(w, http.StatusNotFound, onboardsdk.ErrorCodeNotFound, "Client not found")
	case errors.Is(err, service.ErrRelationshipConflict):
		httpx.WriteError(w, http.StatusConflict, onboardsdk.ErrorCodeConflict, "Concurrent refresh, try again")
	case errors.Is(err, service.ErrEmbeddingUnavailable):
		httpx.WriteError(w, http.StatusServiceUnavailable, onboardsdk.ErrorCodeUnavailable, "Embedding backend unavailable")
	default:
		slogx.FromContext(r.Context()).Error("relationship request failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, onboardsdk.ErrorCodeServerError, "Internal error")
	}
}

func toRelationship(st domain.RelationshipState) onboardsdk.Relationship {
	snap := onboardsdk.Snapshot{
		RecentBookings: make([]onboardsdk.BookingRef, 0, len(st.Snapshot.RecentBookings)),
		TotalPaid:      st.Snapshot.TotalPaid,
		EstimatedCost:  st.Snapshot.EstimatedCost,
		PendingBalance: st.Snapshot.PendingBalance,
	}
	if nb := st.Snapshot.NextBooking; nb != nil {
		ref := toBookingRef(*nb)
		snap.NextBooking = &ref
	}
	for _, b := range st.Snapshot.RecentBookings {
		snap.RecentBookings = append(snap.RecentBookings, toBookingRef(b))
	}

	return onboardsdk.Relationship{
		ID:             st.ID,
		ProfessionalID: st.ProfessionalID,
		ClientID:       st.ClientID,
		Snapshot:       snap,
		Summary:        st.Summary,
		UpdatedAt:      st.UpdatedAt,
	}
}

func toBookingRef(b domain.BookingRef) onboardsdk.BookingRef {
	return onboardsdk.BookingRef{
		ID:        b.ID,
		Date:      b.Date,
		Time:      b.Time,
		ServiceID: b.ServiceID,
		Status:    string(b.Status),
	}
}
