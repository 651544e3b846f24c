package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/internal/service/reputation"
	"github.com/skillswap-ke/skillswap-backend/internal/transport/middleware"
)

type moderationService interface {
	SetModerationStatus(ctx context.Context, input reputation.ModerateInput) (*domain.Review, error)
	ListForModeration(ctx context.Context, input reputation.ModerationQueueInput) ([]*domain.Review, int, error)
}

type exchangeAdminService interface {
	List(ctx context.Context, filter domain.ExchangeFilter) ([]*domain.Exchange, int, error)
}

type profileAdminService interface {
	Verify(ctx context.Context, id uuid.UUID) error
}

// AdminHandler serves moderation and administration endpoints. Role
// checks run twice on purpose: the handler rejects early with a clear
// message, and the services enforce the same rule for non-HTTP callers.
type AdminHandler struct {
	reviews   moderationService
	exchanges exchangeAdminService
	profiles  profileAdminService
	log       *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(reviews moderationService, exchanges exchangeAdminService, profiles profileAdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		reviews:   reviews,
		exchanges: exchanges,
		profiles:  profiles,
		log:       logger.With("handler", "admin"),
	}
}

type moderateRequest struct {
	Status string `json:"status"`
}

// ModerationQueue handles GET /v1/admin/reviews?status=&flagged=&limit=&offset=.
func (h *AdminHandler) ModerationQueue(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireModerator(r.Context()); err != nil {
		writeError(w, http.StatusForbidden, "moderator access required")
		return
	}

	items, total, err := h.reviews.ListForModeration(r.Context(), reputation.ModerationQueueInput{
		Status:      domain.ModerationStatus(r.URL.Query().Get("status")),
		FlaggedOnly: r.URL.Query().Get("flagged") == "true",
		Page:        queryPage(r),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := listResponse[reviewResponse]{Items: make([]reviewResponse, 0, len(items)), Total: total}
	for _, rv := range items {
		resp.Items = append(resp.Items, toReviewResponse(rv))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ModerateReview handles POST /v1/admin/reviews/{id}/moderate.
func (h *AdminHandler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireModerator(r.Context()); err != nil {
		writeError(w, http.StatusForbidden, "moderator access required")
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req moderateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rv, err := h.reviews.SetModerationStatus(r.Context(), reputation.ModerateInput{
		ReviewID: id,
		Status:   domain.ModerationStatus(req.Status),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewResponse(rv))
}

// Exchanges handles GET /v1/admin/exchanges?status=&disputed=&userId=.
// The platform-wide listing moderators use to find open disputes.
func (h *AdminHandler) Exchanges(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireModerator(r.Context()); err != nil {
		writeError(w, http.StatusForbidden, "moderator access required")
		return
	}

	q := r.URL.Query()
	filter := domain.ExchangeFilter{
		Status: domain.ExchangeStatus(q.Get("status")),
		Page:   queryPage(r),
	}
	if v := q.Get("disputed"); v != "" {
		disputed := v == "true"
		filter.Disputed = &disputed
	}
	if v := q.Get("userId"); v != "" {
		userID, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid userId")
			return
		}
		filter.UserID = userID
	}

	items, total, err := h.exchanges.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := listResponse[exchangeResponse]{Items: make([]exchangeResponse, 0, len(items)), Total: total}
	for _, e := range items {
		resp.Items = append(resp.Items, toExchangeResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

// VerifyProfile handles POST /v1/admin/profiles/{id}/verify.
func (h *AdminHandler) VerifyProfile(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		writeError(w, http.StatusForbidden, "admin access required")
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.profiles.Verify(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
