package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/internal/service/reputation"
)

// reputationService defines the minimal interface needed by ReviewHandler.
type reputationService interface {
	SubmitReview(ctx context.Context, input reputation.SubmitReviewInput) (*domain.Review, error)
	Respond(ctx context.Context, input reputation.RespondInput) error
	Flag(ctx context.Context, input reputation.FlagInput) error
	ListForReviewee(ctx context.Context, input reputation.ListForRevieweeInput) ([]*domain.Review, int, error)
	StatsForProfile(ctx context.Context, profileID uuid.UUID) (domain.ReviewStats, error)
}

// ReviewHandler serves review REST endpoints.
type ReviewHandler struct {
	svc reputationService
	log *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc reputationService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, log: logger.With("handler", "review")}
}

type submitReviewRequest struct {
	ExchangeID     string   `json:"exchangeId"`
	Rating         int      `json:"rating"`
	Communication  *int     `json:"communication,omitempty"`
	SkillLevel     *int     `json:"skillLevel,omitempty"`
	Reliability    *int     `json:"reliability,omitempty"`
	Friendliness   *int     `json:"friendliness,omitempty"`
	Comment        string   `json:"comment"`
	Tags           []string `json:"tags,omitempty"`
	WasSuccessful  bool     `json:"wasSuccessful"`
	WouldRecommend bool     `json:"wouldRecommend"`
}

type respondRequest struct {
	Body string `json:"body"`
}

type flagRequest struct {
	Reason string `json:"reason"`
}

type reviewResponse struct {
	ID             string     `json:"id"`
	ExchangeID     string     `json:"exchangeId"`
	ReviewerID     string     `json:"reviewerId"`
	RevieweeID     string     `json:"revieweeId"`
	Rating         int        `json:"rating"`
	Communication  *int       `json:"communication,omitempty"`
	SkillLevel     *int       `json:"skillLevel,omitempty"`
	Reliability    *int       `json:"reliability,omitempty"`
	Friendliness   *int       `json:"friendliness,omitempty"`
	Comment        string     `json:"comment"`
	Tags           []string   `json:"tags,omitempty"`
	WasSuccessful  bool       `json:"wasSuccessful"`
	WouldRecommend bool       `json:"wouldRecommend"`
	Status         string     `json:"status"`
	Flagged        bool       `json:"flagged"`
	Response       *string    `json:"response,omitempty"`
	RespondedAt    *time.Time `json:"respondedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type statsResponse struct {
	Average      float64 `json:"average"`
	Count        int     `json:"count"`
	One          int     `json:"one"`
	Two          int     `json:"two"`
	Three        int     `json:"three"`
	Four         int     `json:"four"`
	Five         int     `json:"five"`
	RecommendPct float64 `json:"recommendPct"`
	SuccessPct   float64 `json:"successPct"`
}

// Submit handles POST /v1/reviews.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exchangeID, err := uuid.Parse(req.ExchangeID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exchangeId")
		return
	}

	rv, err := h.svc.SubmitReview(r.Context(), reputation.SubmitReviewInput{
		ExchangeID: exchangeID,
		Rating:     req.Rating,
		Detailed: domain.DetailedRatings{
			Communication: req.Communication,
			SkillLevel:    req.SkillLevel,
			Reliability:   req.Reliability,
			Friendliness:  req.Friendliness,
		},
		Comment:        req.Comment,
		Tags:           req.Tags,
		WasSuccessful:  req.WasSuccessful,
		WouldRecommend: req.WouldRecommend,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReviewResponse(rv))
}

// Respond handles POST /v1/reviews/{id}/response.
func (h *ReviewHandler) Respond(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Respond(r.Context(), reputation.RespondInput{ReviewID: id, Body: req.Body}); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Flag handles POST /v1/reviews/{id}/flag.
func (h *ReviewHandler) Flag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req flagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Flag(r.Context(), reputation.FlagInput{ReviewID: id, Reason: req.Reason}); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListForProfile handles GET /v1/profiles/{id}/reviews.
func (h *ReviewHandler) ListForProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	items, total, err := h.svc.ListForReviewee(r.Context(), reputation.ListForRevieweeInput{
		RevieweeID: id,
		Page:       queryPage(r),
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

// Stats handles GET /v1/profiles/{id}/stats.
func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	stats, err := h.svc.StatsForProfile(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Average:      stats.Rating.Average,
		Count:        stats.Rating.Count,
		One:          stats.Distribution.One,
		Two:          stats.Distribution.Two,
		Three:        stats.Distribution.Three,
		Four:         stats.Distribution.Four,
		Five:         stats.Distribution.Five,
		RecommendPct: stats.RecommendPct,
		SuccessPct:   stats.SuccessPct,
	})
}

func toReviewResponse(rv *domain.Review) reviewResponse {
	resp := reviewResponse{
		ID:             rv.ID.String(),
		ExchangeID:     rv.ExchangeID.String(),
		ReviewerID:     rv.ReviewerID.String(),
		RevieweeID:     rv.RevieweeID.String(),
		Rating:         rv.Rating,
		Communication:  rv.Detailed.Communication,
		SkillLevel:     rv.Detailed.SkillLevel,
		Reliability:    rv.Detailed.Reliability,
		Friendliness:   rv.Detailed.Friendliness,
		Comment:        rv.Comment,
		Tags:           rv.Tags,
		WasSuccessful:  rv.WasSuccessful,
		WouldRecommend: rv.WouldRecommend,
		Status:         string(rv.Moderation.Status),
		Flagged:        rv.Moderation.Flagged,
		CreatedAt:      rv.CreatedAt,
	}
	if rv.Response != nil {
		resp.Response = &rv.Response.Body
		resp.RespondedAt = &rv.Response.RespondedAt
	}
	return resp
}
