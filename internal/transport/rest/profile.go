package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/internal/service/matching"
	"github.com/skillswap-ke/skillswap-backend/internal/service/profile"
	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

// profileService defines the minimal interface needed by ProfileHandler.
type profileService interface {
	Register(ctx context.Context, input profile.RegisterInput) (*domain.SkillProfile, error)
	Update(ctx context.Context, input profile.UpdateInput) (*domain.SkillProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SkillProfile, error)
	GetPublicProfile(ctx context.Context, id uuid.UUID) (*profile.PublicProfile, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// matchingService defines the minimal interface needed by ProfileHandler.
type matchingService interface {
	Suggestions(ctx context.Context) ([]matching.Match, error)
	Nearby(ctx context.Context) ([]matching.Match, error)
	Search(ctx context.Context, filter domain.ProfileFilter) ([]matching.Match, int, error)
}

// ProfileHandler serves profile and partner-discovery REST endpoints.
type ProfileHandler struct {
	profiles profileService
	matches  matchingService
	log      *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profiles profileService, matches matchingService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		matches:  matches,
		log:      logger.With("handler", "profile"),
	}
}

type registerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	University  string `json:"university"`
	Course      string `json:"course"`
	YearOfStudy int    `json:"yearOfStudy"`
	County      string `json:"county"`
	Town        string `json:"town"`
	Bio         string `json:"bio"`
}

type updateProfileRequest struct {
	FirstName     *string               `json:"firstName,omitempty"`
	LastName      *string               `json:"lastName,omitempty"`
	University    *string               `json:"university,omitempty"`
	Course        *string               `json:"course,omitempty"`
	YearOfStudy   *int                  `json:"yearOfStudy,omitempty"`
	County        *string               `json:"county,omitempty"`
	Town          *string               `json:"town,omitempty"`
	Bio           *string               `json:"bio,omitempty"`
	AvatarURL     *string               `json:"avatarUrl,omitempty"`
	SkillsOffered []domain.OfferedSkill `json:"skillsOffered,omitempty"`
	SkillsNeeded  []domain.NeededSkill  `json:"skillsNeeded,omitempty"`
}

type activeRequest struct {
	Active bool `json:"active"`
}

type profileResponse struct {
	ID                 string                `json:"id"`
	FirstName          string                `json:"firstName"`
	LastName           string                `json:"lastName"`
	University         string                `json:"university,omitempty"`
	Course             string                `json:"course,omitempty"`
	YearOfStudy        int                   `json:"yearOfStudy,omitempty"`
	County             string                `json:"county,omitempty"`
	Town               string                `json:"town,omitempty"`
	Bio                string                `json:"bio,omitempty"`
	AvatarURL          *string               `json:"avatarUrl,omitempty"`
	SkillsOffered      []domain.OfferedSkill `json:"skillsOffered"`
	SkillsNeeded       []domain.NeededSkill  `json:"skillsNeeded"`
	RatingAverage      float64               `json:"ratingAverage"`
	RatingCount        int                   `json:"ratingCount"`
	CompletedExchanges int                   `json:"completedExchanges"`
	ActiveExchanges    int                   `json:"activeExchanges"`
	IsVerified         bool                  `json:"isVerified"`
	IsActive           bool                  `json:"isActive"`
	CreatedAt          time.Time             `json:"createdAt"`
}

type publicProfileResponse struct {
	Profile      profileResponse  `json:"profile"`
	Reviews      []reviewResponse `json:"reviews"`
	ReviewsTotal int              `json:"reviewsTotal"`
	Stats        statsResponse    `json:"stats"`
}

type matchResponse struct {
	Profile        profileResponse       `json:"profile"`
	Score          int                   `json:"score"`
	MatchingSkills []domain.OfferedSkill `json:"matchingSkills,omitempty"`
}

// Register handles POST /v1/profiles.
func (h *ProfileHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.profiles.Register(r.Context(), profile.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		University:  req.University,
		Course:      req.Course,
		YearOfStudy: req.YearOfStudy,
		County:      req.County,
		Town:        req.Town,
		Bio:         req.Bio,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProfileResponse(p))
}

// Me handles GET /v1/profiles/me.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	actorID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	p, err := h.profiles.GetByID(r.Context(), actorID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// UpdateMe handles PATCH /v1/profiles/me.
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.profiles.Update(r.Context(), profile.UpdateInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		University:    req.University,
		Course:        req.Course,
		YearOfStudy:   req.YearOfStudy,
		County:        req.County,
		Town:          req.Town,
		Bio:           req.Bio,
		AvatarURL:     req.AvatarURL,
		SkillsOffered: req.SkillsOffered,
		SkillsNeeded:  req.SkillsNeeded,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// Get handles GET /v1/profiles/{id}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.profiles.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// Public handles GET /v1/profiles/{id}/public: the profile page with
// approved reviews and the reputation summary.
func (h *ProfileHandler) Public(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	pp, err := h.profiles.GetPublicProfile(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := publicProfileResponse{
		Profile:      toProfileResponse(pp.Profile),
		Reviews:      make([]reviewResponse, 0, len(pp.Reviews)),
		ReviewsTotal: pp.ReviewsTotal,
		Stats: statsResponse{
			Average:      pp.Stats.Rating.Average,
			Count:        pp.Stats.Rating.Count,
			One:          pp.Stats.Distribution.One,
			Two:          pp.Stats.Distribution.Two,
			Three:        pp.Stats.Distribution.Three,
			Four:         pp.Stats.Distribution.Four,
			Five:         pp.Stats.Distribution.Five,
			RecommendPct: pp.Stats.RecommendPct,
			SuccessPct:   pp.Stats.SuccessPct,
		},
	}
	for _, rv := range pp.Reviews {
		resp.Reviews = append(resp.Reviews, toReviewResponse(rv))
	}
	writeJSON(w, http.StatusOK, resp)
}

// SetActive handles PATCH /v1/profiles/{id}/active.
func (h *ProfileHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req activeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.profiles.SetActive(r.Context(), id, req.Active); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Suggestions handles GET /v1/matches/suggestions.
func (h *ProfileHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matches.Suggestions(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toMatchResponses(matches))
}

// Nearby handles GET /v1/matches/nearby.
func (h *ProfileHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matches.Nearby(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toMatchResponses(matches))
}

// Search handles GET /v1/matches/search?skill=&category=&county=&university=&minRating=&verified=.
func (h *ProfileHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.ProfileFilter{
		Skill:        q.Get("skill"),
		Category:     domain.SkillCategory(q.Get("category")),
		County:       q.Get("county"),
		University:   q.Get("university"),
		OnlyVerified: q.Get("verified") == "true",
		Page:         queryPage(r),
	}
	if v := q.Get("minRating"); v != "" {
		var minRating float64
		if err := json.Unmarshal([]byte(v), &minRating); err != nil {
			writeError(w, http.StatusBadRequest, "invalid minRating")
			return
		}
		filter.MinRating = minRating
	}

	matches, total, err := h.matches.Search(r.Context(), filter)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := listResponse[matchResponse]{Items: toMatchResponses(matches), Total: total}
	writeJSON(w, http.StatusOK, resp)
}

func toProfileResponse(p *domain.SkillProfile) profileResponse {
	return profileResponse{
		ID:                 p.ID.String(),
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		University:         p.University,
		Course:             p.Course,
		YearOfStudy:        p.YearOfStudy,
		County:             p.County,
		Town:               p.Town,
		Bio:                p.Bio,
		AvatarURL:          p.AvatarURL,
		SkillsOffered:      p.SkillsOffered,
		SkillsNeeded:       p.SkillsNeeded,
		RatingAverage:      p.Rating.Average,
		RatingCount:        p.Rating.Count,
		CompletedExchanges: p.CompletedExchanges,
		ActiveExchanges:    p.ActiveExchanges,
		IsVerified:         p.IsVerified,
		IsActive:           p.IsActive,
		CreatedAt:          p.CreatedAt,
	}
}

func toMatchResponses(matches []matching.Match) []matchResponse {
	resp := make([]matchResponse, 0, len(matches))
	for _, m := range matches {
		resp = append(resp, matchResponse{
			Profile:        toProfileResponse(m.Profile),
			Score:          m.Score,
			MatchingSkills: m.MatchingSkills,
		})
	}
	return resp
}
