package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/internal/service/exchange"
)

// exchangeService defines the minimal interface needed by ExchangeHandler.
type exchangeService interface {
	Propose(ctx context.Context, input exchange.ProposeInput) (*domain.Exchange, error)
	Transition(ctx context.Context, input exchange.TransitionInput) (*domain.Exchange, error)
	RaiseDispute(ctx context.Context, input exchange.RaiseDisputeInput) (*domain.Exchange, error)
	ResolveDispute(ctx context.Context, input exchange.ResolveDisputeInput) (*domain.Exchange, error)
	AppendMessage(ctx context.Context, input exchange.AppendMessageInput) (*domain.Message, error)
	Messages(ctx context.Context, exchangeID uuid.UUID) ([]domain.Message, error)
	AddTask(ctx context.Context, input exchange.AddTaskInput) (*domain.Task, error)
	CompleteTask(ctx context.Context, taskID uuid.UUID) (domain.Progress, error)
	Progress(ctx context.Context, exchangeID uuid.UUID) (domain.Progress, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error)
	ListForUser(ctx context.Context, input exchange.ListInput) ([]*domain.Exchange, int, error)
}

// ExchangeHandler serves exchange lifecycle REST endpoints.
type ExchangeHandler struct {
	svc exchangeService
	log *slog.Logger
}

// NewExchangeHandler creates an ExchangeHandler.
func NewExchangeHandler(svc exchangeService, logger *slog.Logger) *ExchangeHandler {
	return &ExchangeHandler{svc: svc, log: logger.With("handler", "exchange")}
}

type skillRequest struct {
	Skill          string  `json:"skill"`
	Category       string  `json:"category"`
	Description    string  `json:"description"`
	Urgency        string  `json:"urgency,omitempty"`
	Level          string  `json:"level,omitempty"`
	EstimatedHours float64 `json:"estimatedHours"`
}

type proposeRequest struct {
	ProviderID        string       `json:"providerId"`
	Title             string       `json:"title"`
	RequestedSkill    skillRequest `json:"requestedSkill"`
	OfferedInReturn   skillRequest `json:"offeredInReturn"`
	MeetingPreference string       `json:"meetingPreference,omitempty"`
	Deadline          *time.Time   `json:"deadline,omitempty"`
}

type statusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

type disputeRequest struct {
	Reason string `json:"reason"`
}

type resolveRequest struct {
	Outcome    string `json:"outcome"`
	Resolution string `json:"resolution"`
}

type messageRequest struct {
	Body string `json:"body"`
}

type taskRequest struct {
	Title string `json:"title"`
}

type exchangeResponse struct {
	ID                string     `json:"id"`
	RequesterID       string     `json:"requesterId"`
	ProviderID        string     `json:"providerId"`
	Title             string     `json:"title"`
	RequestedSkill    skillRequest `json:"requestedSkill"`
	OfferedInReturn   skillRequest `json:"offeredInReturn"`
	Status            string     `json:"status"`
	MeetingPreference string     `json:"meetingPreference"`
	Deadline          *time.Time `json:"deadline,omitempty"`
	Disputed          bool       `json:"disputed"`
	DisputeReason     string     `json:"disputeReason,omitempty"`
	Resolution        string     `json:"resolution,omitempty"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	CompletionNotes   string     `json:"completionNotes,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

type messageResponse struct {
	ID       string    `json:"id"`
	SenderID string    `json:"senderId"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sentAt"`
}

type taskResponse struct {
	ID          string     `json:"id"`
	Side        string     `json:"side"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type progressResponse struct {
	Overall        int            `json:"overall"`
	RequesterTasks []taskResponse `json:"requesterTasks"`
	ProviderTasks  []taskResponse `json:"providerTasks"`
}

// Propose handles POST /v1/exchanges.
func (h *ExchangeHandler) Propose(w http.ResponseWriter, r *http.Request) {
	var req proposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid providerId")
		return
	}

	e, err := h.svc.Propose(r.Context(), exchange.ProposeInput{
		ProviderID: providerID,
		Title:      req.Title,
		RequestedSkill: domain.RequestedSkill{
			Skill:          req.RequestedSkill.Skill,
			Category:       domain.SkillCategory(req.RequestedSkill.Category),
			Description:    req.RequestedSkill.Description,
			Urgency:        domain.UrgencyLevel(req.RequestedSkill.Urgency),
			EstimatedHours: req.RequestedSkill.EstimatedHours,
		},
		OfferedInReturn: domain.OfferedInReturn{
			Skill:          req.OfferedInReturn.Skill,
			Category:       domain.SkillCategory(req.OfferedInReturn.Category),
			Description:    req.OfferedInReturn.Description,
			Level:          domain.SkillLevel(req.OfferedInReturn.Level),
			EstimatedHours: req.OfferedInReturn.EstimatedHours,
		},
		MeetingPreference: domain.MeetingPreference(req.MeetingPreference),
		Deadline:          req.Deadline,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExchangeResponse(e))
}

// Get handles GET /v1/exchanges/{id}.
func (h *ExchangeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	e, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExchangeResponse(e))
}

// List handles GET /v1/exchanges?status=&limit=&offset=. It returns the
// caller's exchanges on either side.
func (h *ExchangeHandler) List(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.svc.ListForUser(r.Context(), exchange.ListInput{
		Status: domain.ExchangeStatus(r.URL.Query().Get("status")),
		Page:   queryPage(r),
	})
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

// SetStatus handles POST /v1/exchanges/{id}/status.
func (h *ExchangeHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.svc.Transition(r.Context(), exchange.TransitionInput{
		ExchangeID: id,
		To:         domain.ExchangeStatus(req.Status),
		Reason:     req.Reason,
		Notes:      req.Notes,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExchangeResponse(e))
}

// RaiseDispute handles POST /v1/exchanges/{id}/dispute.
func (h *ExchangeHandler) RaiseDispute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req disputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.svc.RaiseDispute(r.Context(), exchange.RaiseDisputeInput{
		ExchangeID: id,
		Reason:     req.Reason,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExchangeResponse(e))
}

// ResolveDispute handles POST /v1/exchanges/{id}/dispute/resolve.
// Moderator only; the service enforces the role and the non-party rule.
func (h *ExchangeHandler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.svc.ResolveDispute(r.Context(), exchange.ResolveDisputeInput{
		ExchangeID: id,
		Outcome:    domain.ExchangeStatus(req.Outcome),
		Resolution: req.Resolution,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExchangeResponse(e))
}

// AppendMessage handles POST /v1/exchanges/{id}/messages.
func (h *ExchangeHandler) AppendMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.svc.AppendMessage(r.Context(), exchange.AppendMessageInput{
		ExchangeID: id,
		Body:       req.Body,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMessageResponse(*m))
}

// Messages handles GET /v1/exchanges/{id}/messages.
func (h *ExchangeHandler) Messages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	msgs, err := h.svc.Messages(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, toMessageResponse(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddTask handles POST /v1/exchanges/{id}/tasks.
func (h *ExchangeHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.svc.AddTask(r.Context(), exchange.AddTaskInput{
		ExchangeID: id,
		Title:      req.Title,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(*task))
}

// CompleteTask handles POST /v1/tasks/{taskId}/complete and returns the
// updated progress.
func (h *ExchangeHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathUUID(w, r, "taskId")
	if !ok {
		return
	}

	progress, err := h.svc.CompleteTask(r.Context(), taskID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(progress))
}

// Progress handles GET /v1/exchanges/{id}/progress.
func (h *ExchangeHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	progress, err := h.svc.Progress(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(progress))
}

func toExchangeResponse(e *domain.Exchange) exchangeResponse {
	return exchangeResponse{
		ID:          e.ID.String(),
		RequesterID: e.RequesterID.String(),
		ProviderID:  e.ProviderID.String(),
		Title:       e.Title,
		RequestedSkill: skillRequest{
			Skill:          e.RequestedSkill.Skill,
			Category:       string(e.RequestedSkill.Category),
			Description:    e.RequestedSkill.Description,
			Urgency:        string(e.RequestedSkill.Urgency),
			EstimatedHours: e.RequestedSkill.EstimatedHours,
		},
		OfferedInReturn: skillRequest{
			Skill:          e.OfferedInReturn.Skill,
			Category:       string(e.OfferedInReturn.Category),
			Description:    e.OfferedInReturn.Description,
			Level:          string(e.OfferedInReturn.Level),
			EstimatedHours: e.OfferedInReturn.EstimatedHours,
		},
		Status:            string(e.Status),
		MeetingPreference: string(e.MeetingPreference),
		Deadline:          e.Deadline,
		Disputed:          e.Dispute.Disputed,
		DisputeReason:     e.Dispute.Reason,
		Resolution:        e.Dispute.Resolution,
		CompletedAt:       e.Completion.CompletedAt,
		CompletionNotes:   e.Completion.Notes,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func toMessageResponse(m domain.Message) messageResponse {
	return messageResponse{
		ID:       m.ID.String(),
		SenderID: m.SenderID.String(),
		Body:     m.Body,
		SentAt:   m.SentAt,
	}
}

func toTaskResponse(t domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID.String(),
		Side:        string(t.Side),
		Title:       t.Title,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
	}
}

func toProgressResponse(p domain.Progress) progressResponse {
	resp := progressResponse{
		Overall:        p.Overall(),
		RequesterTasks: make([]taskResponse, 0, len(p.RequesterTasks)),
		ProviderTasks:  make([]taskResponse, 0, len(p.ProviderTasks)),
	}
	for _, t := range p.RequesterTasks {
		resp.RequesterTasks = append(resp.RequesterTasks, toTaskResponse(t))
	}
	for _, t := range p.ProviderTasks {
		resp.ProviderTasks = append(resp.ProviderTasks, toTaskResponse(t))
	}
	return resp
}
