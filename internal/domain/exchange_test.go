package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCanTransition_AllowedEdges(t *testing.T) {
	t.Parallel()

	allowed := []struct{ from, to ExchangeStatus }{
		{ExchangeStatusPending, ExchangeStatusAccepted},
		{ExchangeStatusPending, ExchangeStatusRejected},
		{ExchangeStatusPending, ExchangeStatusCancelled},
		{ExchangeStatusAccepted, ExchangeStatusInProgress},
		{ExchangeStatusAccepted, ExchangeStatusCancelled},
		{ExchangeStatusInProgress, ExchangeStatusCompleted},
		{ExchangeStatusInProgress, ExchangeStatusCancelled},
		{ExchangeStatusInProgress, ExchangeStatusDisputed},
	}
	for _, tt := range allowed {
		if !CanTransition(tt.from, tt.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", tt.from, tt.to)
		}
	}
}

// Every (from, to) pair outside the allowed edge set must be rejected,
// including self-loops and anything leaving a terminal or disputed state.
func TestCanTransition_RejectsEverythingElse(t *testing.T) {
	t.Parallel()

	all := []ExchangeStatus{
		ExchangeStatusPending, ExchangeStatusAccepted, ExchangeStatusRejected,
		ExchangeStatusInProgress, ExchangeStatusCompleted, ExchangeStatusCancelled,
		ExchangeStatusDisputed,
	}
	allowed := map[[2]ExchangeStatus]bool{
		{ExchangeStatusPending, ExchangeStatusAccepted}:     true,
		{ExchangeStatusPending, ExchangeStatusRejected}:     true,
		{ExchangeStatusPending, ExchangeStatusCancelled}:    true,
		{ExchangeStatusAccepted, ExchangeStatusInProgress}:  true,
		{ExchangeStatusAccepted, ExchangeStatusCancelled}:   true,
		{ExchangeStatusInProgress, ExchangeStatusCompleted}: true,
		{ExchangeStatusInProgress, ExchangeStatusCancelled}: true,
		{ExchangeStatusInProgress, ExchangeStatusDisputed}:  true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]ExchangeStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestIsResolutionOutcome(t *testing.T) {
	t.Parallel()

	if !IsResolutionOutcome(ExchangeStatusCompleted) || !IsResolutionOutcome(ExchangeStatusCancelled) {
		t.Error("completed and cancelled must be resolution outcomes")
	}
	for _, s := range []ExchangeStatus{
		ExchangeStatusPending, ExchangeStatusAccepted, ExchangeStatusRejected,
		ExchangeStatusInProgress, ExchangeStatusDisputed,
	} {
		if IsResolutionOutcome(s) {
			t.Errorf("%s must not be a resolution outcome", s)
		}
	}
}

func TestProgress_Overall(t *testing.T) {
	t.Parallel()

	done := Task{Completed: true}
	open := Task{Completed: false}

	tests := []struct {
		name      string
		requester []Task
		provider  []Task
		want      int
	}{
		{"no tasks", nil, nil, 0},
		{"none done", []Task{open}, []Task{open}, 0},
		{"all done", []Task{done, done}, []Task{done}, 100},
		{"half done", []Task{done}, []Task{open}, 50},
		{"one of three rounds to 33", []Task{done, open, open}, nil, 33},
		{"two of three rounds to 67", []Task{done, done, open}, nil, 67},
		{"one sided", nil, []Task{done, open, open, open}, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := Progress{RequesterTasks: tt.requester, ProviderTasks: tt.provider}
			if got := p.Overall(); got != tt.want {
				t.Errorf("Overall() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExchange_OtherParty(t *testing.T) {
	t.Parallel()

	requester := uuid.New()
	provider := uuid.New()
	e := &Exchange{RequesterID: requester, ProviderID: provider}

	if got, err := e.OtherParty(requester); err != nil || got != provider {
		t.Errorf("OtherParty(requester) = %v, %v; want provider", got, err)
	}
	if got, err := e.OtherParty(provider); err != nil || got != requester {
		t.Errorf("OtherParty(provider) = %v, %v; want requester", got, err)
	}
	if _, err := e.OtherParty(uuid.New()); !errors.Is(err, ErrForbidden) {
		t.Errorf("OtherParty(stranger) err = %v, want ErrForbidden", err)
	}
}

func TestExchange_IsParty(t *testing.T) {
	t.Parallel()

	requester := uuid.New()
	provider := uuid.New()
	e := &Exchange{RequesterID: requester, ProviderID: provider}

	if !e.IsParty(requester) || !e.IsParty(provider) {
		t.Error("both parties must be recognized")
	}
	if e.IsParty(uuid.New()) {
		t.Error("stranger must not be a party")
	}
}

func TestExchange_IsOverdue(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name     string
		deadline *time.Time
		status   ExchangeStatus
		want     bool
	}{
		{"no deadline", nil, ExchangeStatusInProgress, false},
		{"future deadline", &future, ExchangeStatusInProgress, false},
		{"past deadline live", &past, ExchangeStatusInProgress, true},
		{"past deadline disputed", &past, ExchangeStatusDisputed, true},
		{"past deadline completed", &past, ExchangeStatusCompleted, false},
		{"past deadline cancelled", &past, ExchangeStatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := &Exchange{Deadline: tt.deadline, Status: tt.status}
			if got := e.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}
