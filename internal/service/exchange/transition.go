package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/internal/events"
	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

// Transition moves an exchange along the lifecycle graph on behalf of one
// of its parties. The status write is a compare-and-set on the expected
// current status; when two callers race, exactly one wins and the other
// gets the transition error for the status that actually holds.
func (s *Service) Transition(ctx context.Context, input TransitionInput) (*domain.Exchange, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	e, err := s.exchanges.GetByID(ctx, input.ExchangeID)
	if err != nil {
		return nil, fmt.Errorf("get exchange: %w", err)
	}
	if !e.IsParty(actorID) {
		return nil, domain.ErrForbidden
	}
	if err := s.authorizeTransition(e, actorID, input.To); err != nil {
		return nil, err
	}
	if !domain.CanTransition(e.Status, input.To) {
		return nil, domain.NewTransitionError(e.Status, input.To)
	}

	from := e.Status
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.applyTransition(txCtx, e, from, input.To, actorID, input.Reason, input.Notes)
	})
	if err != nil {
		return nil, err
	}

	s.publishTransition(ctx, e, from, input.To, actorID)

	updated, err := s.exchanges.GetByID(ctx, input.ExchangeID)
	if err != nil {
		return nil, fmt.Errorf("reload exchange: %w", err)
	}
	return updated, nil
}

// authorizeTransition encodes who may trigger which edge. Accepting or
// rejecting a proposal is the provider's call; everything else is open to
// either party.
func (s *Service) authorizeTransition(e *domain.Exchange, actorID uuid.UUID, to domain.ExchangeStatus) error {
	switch to {
	case domain.ExchangeStatusAccepted, domain.ExchangeStatusRejected:
		if actorID != e.ProviderID {
			return fmt.Errorf("only the provider may respond to a proposal: %w", domain.ErrForbidden)
		}
	}
	return nil
}

// applyTransition performs the conditional status write plus the side
// effects of entering the target status. Must run inside a transaction.
func (s *Service) applyTransition(ctx context.Context, e *domain.Exchange, from, to domain.ExchangeStatus, actorID uuid.UUID, reason, notes string) error {
	moved, err := s.exchanges.UpdateStatusIf(ctx, e.ID, from, to)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if !moved {
		// Lost a race: report the edge from the status that holds now.
		current, err := s.exchanges.GetByID(ctx, e.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return err
			}
			return fmt.Errorf("reload after contended transition: %w", err)
		}
		return domain.NewTransitionError(current.Status, to)
	}

	switch to {
	case domain.ExchangeStatusCompleted:
		completion := domain.Completion{
			CompletedBy:        &actorID,
			RequesterConfirmed: actorID == e.RequesterID,
			ProviderConfirmed:  actorID == e.ProviderID,
			Notes:              notes,
		}
		if err := s.exchanges.SetCompletion(ctx, e.ID, completion); err != nil {
			return fmt.Errorf("set completion: %w", err)
		}
	case domain.ExchangeStatusDisputed:
		if err := s.exchanges.SetDispute(ctx, e.ID, actorID, reason); err != nil {
			return fmt.Errorf("set dispute: %w", err)
		}
	}

	if err := s.adjustBothParties(ctx, e, to); err != nil {
		return fmt.Errorf("adjust counters: %w", err)
	}
	return nil
}

func (s *Service) publishTransition(ctx context.Context, e *domain.Exchange, from, to domain.ExchangeStatus, actorID uuid.UUID) {
	eventType := events.TypeExchangeChanged
	if to == domain.ExchangeStatusDisputed {
		eventType = events.TypeDisputeRaised
	}
	s.events.Publish(ctx, events.Event{
		Type:       eventType,
		ActorID:    actorID,
		ExchangeID: e.ID,
		From:       from,
		To:         to,
	})

	s.log.InfoContext(ctx, "exchange transitioned",
		"exchange_id", e.ID,
		"from", from,
		"to", to,
		"actor_id", actorID,
	)
}
