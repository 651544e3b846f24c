package exchange

import (
	"context"
	"fmt"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/internal/events"
	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

// RaiseDispute freezes an in-progress exchange pending resolution. It is
// the Transition edge to disputed with a mandatory reason.
func (s *Service) RaiseDispute(ctx context.Context, input RaiseDisputeInput) (*domain.Exchange, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	return s.Transition(ctx, TransitionInput{
		ExchangeID: input.ExchangeID,
		To:         domain.ExchangeStatusDisputed,
		Reason:     input.Reason,
	})
}

// ResolveDispute closes a disputed exchange onto a terminal outcome. Only
// a moderator or admin who is not a party to the exchange may resolve it.
// Counter side effects match the outcome as if the parties had reached it
// themselves.
func (s *Service) ResolveDispute(ctx context.Context, input ResolveDisputeInput) (*domain.Exchange, error) {
	resolverID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.UserRole(ctxutil.RoleFromCtx(ctx)).CanModerate() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	e, err := s.exchanges.GetByID(ctx, input.ExchangeID)
	if err != nil {
		return nil, fmt.Errorf("get exchange: %w", err)
	}
	if e.IsParty(resolverID) {
		return nil, fmt.Errorf("a party cannot resolve its own dispute: %w", domain.ErrForbidden)
	}
	if e.Status != domain.ExchangeStatusDisputed {
		return nil, domain.NewTransitionError(e.Status, input.Outcome)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		moved, err := s.exchanges.UpdateStatusIf(txCtx, e.ID, domain.ExchangeStatusDisputed, input.Outcome)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if !moved {
			current, err := s.exchanges.GetByID(txCtx, e.ID)
			if err != nil {
				return fmt.Errorf("reload after contended resolution: %w", err)
			}
			return domain.NewTransitionError(current.Status, input.Outcome)
		}

		if err := s.exchanges.SetResolution(txCtx, e.ID, resolverID, input.Resolution); err != nil {
			return fmt.Errorf("set resolution: %w", err)
		}

		if input.Outcome == domain.ExchangeStatusCompleted {
			completion := domain.Completion{
				CompletedBy: &resolverID,
				Notes:       input.Resolution,
			}
			if err := s.exchanges.SetCompletion(txCtx, e.ID, completion); err != nil {
				return fmt.Errorf("set completion: %w", err)
			}
		}

		if err := s.adjustBothParties(txCtx, e, input.Outcome); err != nil {
			return fmt.Errorf("adjust counters: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.Event{
		Type:       events.TypeDisputeResolved,
		ActorID:    resolverID,
		ExchangeID: e.ID,
		From:       domain.ExchangeStatusDisputed,
		To:         input.Outcome,
	})

	s.log.InfoContext(ctx, "dispute resolved",
		"exchange_id", e.ID,
		"outcome", input.Outcome,
		"resolver_id", resolverID,
	)

	updated, err := s.exchanges.GetByID(ctx, input.ExchangeID)
	if err != nil {
		return nil, fmt.Errorf("reload exchange: %w", err)
	}
	return updated, nil
}
