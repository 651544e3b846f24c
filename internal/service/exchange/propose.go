package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/internal/events"
	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

// Propose creates a new exchange in pending status. Both parties' active
// counters move up in the same transaction as the insert, so a crash can
// never leave a proposal counted on one side only.
func (s *Service) Propose(ctx context.Context, input ProposeInput) (*domain.Exchange, error) {
	requesterID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.ProviderID == requesterID {
		return nil, domain.NewValidationError("provider_id", "cannot propose an exchange with yourself")
	}

	requester, err := s.profiles.GetByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("get requester: %w", err)
	}
	if requester.ActiveExchanges >= s.maxActive {
		return nil, fmt.Errorf("active exchange limit of %d reached: %w", s.maxActive, domain.ErrForbidden)
	}

	provider, err := s.profiles.GetByID(ctx, input.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("get provider: %w", err)
	}
	// Deactivated profiles are invisible: report them like a missing row.
	if !provider.IsActive {
		return nil, fmt.Errorf("provider %s: %w", input.ProviderID, domain.ErrNotFound)
	}

	e := &domain.Exchange{
		ID:              uuid.New(),
		RequesterID:     requesterID,
		ProviderID:      input.ProviderID,
		Title:           input.Title,
		RequestedSkill:  input.RequestedSkill,
		OfferedInReturn: input.OfferedInReturn,
		Status:          domain.ExchangeStatusPending,
		MeetingPreference: func() domain.MeetingPreference {
			if input.MeetingPreference == "" {
				return domain.MeetingBoth
			}
			return input.MeetingPreference
		}(),
		Deadline: input.Deadline,
	}
	if e.Deadline == nil && s.defaultDeadline > 0 {
		d := time.Now().UTC().Add(s.defaultDeadline)
		e.Deadline = &d
	}
	if e.RequestedSkill.Urgency == "" {
		e.RequestedSkill.Urgency = domain.UrgencyMedium
	}
	if e.OfferedInReturn.Level == "" {
		e.OfferedInReturn.Level = domain.SkillLevelIntermediate
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.exchanges.Create(txCtx, e); err != nil {
			return fmt.Errorf("create exchange: %w", err)
		}
		if err := s.profiles.AdjustCounters(txCtx, requesterID, 1, 0); err != nil {
			return fmt.Errorf("adjust requester counters: %w", err)
		}
		if err := s.profiles.AdjustCounters(txCtx, input.ProviderID, 1, 0); err != nil {
			return fmt.Errorf("adjust provider counters: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.Event{
		Type:       events.TypeExchangeProposed,
		ActorID:    requesterID,
		ExchangeID: e.ID,
		To:         domain.ExchangeStatusPending,
	})

	s.log.InfoContext(ctx, "exchange proposed",
		"exchange_id", e.ID,
		"requester_id", requesterID,
		"provider_id", input.ProviderID,
	)
	return e, nil
}
