package exchange

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
	"github.com/skillswap-ke/skillswap-backend/internal/events"
	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

// AppendMessage adds a message to the exchange transcript. Only parties
// may write, and only while the exchange is still open (disputed counts
// as open — the parties keep talking while a resolver looks at it).
func (s *Service) AppendMessage(ctx context.Context, input AppendMessageInput) (*domain.Message, error) {
	senderID, ok := ctxutil.UserIDFromCtx(ctx)
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
	if !e.IsParty(senderID) {
		return nil, domain.ErrForbidden
	}
	if e.Status.IsTerminal() {
		return nil, fmt.Errorf("exchange is closed: %w", domain.ErrInvalidTransition)
	}

	m := &domain.Message{
		ID:         uuid.New(),
		ExchangeID: input.ExchangeID,
		SenderID:   senderID,
		Body:       input.Body,
	}
	if err := s.exchanges.AppendMessage(ctx, m); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	s.events.Publish(ctx, events.Event{
		Type:       events.TypeMessageAppended,
		ActorID:    senderID,
		ExchangeID: input.ExchangeID,
	})
	return m, nil
}

// Messages returns the full transcript of an exchange. Parties and
// moderators only.
func (s *Service) Messages(ctx context.Context, exchangeID uuid.UUID) ([]domain.Message, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	e, err := s.exchanges.GetByID(ctx, exchangeID)
	if err != nil {
		return nil, fmt.Errorf("get exchange: %w", err)
	}
	if !e.IsParty(actorID) && !domain.UserRole(ctxutil.RoleFromCtx(ctx)).CanModerate() {
		return nil, domain.ErrForbidden
	}

	return s.exchanges.ListMessages(ctx, exchangeID)
}
