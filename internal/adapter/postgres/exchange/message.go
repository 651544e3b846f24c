package exchange

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/adapter/postgres"
	"github.com/skillswap-ke/skillswap-backend/internal/domain"
)

const insertMessageSQL = `
INSERT INTO exchange_messages (id, exchange_id, sender_id, body)
VALUES ($1, $2, $3, $4)
RETURNING sent_at`

const listMessagesSQL = `
SELECT id, exchange_id, sender_id, body, sent_at
FROM exchange_messages
WHERE exchange_id = $1
ORDER BY sent_at, id`

// AppendMessage adds a message to the exchange transcript. The transcript
// is append-only; there is deliberately no update or delete.
func (r *Repo) AppendMessage(ctx context.Context, m *domain.Message) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, insertMessageSQL, m.ID, m.ExchangeID, m.SenderID, m.Body).
		Scan(&m.SentAt)
	if err != nil {
		return postgres.MapError(err, "exchange_message", m.ID)
	}
	return nil
}

// ListMessages returns the full transcript of an exchange in send order.
func (r *Repo) ListMessages(ctx context.Context, exchangeID uuid.UUID) ([]domain.Message, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listMessagesSQL, exchangeID)
	if err != nil {
		return nil, postgres.MapError(err, "exchange_message", exchangeID)
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ExchangeID, &m.SenderID, &m.Body, &m.SentAt); err != nil {
			return nil, postgres.MapError(err, "exchange_message", exchangeID)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "exchange_message", exchangeID)
	}
	return out, nil
}
