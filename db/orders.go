package db

import (
	"context"

	"stayflow/common"

	"github.com/rs/zerolog/log"
)

// InsertProcessedOrder records the outcome of order processing. The order id
// is the idempotency key: re-delivering the same order is a no-op, the first
// write wins.
func (sr *StayflowRepo) InsertProcessedOrder(orderID string, payload string, ctx context.Context) error {
	query := `
		INSERT OR IGNORE INTO processed_orders (order_id, payload)
		VALUES (?, ?);`

	_, err := sr.db.ExecContext(ctx, query,
		orderID, // order_id
		payload, // payload
	)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("failed to insert processed order")
		return common.ErrInternal
	}
	return nil
}

func (sr *StayflowRepo) SelectProcessedOrders(ctx context.Context) ([]ProcessedOrder, error) {
	query := `
		SELECT order_id, payload, processed_at
		FROM processed_orders
		ORDER BY processed_at ASC;`

	rows, err := sr.db.QueryContext(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg("failed to select processed orders")
		return nil, common.ErrInternal
	}
	defer rows.Close()

	var orders []ProcessedOrder
	for rows.Next() {
		var o ProcessedOrder
		if err := rows.Scan(&o.OrderID, &o.Payload, &o.ProcessedAt); err != nil {
			log.Error().Err(err).Msg("failed to scan processed order")
			return nil, common.ErrInternal
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		log.Error().Err(err).Msg("failed to iterate processed orders")
		return nil, common.ErrInternal
	}
	return orders, nil
}
