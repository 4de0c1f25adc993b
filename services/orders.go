package services

import (
	"context"
	"encoding/json"
	"fmt"

	"stayflow/common"
	"stayflow/db"
	"stayflow/metrics"

	"github.com/rs/zerolog/log"
)

type OrdersService struct {
	repo           *db.StayflowRepo
	metricsService metrics.Service
}

func NewOrdersService(repo *db.StayflowRepo, metricsService metrics.Service) *OrdersService {
	return &OrdersService{
		repo:           repo,
		metricsService: metricsService,
	}
}

// HandleMessage is the processing callback for the orders queue. Persisting
// the order is idempotent on order_id, so re-delivery of the same payload has
// no duplicate effect.
func (os *OrdersService) HandleMessage(ctx context.Context, payload string) error {
	var order common.OrderPayload
	if err := json.Unmarshal([]byte(payload), &order); err != nil {
		return fmt.Errorf("malformed order payload: %w", err)
	}
	if order.OrderID == "" {
		return fmt.Errorf("order payload is missing order_id")
	}

	if err := os.repo.InsertProcessedOrder(order.OrderID, payload, ctx); err != nil {
		return err
	}

	os.metricsService.IncOrdersProcessedTotalBy(1)
	log.Info().Str("order_id", order.OrderID).Msg("order processed")
	return nil
}

func (os *OrdersService) ListOrders(ctx context.Context) (*common.ListOrdersResponse, error) {
	processed, err := os.repo.SelectProcessedOrders(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]common.ProcessedOrderResponse, 0, len(processed))
	for _, p := range processed {
		var payload common.OrderPayload
		if err := json.Unmarshal([]byte(p.Payload), &payload); err != nil {
			log.Error().Err(err).Str("order_id", p.OrderID).Msg("failed to decode stored order payload")
			return nil, common.ErrInternal
		}

		orders = append(orders, common.ProcessedOrderResponse{
			OrderID:     p.OrderID,
			CreatedAt:   payload.CreatedAt,
			Items:       payload.Items,
			Total:       payload.Total,
			ProcessedAt: p.ProcessedAt,
		})
	}
	return &common.ListOrdersResponse{Orders: orders}, nil
}
