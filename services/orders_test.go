package services

import (
	"context"
	"testing"

	"stayflow/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleOrderMessage(t *testing.T) {
	repo := setupTestRepo(t)
	orders := NewOrdersService(repo, metrics.NewMetricsService(false))
	ctx := context.Background()

	payload := `{"order_id":"o1","created_at":"2026-08-01T10:00:00Z","items":[{"item_id":"A001","quantity":2}],"total":20.0}`
	require.NoError(t, orders.HandleMessage(ctx, payload))

	listed, err := orders.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, listed.Orders, 1)

	got := listed.Orders[0]
	assert.Equal(t, "o1", got.OrderID)
	assert.Equal(t, "2026-08-01T10:00:00Z", got.CreatedAt)
	assert.InDelta(t, 20.0, got.Total, 0.001)
	assert.NotEmpty(t, got.ProcessedAt)
}

func TestHandleOrderMessageIsIdempotent(t *testing.T) {
	repo := setupTestRepo(t)
	orders := NewOrdersService(repo, metrics.NewMetricsService(false))
	ctx := context.Background()

	payload := `{"order_id":"o1","total":19.5}`
	require.NoError(t, orders.HandleMessage(ctx, payload))
	require.NoError(t, orders.HandleMessage(ctx, payload))

	listed, err := orders.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, listed.Orders, 1)
}

func TestHandleOrderMessageRejectsMalformedPayload(t *testing.T) {
	repo := setupTestRepo(t)
	orders := NewOrdersService(repo, metrics.NewMetricsService(false))
	ctx := context.Background()

	assert.Error(t, orders.HandleMessage(ctx, `not json`))
	assert.Error(t, orders.HandleMessage(ctx, `{"total":5.0}`))

	listed, err := orders.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed.Orders)
}
