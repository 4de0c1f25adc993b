package services

import (
	"context"
	"encoding/json"
	"testing"

	"stayflow/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotals(t *testing.T) {
	_, queueService := setupQueueService(t)
	cart := NewCartService(queueService)

	_, err := cart.AddItem(common.AddCartItemRequest{ItemID: "A001", Quantity: 1})
	require.NoError(t, err)
	_, err = cart.AddItem(common.AddCartItemRequest{ItemID: "B002", Quantity: 2})
	require.NoError(t, err)
	// unknown items fall back to the default unit price
	resp, err := cart.AddItem(common.AddCartItemRequest{ItemID: "Z999", Quantity: 1})
	require.NoError(t, err)

	assert.Len(t, resp.Items, 3)
	assert.InDelta(t, 10.0+2*25.5+12.0, resp.Total, 0.001)
}

func TestCartAddItemValidation(t *testing.T) {
	_, queueService := setupQueueService(t)
	cart := NewCartService(queueService)

	_, err := cart.AddItem(common.AddCartItemRequest{ItemID: "  ", Quantity: 1})
	assert.ErrorIs(t, err, common.ErrBadRequestInvalidItem)

	_, err = cart.AddItem(common.AddCartItemRequest{ItemID: "A001", Quantity: 0})
	assert.ErrorIs(t, err, common.ErrBadRequestInvalidItem)

	assert.Empty(t, cart.Cart().Items)
}

func TestCheckoutEmptyCart(t *testing.T) {
	_, queueService := setupQueueService(t)
	cart := NewCartService(queueService)

	_, err := cart.Checkout(context.Background())
	assert.ErrorIs(t, err, common.ErrBadRequestEmptyCart)
}

func TestCheckoutEnqueuesOrder(t *testing.T) {
	_, queueService := setupQueueService(t)
	cart := NewCartService(queueService)
	ctx := context.Background()

	_, err := cart.AddItem(common.AddCartItemRequest{ItemID: "C003", Quantity: 4})
	require.NoError(t, err)

	resp, err := cart.Checkout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "queued", resp.Status)
	assert.NotEmpty(t, resp.OrderID)
	assert.Positive(t, resp.MessageID)

	msg, err := queueService.Claim(common.OrdersQueue, ctx)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, resp.MessageID, msg.ID)

	var order common.OrderPayload
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &order))
	assert.Equal(t, resp.OrderID, order.OrderID)
	assert.InDelta(t, 31.0, order.Total, 0.001)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "C003", order.Items[0].ItemID)
	assert.Equal(t, 4, order.Items[0].Quantity)
	assert.NotEmpty(t, order.CreatedAt)
}
