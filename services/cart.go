package services

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"stayflow/common"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Simplified prices to avoid depending on a real catalog.
var priceCatalog = map[string]float64{
	"A001": 10.0,
	"B002": 25.5,
	"C003": 7.75,
}

const defaultUnitPrice = 12.0

// CartService keeps the shopping cart in memory; only the checkout outcome is
// durable, via the orders queue.
type CartService struct {
	mu           sync.Mutex
	items        []common.CartItem
	queueService *QueueService
}

func NewCartService(queueService *QueueService) *CartService {
	return &CartService{
		queueService: queueService,
	}
}

func (cs *CartService) AddItem(req common.AddCartItemRequest) (*common.CartResponse, error) {
	itemID := strings.TrimSpace(req.ItemID)
	if itemID == "" || req.Quantity <= 0 {
		return nil, common.ErrBadRequestInvalidItem
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.items = append(cs.items, common.CartItem{ItemID: itemID, Quantity: req.Quantity})
	return cs.cartLocked(), nil
}

func (cs *CartService) Cart() *common.CartResponse {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.cartLocked()
}

// Checkout publishes the order onto the durable queue and returns immediately.
// There is no synchronous call into order processing: if the consumer is down,
// the order waits in the backlog.
func (cs *CartService) Checkout(ctx context.Context) (*common.CheckoutResponse, error) {
	cs.mu.Lock()
	items := make([]common.CartItem, len(cs.items))
	copy(items, cs.items)
	cs.mu.Unlock()

	if len(items) == 0 {
		return nil, common.ErrBadRequestEmptyCart
	}

	order := common.OrderPayload{
		OrderID:   uuid.New().String(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Items:     items,
		Total:     calculateTotal(items),
	}

	messageID, err := cs.queueService.Enqueue(common.OrdersQueue, order, ctx)
	if err != nil {
		return nil, err
	}

	log.Info().Str("order_id", order.OrderID).Int64("message_id", messageID).Msg("order queued")
	return &common.CheckoutResponse{
		Status:    "queued",
		OrderID:   order.OrderID,
		MessageID: messageID,
	}, nil
}

func (cs *CartService) cartLocked() *common.CartResponse {
	items := make([]common.CartItem, len(cs.items))
	copy(items, cs.items)
	return &common.CartResponse{
		Items: items,
		Total: calculateTotal(items),
	}
}

func calculateTotal(items []common.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		unitPrice, ok := priceCatalog[item.ItemID]
		if !ok {
			unitPrice = defaultUnitPrice
		}
		total += unitPrice * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}
