package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"stayflow/common"
	"stayflow/db"
	"stayflow/metrics"
	"stayflow/services"
	"stayflow/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server             *httptest.Server
	ordersWorker       *worker.Worker
	reservationsWorker *worker.Worker
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "stayflow.db")
	err := db.RunMigrations("file://../db/migrations", dbPath)
	require.NoError(t, err)

	repo, err := db.NewSQLiteRepo(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
	})

	metricsService := metrics.NewMetricsService(false)
	queueService := services.NewQueueService(repo, metricsService)
	cartService := services.NewCartService(queueService)
	ordersService := services.NewOrdersService(repo, metricsService)
	reservationsService := services.NewReservationsService(repo, queueService, metricsService)
	catalogService := services.NewCatalogService(repo)
	monitoringService := services.NewMonitoringService(repo, queueService)

	ordersWorker := worker.New("orders-worker", common.OrdersQueue, queueService, ordersService.HandleMessage, 10*time.Millisecond, metricsService)
	reservationsWorker := worker.New("reservations-worker", common.ReservationsQueue, queueService, reservationsService.HandleMessage, 10*time.Millisecond, metricsService)
	t.Cleanup(func() {
		ordersWorker.Stop()
		reservationsWorker.Stop()
	})

	router := NewStayflowRouter(cartService, ordersService, reservationsService, catalogService, monitoringService)
	server := httptest.NewServer(router.NewRouter())
	t.Cleanup(server.Close)

	return &testEnv{
		server:             server,
		ordersWorker:       ordersWorker,
		reservationsWorker: reservationsWorker,
	}
}

func (env *testEnv) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(env.server.URL+path, "application/json", bytes.NewReader(encoded))
	require.NoError(t, err)
	return resp
}

func (env *testEnv) getJSON(t *testing.T, path string, out any) int {
	t.Helper()
	resp, err := http.Get(env.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCheckoutFlowEndToEnd(t *testing.T) {
	env := setupTestEnv(t)
	env.ordersWorker.Start()

	resp := env.postJSON(t, "/api/v1/cart/items", common.AddCartItemRequest{ItemID: "A001", Quantity: 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cart := decodeBody[common.CartResponse](t, resp)
	assert.InDelta(t, 20.0, cart.Total, 0.001)

	resp = env.postJSON(t, "/api/v1/cart/checkout", nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	checkout := decodeBody[common.CheckoutResponse](t, resp)
	assert.Equal(t, "queued", checkout.Status)
	require.NotEmpty(t, checkout.OrderID)

	// the worker claims, persists and acknowledges on its next cycle
	require.Eventually(t, func() bool {
		var listed common.ListOrdersResponse
		if code := env.getJSON(t, "/api/v1/orders", &listed); code != http.StatusOK {
			return false
		}
		for _, order := range listed.Orders {
			if order.OrderID == checkout.OrderID && order.ProcessedAt != "" {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)

	var health common.HealthResponse
	require.Equal(t, http.StatusOK, env.getJSON(t, "/health", &health))
	assert.Equal(t, "ok", health.Status)
	assert.EqualValues(t, 0, health.Backlog[common.OrdersQueue])
}

func TestReservationFlowEndToEnd(t *testing.T) {
	env := setupTestEnv(t)
	env.reservationsWorker.Start()

	resp := env.postJSON(t, "/api/v1/hotels", common.NewHotelRequest{Name: "Seaside Inn", City: "Faro"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	hotel := decodeBody[db.Hotel](t, resp)

	resp = env.postJSON(t, "/api/v1/room-types", common.NewRoomTypeRequest{HotelPropertyID: hotel.ID, Name: "Double", Capacity: 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	roomType := decodeBody[db.RoomType](t, resp)

	resp = env.postJSON(t, "/api/v1/rate-plans", common.NewRatePlanRequest{RoomTypeID: roomType.ID, Name: "Flexible", Currency: "EUR", BasePrice: 120, Refundable: true})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ratePlan := decodeBody[db.RatePlan](t, resp)

	for _, day := range []string{"2026-09-01", "2026-09-02"} {
		resp = env.postJSON(t, "/api/v1/inventory", common.NewInventoryItemRequest{
			RoomTypeID:        roomType.ID,
			RatePlanID:        ratePlan.ID,
			Date:              day,
			AvailableQuantity: 1,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp = env.postJSON(t, "/api/v1/reservations", common.ReservationJob{
		RoomTypeID: roomType.ID,
		RatePlanID: ratePlan.ID,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-03",
	})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	accepted := decodeBody[common.ReservationAcceptedResponse](t, resp)
	assert.Equal(t, "queued", accepted.Status)
	assert.Positive(t, accepted.MessageID)

	inventoryPath := fmt.Sprintf("/api/v1/inventory?room_type_id=%d&rate_plan_id=%d&start_date=2026-09-01&end_date=2026-09-03", roomType.ID, ratePlan.ID)
	require.Eventually(t, func() bool {
		var items []db.InventoryItem
		if code := env.getJSON(t, inventoryPath, &items); code != http.StatusOK {
			return false
		}
		if len(items) != 2 {
			return false
		}
		return items[0].AvailableQuantity == 0 && items[1].AvailableQuantity == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestBadRequests(t *testing.T) {
	env := setupTestEnv(t)

	resp, err := http.Post(env.server.URL+"/api/v1/cart/items", "application/json", bytes.NewReader([]byte("not json")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.postJSON(t, "/api/v1/cart/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decodeBody[common.ErrorResponse](t, resp)
	assert.Equal(t, common.ErrCodeBadRequestEmptyCart, errBody.Code)

	resp = env.postJSON(t, "/api/v1/reservations", common.ReservationJob{RoomTypeID: 1, RatePlanID: 1, StartDate: "2026-09-05", EndDate: "2026-09-01"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, env.getJSON(t, "/api/v1/inventory?room_type_id=1", nil))
}

func TestHealthcheck(t *testing.T) {
	env := setupTestEnv(t)

	resp, err := http.Get(env.server.URL + "/healthcheck")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
