package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stayflow/common"
	"stayflow/services"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Router struct {
	cartService         *services.CartService
	ordersService       *services.OrdersService
	reservationsService *services.ReservationsService
	catalogService      *services.CatalogService
	monitoringService   *services.MonitoringService
}

func NewStayflowRouter(
	cartService *services.CartService,
	ordersService *services.OrdersService,
	reservationsService *services.ReservationsService,
	catalogService *services.CatalogService,
	monitoringService *services.MonitoringService,
) *Router {
	return &Router{
		cartService:         cartService,
		ordersService:       ordersService,
		reservationsService: reservationsService,
		catalogService:      catalogService,
		monitoringService:   monitoringService,
	}
}

func (sr *Router) NewRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(requestLogger)

	router.Get("/healthcheck", sr.healthcheck)
	router.Get("/health", sr.health)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Post("/items", sr.addCartItem)
			r.Get("/", sr.getCart)
			r.Post("/checkout", sr.checkout)
		})

		r.Get("/orders", sr.listOrders)

		r.Post("/hotels", sr.createHotel)
		r.Get("/hotels", sr.listHotels)
		r.Get("/hotels/{hotelId}/room-types", sr.listRoomTypes)

		r.Post("/room-types", sr.createRoomType)
		r.Get("/room-types/{roomTypeId}/rate-plans", sr.listRatePlans)

		r.Post("/rate-plans", sr.createRatePlan)

		r.Post("/inventory", sr.createInventoryItem)
		r.Get("/inventory", sr.getInventoryRange)

		r.Post("/reservations", sr.createReservation)
	})

	return router
}

func (sr *Router) addCartItem(w http.ResponseWriter, req *http.Request) {
	var addItem common.AddCartItemRequest
	if err := json.NewDecoder(req.Body).Decode(&addItem); err != nil {
		log.Error().Err(err).Msg("failed to decode request body")
		sr.sendErrorResponse(w, http.StatusBadRequest, common.ErrCodeBadRequestInvalidBody)
		return
	}

	cart, err := sr.cartService.AddItem(addItem)
	if err != nil {
		sr.sendResponseFromError(w, err)
		return
	}
	sr.sendJsonResponse(w, http.StatusCreated, cart)
}

func (sr *Router) getCart(w http.ResponseWriter, req *http.Request) {
	sr.sendJsonResponse(w, http.StatusOK, sr.cartService.Cart())
}

func (sr *Router) checkout(w http.ResponseWriter, req *http.Request) {
	resp, err := sr.cartService.Checkout(req.Context())
	if err != nil {
		sr.sendResponseFromError(w, err)
		return
	}
	sr.sendJsonResponse(w, http.StatusAccepted, resp)
}

func (sr *Router) listOrders(w http.ResponseWriter, req *http.Request) {
	orders, err := sr.ordersService.ListOrders(req.Context())
	if err != nil {
		sr.sendResponseFromError(w, err)
		return
	}
	sr.sendJsonResponse(w, http.StatusOK, orders)
}

func (sr *Router) createHotel(w http.ResponseWriter, req *http.Request) {
	var newHotel common.NewHotelRequest
	if err := json.NewDecoder(req.Body).Decode(&newHotel); err != nil {
		log.Error().Err(err).Msg("failed to decode request body")
		sr.sendErrorResponse(w, http.StatusBadRequest, common.ErrCodeBadRequestInvalidBody)
		return
	}

	hotel, err := sr.catalogService.CreateHotel(newHotel, req.Context())
	if err != nil {
		sr.sendResponseFromError(w, err)
		return
	}
	sr.sendJsonResponse(w, http.StatusCreated, hotel)
}

func (sr *Router) listHotels(w http.ResponseWriter, req *http.Request) {
	hotels, err := sr.catalogService.ListHotels(req.Context())
	if err != nil {
		sr.sendResponseFromError(w, err)
		return
	}
	sr.sendJsonResponse(w, http.StatusOK, hotels)
}

func (sr *Router) createRoomType(w http.ResponseWriter, req *http.Request) {
	var newRoomType common.NewRoomTypeRequest
	if err := json.NewDecoder(req.Body).Decode(&newRoomType); err != nil {
		log.Error().Err(err).Msg("failed to decode request body")
		sr.sendErrorResponse(w, http.StatusBadRequest, common.ErrCodeBadRequestInvalidBody)
		return
	}

	roomType, err := sr.catalogService.CreateRoomType(newRoomType, req.Context())
	if err != nil {
		sr.sendResponseFromError(w, err)
		return
	}
	sr.sendJsonResponse(w, http.StatusCreated, roomType)
}

func (sr *Router) listRoomTypes(w http.ResponseWriter, req *http.Request) {
	hotelID, err := strconv.ParseInt(chi.URLParam(req, "hotelId"), 10, 64)
	if err != nil {
		sr.sendErrorResponse(w, http.StatusBadRequest, common.ErrCodeBadRequestInvalidBody)
		return
	}

	roomTypes, err := sr.catalogService.ListRoomTypes(hotelID, req.Context())
	if err != nil {
		sr.sendResponseFromError(w, err)
		return
	}
	sr.sendJsonResponse(w, http.StatusOK, roomTypes)
}

func (sr *Router) createRatePlan(w http.ResponseWriter, req *http.Request) {
	var newRatePlan common.NewRatePlanRequest
	if err := json.NewDecoder(req.Body).Decode(&newRatePlan); err != nil {
		log.Error().Err(err).Msg("failed to decode request body")
		sr.sendErrorResponse(w, http.StatusBadRequest, common.ErrCodeBadRequestInvalidBody)
		return
	}

	ratePlan, err := sr.catalogService.CreateRatePlan(newRatePlan, req.Context())
	if err != nil {
		sr.sendResponseFromError(w, err)
		return
	}
	sr.sendJsonResponse(w, http.StatusCreated, ratePlan)
}

func (sr *Router) listRatePlans(w http.ResponseWriter, req *http.Request) {
	roomTypeID, err := strconv.ParseInt(chi.URLParam(req, "roomTypeId"), 10, 64)
	if err != nil {
		sr.sendErrorResponse(w, http.StatusBadRequest, common.ErrCodeBadRequestInvalidBody)
		return
	}

	ratePlans, err := sr.catalogService.ListRatePlans(roomTypeID, req.Context())
	if err != nil {
		sr.sendResponseFromError(w, err)
		return
	}
	sr.sendJsonResponse(w, http.StatusOK, ratePlans)
}

func (sr *Router) createInventoryItem(w http.ResponseWriter, req *http.Request) {
	var newItem common.NewInventoryItemRequest
	if err := json.NewDecoder(req.Body).Decode(&newItem); err != nil {
		log.Error().Err(err).Msg("failed to decode request body")
		sr.sendErrorResponse(w, http.StatusBadRequest, common.ErrCodeBadRequestInvalidBody)
		return
	}

	item, err := sr.catalogService.CreateInventoryItem(newItem, req.Context())
	if err != nil {
		sr.sendResponseFromError(w, err)
		return
	}
	sr.sendJsonResponse(w, http.StatusCreated, item)
}

func (sr *Router) getInventoryRange(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()

	roomTypeRaw := query.Get("room_type_id")
	ratePlanRaw := query.Get("rate_plan_id")
	startRaw := query.Get("start_date")
	endRaw := query.Get("end_date")
	if roomTypeRaw == "" || ratePlanRaw == "" || startRaw == "" || endRaw == "" {
		sr.sendErrorResponse(w, http.StatusBadRequest, common.ErrCodeBadRequestMissingParams)
		return
	}

	roomTypeID, err := strconv.ParseInt(roomTypeRaw, 10, 64)
	if err != nil {
		sr.sendErrorResponse(w, http.StatusBadRequest, common.ErrCodeBadRequestInvalidBody)
		return
	}
	ratePlanID, err := strconv.ParseInt(ratePlanRaw, 10, 64)
	if err != nil {
		sr.sendErrorResponse(w, http.StatusBadRequest, common.ErrCodeBadRequestInvalidBody)
		return
	}
	startDate, err := time.Parse(common.DateLayout, startRaw)
	if err != nil {
		sr.sendErrorResponse(w, http.StatusBadRequest, common.ErrCodeBadRequestInvalidDateRange)
		return
	}
	endDate, err := time.Parse(common.DateLayout, endRaw)
	if err != nil {
		sr.sendErrorResponse(w, http.StatusBadRequest, common.ErrCodeBadRequestInvalidDateRange)
		return
	}

	items, err := sr.catalogService.InventoryRange(roomTypeID, ratePlanID, startDate, endDate, req.Context())
	if err != nil {
		sr.sendResponseFromError(w, err)
		return
	}
	sr.sendJsonResponse(w, http.StatusOK, items)
}

func (sr *Router) createReservation(w http.ResponseWriter, req *http.Request) {
	var job common.ReservationJob
	if err := json.NewDecoder(req.Body).Decode(&job); err != nil {
		log.Error().Err(err).Msg("failed to decode request body")
		sr.sendErrorResponse(w, http.StatusBadRequest, common.ErrCodeBadRequestInvalidBody)
		return
	}

	messageID, err := sr.reservationsService.Accept(job, req.Context())
	if err != nil {
		sr.sendResponseFromError(w, err)
		return
	}
	sr.sendJsonResponse(w, http.StatusAccepted, common.ReservationAcceptedResponse{
		Status:    "queued",
		MessageID: messageID,
	})
}

func (sr *Router) healthcheck(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (sr *Router) health(w http.ResponseWriter, req *http.Request) {
	if !sr.monitoringService.IsHealthy(req.Context()) {
		sr.sendErrorResponse(w, http.StatusServiceUnavailable, common.ErrCodeInternal)
		return
	}

	backlog, err := sr.monitoringService.Backlog(req.Context())
	if err != nil {
		sr.sendResponseFromError(w, err)
		return
	}
	sr.sendJsonResponse(w, http.StatusOK, common.HealthResponse{
		Status:  "ok",
		Backlog: backlog,
	})
}

func (sr *Router) sendJsonResponse(w http.ResponseWriter, httpCode int, payload interface{}) {
	respBody, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("error marshaling response body")
		sr.sendErrorResponse(w, http.StatusInternalServerError, common.ErrCodeInternal)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpCode)
	w.Write(respBody)
}

func (sr *Router) sendErrorResponse(w http.ResponseWriter, httpCode int, errCode string) {
	sr.sendJsonResponse(w, httpCode, common.ErrorResponse{Code: errCode})
}

func (sr *Router) sendResponseFromError(w http.ResponseWriter, err error) {
	var se common.StayflowError
	if errors.As(err, &se) {
		sr.sendErrorResponse(w, httpCodeFor(se.Code), se.Code)
	} else {
		sr.sendErrorResponse(w, http.StatusInternalServerError, common.ErrCodeInternal)
	}
}

func httpCodeFor(errCode string) int {
	switch {
	case strings.HasPrefix(errCode, "bad_request"):
		return http.StatusBadRequest
	case strings.HasPrefix(errCode, "not_found"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
