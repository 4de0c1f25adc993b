package services

import (
	"context"
	"time"

	"stayflow/common"
	"stayflow/db"
)

// CatalogService is a thin pass-through over the catalog and inventory rows.
// Inventory mutation during reservation processing does not go through here,
// only through the reservation transaction.
type CatalogService struct {
	repo *db.StayflowRepo
}

func NewCatalogService(repo *db.StayflowRepo) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

func (cs *CatalogService) CreateHotel(req common.NewHotelRequest, ctx context.Context) (*db.Hotel, error) {
	if req.Name == "" {
		return nil, common.ErrBadRequestInvalidBody
	}

	hotel := db.Hotel{
		Name:     req.Name,
		Address:  req.Address,
		Country:  req.Country,
		City:     req.City,
		Category: req.Category,
	}
	if err := cs.repo.InsertHotel(&hotel, ctx); err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (cs *CatalogService) ListHotels(ctx context.Context) ([]db.Hotel, error) {
	return cs.repo.SelectHotels(ctx)
}

func (cs *CatalogService) CreateRoomType(req common.NewRoomTypeRequest, ctx context.Context) (*db.RoomType, error) {
	if req.HotelPropertyID <= 0 || req.Name == "" || req.Capacity <= 0 {
		return nil, common.ErrBadRequestInvalidBody
	}

	roomType := db.RoomType{
		HotelPropertyID:  req.HotelPropertyID,
		Name:             req.Name,
		Capacity:         req.Capacity,
		BedConfiguration: req.BedConfiguration,
	}
	if err := cs.repo.InsertRoomType(&roomType, ctx); err != nil {
		return nil, err
	}
	return &roomType, nil
}

func (cs *CatalogService) ListRoomTypes(hotelID int64, ctx context.Context) ([]db.RoomType, error) {
	return cs.repo.SelectRoomTypesByHotel(hotelID, ctx)
}

func (cs *CatalogService) CreateRatePlan(req common.NewRatePlanRequest, ctx context.Context) (*db.RatePlan, error) {
	if req.RoomTypeID <= 0 || req.Name == "" || req.Currency == "" {
		return nil, common.ErrBadRequestInvalidBody
	}

	ratePlan := db.RatePlan{
		RoomTypeID:         req.RoomTypeID,
		Name:               req.Name,
		Currency:           req.Currency,
		BasePrice:          req.BasePrice,
		Refundable:         req.Refundable,
		CancellationPolicy: req.CancellationPolicy,
	}
	if err := cs.repo.InsertRatePlan(&ratePlan, ctx); err != nil {
		return nil, err
	}
	return &ratePlan, nil
}

func (cs *CatalogService) ListRatePlans(roomTypeID int64, ctx context.Context) ([]db.RatePlan, error) {
	return cs.repo.SelectRatePlansByRoomType(roomTypeID, ctx)
}

func (cs *CatalogService) CreateInventoryItem(req common.NewInventoryItemRequest, ctx context.Context) (*db.InventoryItem, error) {
	if req.RoomTypeID <= 0 || req.RatePlanID <= 0 || req.AvailableQuantity < 0 {
		return nil, common.ErrBadRequestInvalidBody
	}
	if _, err := time.Parse(common.DateLayout, req.Date); err != nil {
		return nil, common.ErrBadRequestInvalidDateRange
	}

	item := db.InventoryItem{
		RoomTypeID:        req.RoomTypeID,
		RatePlanID:        req.RatePlanID,
		Date:              req.Date,
		AvailableQuantity: req.AvailableQuantity,
	}
	if err := cs.repo.InsertInventoryItem(&item, ctx); err != nil {
		return nil, err
	}
	return &item, nil
}

func (cs *CatalogService) InventoryRange(roomTypeID int64, ratePlanID int64, startDate time.Time, endDate time.Time, ctx context.Context) ([]db.InventoryItem, error) {
	return cs.repo.SelectInventoryRange(roomTypeID, ratePlanID, startDate, endDate, ctx)
}
