package db

import (
	"context"

	"stayflow/common"

	"github.com/rs/zerolog/log"
)

func (sr *StayflowRepo) InsertHotel(hotel *Hotel, ctx context.Context) error {
	query := `
		INSERT INTO hotel_property (name, address, country, city, category)
		VALUES (?, ?, ?, ?, ?);`

	result, err := sr.db.ExecContext(ctx, query,
		hotel.Name,
		hotel.Address,
		hotel.Country,
		hotel.City,
		hotel.Category,
	)
	if err != nil {
		log.Error().Err(err).Str("name", hotel.Name).Msg("failed to insert hotel")
		return common.ErrInternal
	}

	id, err := result.LastInsertId()
	if err != nil {
		return common.ErrInternal
	}
	hotel.ID = id
	return nil
}

func (sr *StayflowRepo) SelectHotels(ctx context.Context) ([]Hotel, error) {
	query := `
		SELECT id, name, COALESCE(address, ''), COALESCE(country, ''), COALESCE(city, ''), COALESCE(category, '')
		FROM hotel_property
		ORDER BY id;`

	rows, err := sr.db.QueryContext(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg("failed to select hotels")
		return nil, common.ErrInternal
	}
	defer rows.Close()

	var hotels []Hotel
	for rows.Next() {
		var h Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.Country, &h.City, &h.Category); err != nil {
			log.Error().Err(err).Msg("failed to scan hotel")
			return nil, common.ErrInternal
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, common.ErrInternal
	}
	return hotels, nil
}

func (sr *StayflowRepo) InsertRoomType(roomType *RoomType, ctx context.Context) error {
	query := `
		INSERT INTO room_type (hotel_property_id, name, capacity, bed_configuration)
		VALUES (?, ?, ?, ?);`

	result, err := sr.db.ExecContext(ctx, query,
		roomType.HotelPropertyID,
		roomType.Name,
		roomType.Capacity,
		roomType.BedConfiguration,
	)
	if err != nil {
		log.Error().Err(err).Str("name", roomType.Name).Msg("failed to insert room type")
		return common.ErrInternal
	}

	id, err := result.LastInsertId()
	if err != nil {
		return common.ErrInternal
	}
	roomType.ID = id
	return nil
}

func (sr *StayflowRepo) SelectRoomTypesByHotel(hotelID int64, ctx context.Context) ([]RoomType, error) {
	query := `
		SELECT id, hotel_property_id, name, capacity, COALESCE(bed_configuration, '')
		FROM room_type
		WHERE hotel_property_id = ?
		ORDER BY id;`

	rows, err := sr.db.QueryContext(ctx, query, hotelID)
	if err != nil {
		log.Error().Err(err).Int64("hotel_id", hotelID).Msg("failed to select room types")
		return nil, common.ErrInternal
	}
	defer rows.Close()

	var roomTypes []RoomType
	for rows.Next() {
		var rt RoomType
		if err := rows.Scan(&rt.ID, &rt.HotelPropertyID, &rt.Name, &rt.Capacity, &rt.BedConfiguration); err != nil {
			log.Error().Err(err).Msg("failed to scan room type")
			return nil, common.ErrInternal
		}
		roomTypes = append(roomTypes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, common.ErrInternal
	}
	return roomTypes, nil
}

func (sr *StayflowRepo) InsertRatePlan(ratePlan *RatePlan, ctx context.Context) error {
	query := `
		INSERT INTO rate_plan (room_type_id, name, currency, base_price, refundable, cancellation_policy)
		VALUES (?, ?, ?, ?, ?, ?);`

	result, err := sr.db.ExecContext(ctx, query,
		ratePlan.RoomTypeID,
		ratePlan.Name,
		ratePlan.Currency,
		ratePlan.BasePrice,
		ratePlan.Refundable,
		ratePlan.CancellationPolicy,
	)
	if err != nil {
		log.Error().Err(err).Str("name", ratePlan.Name).Msg("failed to insert rate plan")
		return common.ErrInternal
	}

	id, err := result.LastInsertId()
	if err != nil {
		return common.ErrInternal
	}
	ratePlan.ID = id
	return nil
}

func (sr *StayflowRepo) SelectRatePlansByRoomType(roomTypeID int64, ctx context.Context) ([]RatePlan, error) {
	query := `
		SELECT id, room_type_id, name, currency, base_price, refundable, COALESCE(cancellation_policy, '')
		FROM rate_plan
		WHERE room_type_id = ?
		ORDER BY id;`

	rows, err := sr.db.QueryContext(ctx, query, roomTypeID)
	if err != nil {
		log.Error().Err(err).Int64("room_type_id", roomTypeID).Msg("failed to select rate plans")
		return nil, common.ErrInternal
	}
	defer rows.Close()

	var ratePlans []RatePlan
	for rows.Next() {
		var rp RatePlan
		if err := rows.Scan(&rp.ID, &rp.RoomTypeID, &rp.Name, &rp.Currency, &rp.BasePrice, &rp.Refundable, &rp.CancellationPolicy); err != nil {
			log.Error().Err(err).Msg("failed to scan rate plan")
			return nil, common.ErrInternal
		}
		ratePlans = append(ratePlans, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, common.ErrInternal
	}
	return ratePlans, nil
}
