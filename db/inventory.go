package db

import (
	"context"
	"time"

	"stayflow/common"

	"github.com/rs/zerolog/log"
)

func (sr *StayflowRepo) InsertInventoryItem(item *InventoryItem, ctx context.Context) error {
	query := `
		INSERT INTO inventory_item (room_type_id, rate_plan_id, date, available_quantity)
		VALUES (?, ?, ?, ?);`

	result, err := sr.db.ExecContext(ctx, query,
		item.RoomTypeID,
		item.RatePlanID,
		item.Date,
		item.AvailableQuantity,
	)
	if err != nil {
		log.Error().Err(err).Int64("room_type_id", item.RoomTypeID).Str("date", item.Date).Msg("failed to insert inventory item")
		return common.ErrInternal
	}

	id, err := result.LastInsertId()
	if err != nil {
		return common.ErrInternal
	}
	item.ID = id
	return nil
}

func (sr *StayflowRepo) SelectInventoryRange(roomTypeID int64, ratePlanID int64, startDate time.Time, endDate time.Time, ctx context.Context) ([]InventoryItem, error) {
	query := `
		SELECT id, room_type_id, rate_plan_id, date, available_quantity
		FROM inventory_item
		WHERE room_type_id = ? AND rate_plan_id = ? AND date >= ? AND date < ?
		ORDER BY date;`

	rows, err := sr.db.QueryContext(ctx, query,
		roomTypeID,                          // WHERE room_type_id = ?
		ratePlanID,                          // AND rate_plan_id = ?
		startDate.Format(common.DateLayout), // AND date >= ?
		endDate.Format(common.DateLayout),   // AND date < ?
	)
	if err != nil {
		log.Error().Err(err).Int64("room_type_id", roomTypeID).Msg("failed to select inventory range")
		return nil, common.ErrInternal
	}
	defer rows.Close()

	var items []InventoryItem
	for rows.Next() {
		var item InventoryItem
		if err := rows.Scan(&item.ID, &item.RoomTypeID, &item.RatePlanID, &item.Date, &item.AvailableQuantity); err != nil {
			log.Error().Err(err).Msg("failed to scan inventory item")
			return nil, common.ErrInternal
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.ErrInternal
	}
	return items, nil
}

// ApplyReservation decrements one unit of availability for every night in
// [startDate, endDate) inside a single write transaction. Nights are taken in
// ascending date order, so concurrent reservations always contend for rows in
// the same order. A missing row or a sold-out night aborts the whole
// transaction with ErrNoAvailability: either every night is decremented or
// none is.
func (sr *StayflowRepo) ApplyReservation(roomTypeID int64, ratePlanID int64, startDate time.Time, endDate time.Time, ctx context.Context) error {
	tx, err := sr.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin reservation transaction")
		return common.ErrInternal
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE inventory_item
		SET available_quantity = available_quantity - 1
		WHERE room_type_id = ? AND rate_plan_id = ? AND date = ? AND available_quantity > 0;`

	for current := startDate; current.Before(endDate); current = current.AddDate(0, 0, 1) {
		result, err := tx.ExecContext(ctx, query,
			roomTypeID,                        // WHERE room_type_id = ?
			ratePlanID,                        // AND rate_plan_id = ?
			current.Format(common.DateLayout), // AND date = ?
		)
		if err != nil {
			log.Error().Err(err).Int64("room_type_id", roomTypeID).Str("date", current.Format(common.DateLayout)).Msg("failed to decrement inventory")
			return common.ErrInternal
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return common.ErrInternal
		}
		if rowsAffected == 0 {
			// no row for this night, or nothing left to sell
			return ErrNoAvailability
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error().Err(err).Int64("room_type_id", roomTypeID).Msg("failed to commit reservation transaction")
		return common.ErrInternal
	}
	return nil
}
