package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stayflow/common"
	"stayflow/db"
	"stayflow/metrics"

	"github.com/rs/zerolog/log"
)

type ReservationsService struct {
	repo           *db.StayflowRepo
	queueService   *QueueService
	metricsService metrics.Service
}

func NewReservationsService(repo *db.StayflowRepo, queueService *QueueService, metricsService metrics.Service) *ReservationsService {
	return &ReservationsService{
		repo:           repo,
		queueService:   queueService,
		metricsService: metricsService,
	}
}

// Accept validates the reservation command and enqueues it. The 202 contract
// is "the job was durably queued", not "the reservation will succeed".
func (rs *ReservationsService) Accept(job common.ReservationJob, ctx context.Context) (int64, error) {
	if job.RoomTypeID <= 0 || job.RatePlanID <= 0 {
		return 0, common.ErrBadRequestInvalidBody
	}
	startDate, endDate, err := parseDateRange(job.StartDate, job.EndDate)
	if err != nil {
		return 0, err
	}
	if !startDate.Before(endDate) {
		return 0, common.ErrBadRequestInvalidDateRange
	}

	return rs.queueService.Enqueue(common.ReservationsQueue, job, ctx)
}

// HandleMessage is the processing callback for the reservations queue.
// Insufficient availability is a business outcome: the transaction rolled
// back with zero effect and the job is considered handled. Anything else
// propagates so the worker leaves the message unacknowledged.
func (rs *ReservationsService) HandleMessage(ctx context.Context, payload string) error {
	var job common.ReservationJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return fmt.Errorf("malformed reservation payload: %w", err)
	}

	startDate, endDate, err := parseDateRange(job.StartDate, job.EndDate)
	if err != nil {
		return fmt.Errorf("reservation payload has invalid dates: %w", err)
	}

	err = rs.repo.ApplyReservation(job.RoomTypeID, job.RatePlanID, startDate, endDate, ctx)
	if errors.Is(err, db.ErrNoAvailability) {
		rs.metricsService.IncReservationsRejectedTotalBy(1, metrics.NoAvailabilityRejectedReason)
		log.Warn().
			Int64("room_type_id", job.RoomTypeID).
			Int64("rate_plan_id", job.RatePlanID).
			Str("start_date", job.StartDate).
			Str("end_date", job.EndDate).
			Msg("reservation rejected, no availability")
		return nil
	}
	if err != nil {
		return err
	}

	rs.metricsService.IncReservationsAppliedTotalBy(1)
	log.Info().
		Int64("room_type_id", job.RoomTypeID).
		Int64("rate_plan_id", job.RatePlanID).
		Str("start_date", job.StartDate).
		Str("end_date", job.EndDate).
		Msg("reservation applied")
	return nil
}

func parseDateRange(start string, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(common.DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, common.ErrBadRequestInvalidDateRange
	}
	endDate, err := time.Parse(common.DateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, common.ErrBadRequestInvalidDateRange
	}
	return startDate, endDate, nil
}
