package services

import (
	"context"
	"encoding/json"

	"stayflow/common"
	"stayflow/db"
	"stayflow/metrics"

	"github.com/rs/zerolog/log"
)

// QueueService is the only write path to the durable queue. Producers enqueue
// through it, the worker claims and acknowledges through it; nothing touches
// queued_messages rows directly.
type QueueService struct {
	repo           *db.StayflowRepo
	metricsService metrics.Service
}

func NewQueueService(repo *db.StayflowRepo, metricsService metrics.Service) *QueueService {
	return &QueueService{
		repo:           repo,
		metricsService: metricsService,
	}
}

// Enqueue serializes the payload and durably stores it as pending. It returns
// as soon as the row is committed: producers never wait on consumer outcomes.
func (qs *QueueService) Enqueue(queue string, payload any, ctx context.Context) (int64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to serialize payload")
		return 0, common.ErrInternal
	}

	messageID, err := qs.repo.InsertMessage(queue, string(body), ctx)
	if err != nil {
		return 0, err
	}

	qs.metricsService.IncMessagesEnqueuedTotalBy(1, queue)
	return messageID, nil
}

// Claim returns the oldest pending message of the queue, or nil when the
// queue is drained or the claim race was lost this cycle.
func (qs *QueueService) Claim(queue string, ctx context.Context) (*db.ClaimedMessage, error) {
	msg, err := qs.repo.SelectMessageForProcessing(queue, ctx)
	if err != nil {
		return nil, err
	}
	if msg != nil {
		qs.metricsService.IncMessagesClaimedTotalBy(1, queue)
	}
	return msg, nil
}

func (qs *QueueService) Ack(queue string, messageID int64, ctx context.Context) error {
	if err := qs.repo.UpdateMessageDone(messageID, ctx); err != nil {
		return err
	}
	qs.metricsService.IncMessagesAckedTotalBy(1, queue)
	return nil
}

func (qs *QueueService) PendingCount(queue string, ctx context.Context) (int64, error) {
	return qs.repo.CountPendingMessages(queue, ctx)
}
