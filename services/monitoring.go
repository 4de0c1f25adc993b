package services

import (
	"context"

	"stayflow/common"
	"stayflow/db"
)

type MonitoringService struct {
	repo         *db.StayflowRepo
	queueService *QueueService
}

func NewMonitoringService(repo *db.StayflowRepo, queueService *QueueService) *MonitoringService {
	return &MonitoringService{
		repo:         repo,
		queueService: queueService,
	}
}

func (ms *MonitoringService) IsHealthy(ctx context.Context) bool {
	err := ms.repo.Ping(ctx)
	return err == nil
}

// Backlog reports the number of pending messages per queue.
func (ms *MonitoringService) Backlog(ctx context.Context) (map[string]int64, error) {
	backlog := make(map[string]int64)
	for _, queue := range []string{common.OrdersQueue, common.ReservationsQueue} {
		count, err := ms.queueService.PendingCount(queue, ctx)
		if err != nil {
			return nil, err
		}
		backlog[queue] = count
	}
	return backlog, nil
}
