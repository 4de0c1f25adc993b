package metrics

import (
	"context"
	"time"

	"stayflow/metrics"
	"stayflow/services"

	"github.com/rs/zerolog/log"
)

type QueueDepthMetricsJob struct {
	ticker *time.Ticker
	done   chan struct{}
}

func NewQueueDepthMetricsJob(metricsService metrics.Service, queueService *services.QueueService, queues []string, interval time.Duration) *QueueDepthMetricsJob {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				ctx, cancelFunc := context.WithTimeout(context.Background(), interval)
				for _, queue := range queues {
					depth, err := queueService.PendingCount(queue, ctx)
					if err != nil {
						log.Error().Err(err).Str("queue", queue).Msg("failed to fetch queue depth by QueueDepthMetricsJob")
						continue
					}
					metricsService.SetQueueDepth(queue, depth)
				}
				cancelFunc()
			case <-done:
				return
			}
		}
	}()

	return &QueueDepthMetricsJob{
		ticker: ticker,
		done:   done,
	}
}

func (j *QueueDepthMetricsJob) Close() error {
	j.ticker.Stop()
	close(j.done)
	return nil
}
