package heartbeat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const Channel = "heartbeat"

type message struct {
	Service string `json:"service"`
}

// HeartbeatJob periodically announces this instance on a Redis pub/sub
// channel so an external monitor can track liveness. Publish failures are
// logged and never affect request handling or the workers.
type HeartbeatJob struct {
	client *redis.Client
	ticker *time.Ticker
	done   chan struct{}
}

func NewHeartbeatJob(client *redis.Client, serviceID string, interval time.Duration) *HeartbeatJob {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	body, err := json.Marshal(message{Service: serviceID})
	if err != nil {
		// the message is a fixed struct, this cannot realistically fail
		panic(err)
	}

	go func() {
		for {
			select {
			case <-ticker.C:
				ctx, cancelFunc := context.WithTimeout(context.Background(), interval)
				if err := client.Publish(ctx, Channel, body).Err(); err != nil {
					log.Warn().Err(err).Str("service", serviceID).Msg("failed to publish heartbeat")
				}
				cancelFunc()
			case <-done:
				return
			}
		}
	}()

	log.Info().Str("service", serviceID).Dur("interval", interval).Msg("heartbeat started")
	return &HeartbeatJob{
		client: client,
		ticker: ticker,
		done:   done,
	}
}

func (j *HeartbeatJob) Close() error {
	j.ticker.Stop()
	select {
	case <-j.done:
		// already closed
	default:
		close(j.done)
	}
	return nil
}
