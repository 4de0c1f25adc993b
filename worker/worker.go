package worker

import (
	"context"
	"sync"
	"time"

	"stayflow/metrics"
	"stayflow/services"

	"github.com/rs/zerolog/log"
)

// Handler is the processing callback invoked with a claimed message's payload.
// A nil return acknowledges the message; an error leaves it in the processing
// state, unacknowledged.
type Handler func(ctx context.Context, payload string) error

// Worker is a single logical consumer of one queue. It claims one message at
// a time, runs the handler synchronously and acknowledges on success. Pending
// backlog survives restarts in the store, so the first poll after a restart
// drains whatever accumulated while the consumer was down.
type Worker struct {
	name           string
	queue          string
	queueService   *services.QueueService
	handler        Handler
	interval       time.Duration
	metricsService metrics.Service

	mu      sync.Mutex
	started bool
	done    chan struct{}
}

func New(name string, queue string, queueService *services.QueueService, handler Handler, interval time.Duration, metricsService metrics.Service) *Worker {
	return &Worker{
		name:           name,
		queue:          queue,
		queueService:   queueService,
		handler:        handler,
		interval:       interval,
		metricsService: metricsService,
		done:           make(chan struct{}),
	}
}

// Start launches the polling loop. It is safe to call from concurrent
// bootstrap paths: only the first call starts the loop.
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return
	}
	w.started = true

	go w.run()
	log.Info().Str("worker", w.name).Str("queue", w.queue).Msg("worker started")
}

// Stop requests a cooperative shutdown. The signal is checked only between
// iterations: a message already claimed is processed to completion.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}

	select {
	case <-w.done:
		// already stopped
	default:
		close(w.done)
	}
}

func (w *Worker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			log.Info().Str("worker", w.name).Msg("worker stopped")
			return
		default:
		}

		msg, err := w.queueService.Claim(w.queue, context.Background())
		if err != nil || msg == nil {
			// storage contention and claim race losses are both retried on
			// the next poll, neither is fatal to the loop
			select {
			case <-w.done:
				log.Info().Str("worker", w.name).Msg("worker stopped")
				return
			case <-ticker.C:
			}
			continue
		}

		if err := w.handler(context.Background(), msg.Payload); err != nil {
			// not acknowledged: the message stays in the processing state.
			// There is no requeue or lease timeout, matching the fire-and-forget
			// contract; the failure is surfaced through logs and metrics only.
			w.metricsService.IncHandlerFailuresTotalBy(1, w.queue)
			log.Error().Err(err).Str("worker", w.name).Int64("message_id", msg.ID).Msg("failed to process message")
			continue
		}

		if err := w.queueService.Ack(w.queue, msg.ID, context.Background()); err != nil {
			log.Error().Err(err).Str("worker", w.name).Int64("message_id", msg.ID).Msg("failed to acknowledge message")
		}
	}
}
