package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type PrometheusMetricsService struct {
	messagesEnqueuedTotal     *prometheus.CounterVec
	messagesClaimedTotal      *prometheus.CounterVec
	messagesAckedTotal        *prometheus.CounterVec
	handlerFailuresTotal      *prometheus.CounterVec
	queueDepth                *prometheus.GaugeVec
	ordersProcessedTotal      prometheus.Counter
	reservationsAppliedTotal  prometheus.Counter
	reservationsRejectedTotal *prometheus.CounterVec
}

func newPrometheusMetricsService() *PrometheusMetricsService {
	srv := &PrometheusMetricsService{
		messagesEnqueuedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stayflow_messages_enqueued_total",
				Help: "Total number of messages submitted to the durable queue by producers",
			},
			[]string{"queue_name"},
		),

		messagesClaimedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stayflow_messages_claimed_total",
				Help: "Total number of messages claimed by the worker. Note, this doesn't mean ack-ed, just fetched for processing",
			},
			[]string{"queue_name"},
		),

		messagesAckedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stayflow_messages_acked_total",
				Help: "Total number of messages acknowledged after successful processing",
			},
			[]string{"queue_name"},
		),

		handlerFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stayflow_handler_failures_total",
				Help: "Total number of processing callback failures. Failed messages stay in the processing state and are not requeued",
			},
			[]string{"queue_name"},
		),

		queueDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stayflow_queue_depth",
				Help: "Current number of pending messages in the queue",
			},
			[]string{"queue_name"},
		),

		ordersProcessedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "stayflow_orders_processed_total",
				Help: "Total number of orders durably recorded by the order worker",
			},
		),

		reservationsAppliedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "stayflow_reservations_applied_total",
				Help: "Total number of reservations fully applied against inventory",
			},
		),

		// no room type label here, as rejected reservations are a business
		// outcome reported in aggregate; per-room-type cardinality is not worth it
		reservationsRejectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stayflow_reservations_rejected_total",
				Help: "Total number of reservations rolled back without effect",
			},
			[]string{"reason"},
		),
	}

	prometheus.MustRegister(srv.messagesEnqueuedTotal)
	prometheus.MustRegister(srv.messagesClaimedTotal)
	prometheus.MustRegister(srv.messagesAckedTotal)
	prometheus.MustRegister(srv.handlerFailuresTotal)
	prometheus.MustRegister(srv.queueDepth)
	prometheus.MustRegister(srv.ordersProcessedTotal)
	prometheus.MustRegister(srv.reservationsAppliedTotal)
	prometheus.MustRegister(srv.reservationsRejectedTotal)

	return srv
}

func (pms *PrometheusMetricsService) IncMessagesEnqueuedTotalBy(count int64, queueName string) {
	pms.messagesEnqueuedTotal.WithLabelValues(queueName).Add(float64(count))
}

func (pms *PrometheusMetricsService) IncMessagesClaimedTotalBy(count int64, queueName string) {
	pms.messagesClaimedTotal.WithLabelValues(queueName).Add(float64(count))
}

func (pms *PrometheusMetricsService) IncMessagesAckedTotalBy(count int64, queueName string) {
	pms.messagesAckedTotal.WithLabelValues(queueName).Add(float64(count))
}

func (pms *PrometheusMetricsService) IncHandlerFailuresTotalBy(count int64, queueName string) {
	pms.handlerFailuresTotal.WithLabelValues(queueName).Add(float64(count))
}

func (pms *PrometheusMetricsService) SetQueueDepth(queueName string, depth int64) {
	pms.queueDepth.WithLabelValues(queueName).Set(float64(depth))
}

func (pms *PrometheusMetricsService) IncOrdersProcessedTotalBy(count int64) {
	pms.ordersProcessedTotal.Add(float64(count))
}

func (pms *PrometheusMetricsService) IncReservationsAppliedTotalBy(count int64) {
	pms.reservationsAppliedTotal.Add(float64(count))
}

func (pms *PrometheusMetricsService) IncReservationsRejectedTotalBy(count int64, reason string) {
	pms.reservationsRejectedTotal.WithLabelValues(reason).Add(float64(count))
}
