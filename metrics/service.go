package metrics

const (
	NoAvailabilityRejectedReason = "no_availability"
)

type Service interface {
	IncMessagesEnqueuedTotalBy(count int64, queueName string)
	IncMessagesClaimedTotalBy(count int64, queueName string)
	IncMessagesAckedTotalBy(count int64, queueName string)
	IncHandlerFailuresTotalBy(count int64, queueName string)
	SetQueueDepth(queueName string, depth int64)
	IncOrdersProcessedTotalBy(count int64)
	IncReservationsAppliedTotalBy(count int64)
	IncReservationsRejectedTotalBy(count int64, reason string)
}

func NewMetricsService(metricsEnabled bool) Service {
	if metricsEnabled {
		return newPrometheusMetricsService()
	}
	return newNoopMetricsService()
}
