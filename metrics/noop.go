package metrics

type NoopMetricsService struct {
}

func newNoopMetricsService() *NoopMetricsService {
	return &NoopMetricsService{}
}

func (nms *NoopMetricsService) IncMessagesEnqueuedTotalBy(count int64, queueName string) {
}

func (nms *NoopMetricsService) IncMessagesClaimedTotalBy(count int64, queueName string) {
}

func (nms *NoopMetricsService) IncMessagesAckedTotalBy(count int64, queueName string) {
}

func (nms *NoopMetricsService) IncHandlerFailuresTotalBy(count int64, queueName string) {
}

func (nms *NoopMetricsService) SetQueueDepth(queueName string, depth int64) {
}

func (nms *NoopMetricsService) IncOrdersProcessedTotalBy(count int64) {
}

func (nms *NoopMetricsService) IncReservationsAppliedTotalBy(count int64) {
}

func (nms *NoopMetricsService) IncReservationsRejectedTotalBy(count int64, reason string) {
}
