package metrics

// Metric names
const (
	MetricNameProfileOperationsTotal = "codex_profile_operations_total"
	MetricNameOperationDuration      = "codex_operation_duration_seconds"
	MetricNameRemoteSyncTotal        = "codex_remote_sync_total"
	MetricNameMalformedItemsTotal    = "codex_malformed_items_total"
	MetricNameDroppedItemsTotal      = "codex_dropped_items_total"
	MetricNameEventsPublished        = "codex_events_published_total"
)

// Help text
const (
	HelpTextProfileOperationsTotal = "Total number of profile operations by operation and outcome"
	HelpTextOperationDuration      = "Duration of profile operations in seconds"
	HelpTextRemoteSyncTotal        = "Total number of remote pushes by status"
	HelpTextMalformedItemsTotal    = "Total number of remote item entries that failed to decode"
	HelpTextDroppedItemsTotal      = "Total number of decoded items refused by an inventory"
	HelpTextEventsPublished        = "Total number of profile events observed by type"
)

// Labels
const (
	LabelOperation = "operation"
	LabelOutcome   = "outcome"
	LabelStatus    = "status"
	LabelType      = "type"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// OperationLatencyBuckets covers local writes through slow remote pushes
var OperationLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
