package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNameSpinsTotal          = "spins_total"
	MetricNameSpinsDenied         = "spins_denied_total"
	MetricNamePaymentIntents      = "payment_intents_total"
	MetricNameEntitlementCredited = "entitlement_credited_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextSpinsTotal          = "Total number of settled spins"
	HelpTextSpinsDenied         = "Total number of denied spin requests"
	HelpTextPaymentIntents      = "Total number of payment intent transitions"
	HelpTextEntitlementCredited = "Total entitlement credited from confirmed payments, in minor units"
)

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelResult = "result"
	LabelReason = "reason"
	LabelPrize  = "prize"
)

// Spin result label values
const (
	ResultWin  = "win"
	ResultLose = "lose"
)

// HTTPLatencyBuckets covers the expected range of an in-memory game API.
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
