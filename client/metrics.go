package client

import "github.com/VictoriaMetrics/metrics"

// Counters for the hot paths of the client runtime. Exposed through the
// default registry; hosts embedding the client can serve them with
// metrics.WritePrometheus.
var (
	metricRequests      = metrics.GetOrCreateCounter(`zcached_client_requests_total`)
	metricRequestErrors = metrics.GetOrCreateCounter(`zcached_client_request_errors_total`)
	metricTimeouts      = metrics.GetOrCreateCounter(`zcached_client_timeouts_total`)
	metricReconnects    = metrics.GetOrCreateCounter(`zcached_client_reconnects_total`)
	metricConnectFails  = metrics.GetOrCreateCounter(`zcached_client_connect_failures_total`)
	metricPoolRemovals  = metrics.GetOrCreateCounter(`zcached_client_pool_removals_total`)
)
