package metrics

import (
	"strconv"
	"strings"
	"time"
)

// RecordUpstreamCall records one upstream GraphQL request by operation name
func (m *Metrics) RecordUpstreamCall(operation string, statusCode int, duration time.Duration, err error) {
	m.safeExecute("RecordUpstreamCall", func() {
		status := strconv.Itoa(statusCode)

		m.UpstreamRequestsTotal.WithLabelValues(operation, status).Inc()
		m.UpstreamRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())

		if err != nil || statusCode >= 400 {
			m.UpstreamErrors.WithLabelValues(operation, upstreamErrorType(statusCode, err)).Inc()
		}
	})
}

// upstreamErrorType categorizes error types based on status code and error
func upstreamErrorType(statusCode int, err error) string {
	switch {
	case statusCode == 401:
		return "unauthorized"
	case statusCode == 403:
		return "forbidden"
	case statusCode == 404:
		return "not_found"
	case statusCode == 429:
		return "too_many_requests"
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode >= 500:
		return "server_error"
	}

	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded") {
			return "timeout"
		}
		if strings.Contains(msg, "connection refused") {
			return "connection_refused"
		}
		return "network_error"
	}

	return "unknown"
}
