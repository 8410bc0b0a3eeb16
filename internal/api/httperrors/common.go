package httperrors

import (
	"net/http"
)

const (
	ErrorTypeGeneric     = "generic"
	ErrorTypeUnavailable = "unavailable"
)

// StatusNotHealthy is answered by the management endpoints when a check fails.
const StatusNotHealthy = 521

var (
	ErrMetricsDisabled = NewHTTPError(http.StatusNotFound, ErrorTypeGeneric, "Metrics are not enabled.")
	ErrNodeUnavailable = NewHTTPError(StatusNotHealthy, ErrorTypeUnavailable, "Node is not reachable.")
)
