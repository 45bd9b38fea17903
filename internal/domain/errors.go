package domain

import "errors"

// Failure taxonomy for the pipeline. Only ErrInvalidQuery is ever surfaced
// to a caller as a hard error; the other three are converted into a
// mock-substituted envelope at the façade boundary.
var (
	ErrInvalidQuery        = errors.New("invalid query")
	ErrUnauthenticated     = errors.New("upstream credentials missing or invalid")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrMalformedResponse   = errors.New("malformed upstream response")
)

// FailureCode maps a pipeline error onto the machine-readable code carried
// in a degraded envelope. Unrecognized errors are reported as unavailability
// so a caller still gets a usable dataset.
func FailureCode(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	default:
		return "upstream_unavailable"
	}
}
