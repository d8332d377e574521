package domain

import "errors"

// Error taxonomy for data loading and write paths. Load-path errors are
// recovered by the fallback chain rather than surfaced; validation errors
// surface inline; nothing here is fatal to the process.
var (
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrServer             = errors.New("server error")
	ErrMalformedResponse  = errors.New("malformed response")
	ErrValidation         = errors.New("validation failed")
)

// IsRecoverableLoadError reports whether a load failure should advance the
// fallback chain to its next source instead of being surfaced.
func IsRecoverableLoadError(err error) bool {
	return errors.Is(err, ErrNetworkUnavailable) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrServer) ||
		errors.Is(err, ErrMalformedResponse)
}
