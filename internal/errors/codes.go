package errors

import "net/http"

// Code classifies an error for logging and transport mapping.
type Code string

// Error codes used across the loot engine. The generation pass maps its
// failure taxonomy onto these: missing content data is NOT_FOUND, corrupt
// preset data is DATA_LOSS, an unsatisfiable required draw is
// FAILED_PRECONDITION.
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeResourceExhausted  Code = "RESOURCE_EXHAUSTED"
	CodeDataLoss           Code = "DATA_LOSS"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

// String returns the string representation of the code.
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the HTTP status the code maps to on the serving surface.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	case CodeResourceExhausted:
		return http.StatusTooManyRequests
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
