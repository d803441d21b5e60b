package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type.
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is reports whether err matches target, following wrap chains.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the error code from an error, defaulting to INTERNAL for
// foreign errors and OK for nil.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMeta extracts metadata from an error, if any.
func GetMeta(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}

	return nil
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument checks if an error is an invalid argument error.
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsFailedPrecondition checks if an error is a failed precondition error.
func IsFailedPrecondition(err error) bool {
	return GetCode(err) == CodeFailedPrecondition
}

// IsDataLoss checks if an error signals corrupt content data.
func IsDataLoss(err error) bool {
	return GetCode(err) == CodeDataLoss
}

// IsInternal checks if an error is an internal error.
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}
