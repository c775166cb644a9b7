package errors

import (
	"errors"
)

// As is errors.As narrowed to *Error
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is is errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of err, CodeOK for nil and CodeInternal for
// errors that are not ours.
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

// GetMeta returns the metadata of err, if any
func GetMeta(err error) map[string]any {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}
	return nil
}

// GetMessage returns the outermost player-facing message
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}

	return err.Error()
}

// IsNotFound reports whether err carries CodeNotFound
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument reports whether err carries CodeInvalidArgument
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsAlreadyExists reports whether err carries CodeAlreadyExists
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

// IsPermissionDenied reports whether err carries CodePermissionDenied
func IsPermissionDenied(err error) bool {
	return GetCode(err) == CodePermissionDenied
}

// IsInternal reports whether err carries CodeInternal
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

// IsResourceExhausted reports whether err carries CodeResourceExhausted
func IsResourceExhausted(err error) bool {
	return GetCode(err) == CodeResourceExhausted
}

// IsFailedPrecondition reports whether err carries CodeFailedPrecondition
func IsFailedPrecondition(err error) bool {
	return GetCode(err) == CodeFailedPrecondition
}
