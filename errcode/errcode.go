package errcode

// Code is a stable HAL error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Provider registry
	DuplicateRegistration Code = "duplicate_registration"
	AlreadyActive         Code = "already_active"
	NoActiveProvider      Code = "no_active_provider"

	// Pins
	CapabilityUnsupported Code = "capability_unsupported"
	CapabilityMismatch    Code = "capability_mismatch"
	PinNotFound           Code = "pin_not_found"
	DuplicateName         Code = "duplicate_name"
	TableExhausted        Code = "table_exhausted"
	PinInUse              Code = "pin_in_use"

	// Buses
	LockUnavailable    Code = "lock_unavailable" // expected, retryable
	BusOperationFailed Code = "bus_operation_failed"

	Error Code = "error" // generic fallback
)

// E carries a code plus operation context and an optional cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
