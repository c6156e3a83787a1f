package verifier

import "errors"

var (
	// ErrPINMismatch is returned when the submitted password does not start
	// with the user's PIN.
	ErrPINMismatch = errors.New("pin does not match")
	// ErrWrongLength is returned when the submitted OTP length differs from
	// the token's digit count.
	ErrWrongLength = errors.New("otp has the wrong length")
	// ErrWrongOTP is returned when no counter within the search window
	// produces the submitted OTP.
	ErrWrongOTP = errors.New("wrong otp")
	// ErrReuseExpired is returned when the previously accepted OTP is
	// submitted again after the linger period has passed.
	ErrReuseExpired = errors.New("previous otp has expired")
	// ErrInvalidConfig is returned when the engine configuration is
	// incomplete or out of range.
	ErrInvalidConfig = errors.New("invalid verifier configuration")
)
