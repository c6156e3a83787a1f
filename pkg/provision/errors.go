package provision

import "errors"

var (
	// ErrUnsupportedAlgorithm is returned for records whose scheme has no
	// otpauth:// representation.
	ErrUnsupportedAlgorithm = errors.New("algorithm has no key-uri representation")
	// ErrMissingIssuer is returned when no issuer name is given.
	ErrMissingIssuer = errors.New("issuer is required")
	// ErrMissingKey is returned when the record carries no secret key.
	ErrMissingKey = errors.New("record has no key")
	// ErrFailedToGenerateQRCode is returned when PNG rendering fails.
	ErrFailedToGenerateQRCode = errors.New("failed to generate qr code")
)
