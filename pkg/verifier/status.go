package verifier

// Status is the outcome of a verification reported to the protocol layer.
type Status int

const (
	// StatusGranted means the credential was accepted.
	StatusGranted Status = iota + 1
	// StatusDenied means the credential was rejected: wrong PIN, wrong
	// length, wrong OTP, or an expired reuse.
	StatusDenied
	// StatusNotFound means the username has no record in the users file.
	// Protocol layers usually present this like a denial; it is kept
	// distinct for logging.
	StatusNotFound
	// StatusGeneralError means the engine could not complete the check:
	// the store was unreadable, unlockable, or unwritable.
	StatusGeneralError
)

// String returns a stable lowercase name for logging.
func (s Status) String() string {
	switch s {
	case StatusGranted:
		return "granted"
	case StatusDenied:
		return "denied"
	case StatusNotFound:
		return "not found"
	case StatusGeneralError:
		return "general error"
	default:
		return "unknown"
	}
}
