package userstore

import "time"

// Algorithm identifies the OTP scheme a token uses. The set is closed; the
// codec and the code generators match on it exhaustively.
type Algorithm int

const (
	// AlgorithmHOTP is the event- or time-counter HOTP scheme of RFC 4226.
	AlgorithmHOTP Algorithm = iota + 1
	// AlgorithmMOTP is the MD5-based Mobile-OTP scheme.
	AlgorithmMOTP
)

// String returns the token-type spelling of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmHOTP:
		return "HOTP"
	case AlgorithmMOTP:
		return "MOTP"
	default:
		return "???"
	}
}

const (
	// DefaultDigits is the OTP length assumed when the token type does not
	// specify one.
	DefaultDigits = 6
	// MOTPDefaultInterval is the time interval, in seconds, assumed for
	// MOTP tokens that do not specify one.
	MOTPDefaultInterval = 10
	// MinDigits and MaxDigits bound the supported OTP lengths. The upper
	// bound is the widest decimal rendering of the 31-bit HOTP value.
	MinDigits = 1
	MaxDigits = 10
	// MaxKeyBytes bounds the decoded token key length.
	MaxKeyBytes = 256
)

// Record is one user's authentication state as stored in the users file.
// Instances handed out by the store are private copies; callers may mutate
// them freely before passing them back to Update.
type Record struct {
	// Algorithm selects the OTP scheme.
	Algorithm Algorithm
	// TimeInterval is the counter interval in seconds. Zero means the token
	// is event-based and the counter advances once per authentication.
	TimeInterval int
	// Digits is the OTP output length, within [MinDigits, MaxDigits].
	Digits int
	// Username is the record key, matched by exact string comparison.
	Username string
	// Key is the raw shared secret, decoded from hex.
	Key []byte
	// PIN is the static PIN, or empty when the token has none. For HOTP
	// tokens it prefixes the submitted password; for MOTP tokens it is part
	// of the hash input.
	PIN string
	// Offset is the next expected counter for event-based tokens, or the
	// accumulated clock slew for time-based tokens.
	Offset int64
	// LastOTP is the most recently accepted password, or empty if the user
	// has never authenticated.
	LastOTP string
	// LastAuth is the time of the most recent successful authentication.
	LastAuth time.Time
}

// EventBased reports whether the token's counter advances per use rather
// than with time.
func (r Record) EventBased() bool { return r.TimeInterval == 0 }

// Counter returns the expected counter value at the given time: the stored
// offset for event-based tokens, or the time-derived counter adjusted by the
// stored slew for time-based tokens.
func (r Record) Counter(now time.Time) int64 {
	if r.EventBased() {
		return r.Offset
	}
	return now.Unix()/int64(r.TimeInterval) + r.Offset
}
