package verifier

import "fmt"

const (
	// DefaultMaxOffset is the default counter-window half-width.
	DefaultMaxOffset = 4
	// DefaultMaxLinger is the default number of seconds an accepted OTP may
	// be reused.
	DefaultMaxLinger = 600
)

// Config is the engine configuration. It is constructed once and passed
// into New; the engine holds no process-wide mutable settings.
type Config struct {
	// UsersFile is the path of the users file holding one record per user.
	UsersFile string `env:"OTP_USERS_FILE" yaml:"users_file"`
	// MaxOffset is the counter-window half-width: how far from the expected
	// counter the search may stray. Event-based tokens search forward only.
	MaxOffset int `env:"OTP_MAX_OFFSET" envDefault:"4" yaml:"max_offset"`
	// MaxLinger is how long, in seconds, an accepted OTP may be submitted
	// again without counting as a replay. Zero disables reuse entirely.
	MaxLinger int `env:"OTP_MAX_LINGER" envDefault:"600" yaml:"max_linger"`
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if c.UsersFile == "" {
		return fmt.Errorf("%w: users file path is not set", ErrInvalidConfig)
	}
	if c.MaxOffset < 0 {
		return fmt.Errorf("%w: max offset must not be negative", ErrInvalidConfig)
	}
	if c.MaxLinger < 0 {
		return fmt.Errorf("%w: max linger must not be negative", ErrInvalidConfig)
	}
	return nil
}
