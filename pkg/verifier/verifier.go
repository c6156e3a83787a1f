package verifier

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/otpkit/otpkit/pkg/logger"
	"github.com/otpkit/otpkit/pkg/otp"
	"github.com/otpkit/otpkit/pkg/userstore"
)

// Verifier checks submitted one-time passwords against a users file and
// advances counter state on success. It is safe for concurrent use.
type Verifier struct {
	store *userstore.Store
	cfg   Config
	log   *slog.Logger
	now   func() time.Time
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithLogger sets the logger for authentication events. Nil loggers are
// ignored.
func WithLogger(log *slog.Logger) Option {
	return func(v *Verifier) {
		if log != nil {
			v.log = log
		}
	}
}

// WithClock overrides the time source. Tests use it to pin the linger and
// time-counter arithmetic; nil clocks are ignored.
func WithClock(now func() time.Time) Option {
	return func(v *Verifier) {
		if now != nil {
			v.now = now
		}
	}
}

// New creates a Verifier over the users file named by cfg.
func New(cfg Config, opts ...Option) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	v := &Verifier{
		cfg: cfg,
		log: slog.Default(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	store, err := userstore.New(cfg.UsersFile, userstore.WithLogger(v.log))
	if err != nil {
		return nil, err
	}
	v.store = store
	return v, nil
}

// VerifyPassword checks the password submitted for username and returns the
// authentication outcome. The error carries the reason for non-granted
// outcomes; callers decide how much of it to surface.
//
// On a granted first use the user's record is rewritten with the advanced
// counter state before the call returns, so an immediate replay from another
// client falls under the reuse rules.
func (v *Verifier) VerifyPassword(ctx context.Context, username, password string) (Status, error) {
	rec, err := v.store.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			v.log.Warn("user not found in users file",
				logger.Store(v.store.Path()), logger.Username(username))
			return StatusNotFound, err
		}
		v.log.Error("users file lookup failed",
			logger.Store(v.store.Path()), logger.Username(username), logger.Error(err))
		return StatusGeneralError, err
	}

	// An mOTP PIN is an input to the code itself; only HOTP tokens carry
	// the PIN as a password prefix.
	submitted := password
	if rec.Algorithm != userstore.AlgorithmMOTP {
		var ok bool
		submitted, ok = strings.CutPrefix(password, rec.PIN)
		if !ok {
			v.log.Info("pin does not match", logger.Username(username))
			return StatusDenied, ErrPINMismatch
		}
	}

	if len(submitted) != rec.Digits {
		v.log.Info("otp has the wrong length",
			logger.Username(username),
			slog.Int("got", len(submitted)), slog.Int("want", rec.Digits))
		return StatusDenied, ErrWrongLength
	}

	now := v.now()
	if rec.LastOTP != "" && submitted == rec.LastOTP {
		if v.withinLinger(rec.LastAuth, now) {
			v.log.Info("accepting otp reuse within linger time",
				logger.Username(username), logger.Linger(v.cfg.MaxLinger))
			return StatusGranted, nil
		}
		v.log.Info("previous otp has expired",
			logger.Username(username), logger.Linger(v.cfg.MaxLinger))
		return StatusDenied, ErrReuseExpired
	}

	counter := rec.Counter(now)
	adjust, found := v.searchWindow(rec, counter, submitted)
	if !found {
		v.log.Info("wrong otp", logger.Username(username))
		return StatusDenied, ErrWrongOTP
	}
	v.log.Info("accepting otp",
		logger.Username(username), logger.Counter(counter+adjust), logger.Adjust(adjust))

	if rec.EventBased() {
		rec.Offset = counter + adjust + 1
	} else {
		rec.Offset += adjust
	}
	rec.LastOTP = submitted
	rec.LastAuth = now

	if err := v.store.Update(ctx, rec); err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			// The record vanished between lookup and rewrite. The submitted
			// OTP was valid, so grant; there is no state left to advance.
			v.log.Warn("record disappeared before state update",
				logger.Store(v.store.Path()), logger.Username(username))
			return StatusGranted, nil
		}
		v.log.Error("failed to persist advanced counter state",
			logger.Store(v.store.Path()), logger.Username(username), logger.Error(err))
		return StatusGeneralError, err
	}
	return StatusGranted, nil
}

// searchWindow looks for a counter whose code matches the submitted OTP. The
// expected counter is tried first; then, on a miss, counters up to MaxOffset
// away. Event-based tokens only search forward because an already used
// counter can never recur; time-based tokens search both directions to absorb
// clock skew.
func (v *Verifier) searchWindow(rec userstore.Record, counter int64, submitted string) (adjust int64, found bool) {
	if v.matches(rec, counter, submitted) {
		return 0, true
	}

	start, stop := int64(1), int64(v.cfg.MaxOffset)
	if !rec.EventBased() {
		start = -int64(v.cfg.MaxOffset)
	}
	for adjust = start; adjust <= stop; adjust++ {
		if adjust == 0 {
			continue
		}
		if v.matches(rec, counter+adjust, submitted) {
			return adjust, true
		}
	}
	return 0, false
}

// matches reports whether the token would emit the submitted OTP at the given
// counter. Decimal codes are compared exactly, hexadecimal ones
// case-insensitively.
func (v *Verifier) matches(rec userstore.Record, counter int64, submitted string) bool {
	if rec.Algorithm == userstore.AlgorithmMOTP {
		code := otp.MOTP(rec.Key, rec.PIN, uint64(counter), rec.Digits)
		return strings.EqualFold(submitted, code)
	}
	decimal, hexadecimal := otp.HOTP(rec.Key, uint64(counter), rec.Digits)
	return submitted == decimal || strings.EqualFold(submitted, hexadecimal)
}

// withinLinger reports whether now still falls in the reuse window that
// opened at lastAuth.
func (v *Verifier) withinLinger(lastAuth, now time.Time) bool {
	if lastAuth.IsZero() {
		return false
	}
	return !now.Before(lastAuth) && now.Before(lastAuth.Add(time.Duration(v.cfg.MaxLinger)*time.Second))
}
