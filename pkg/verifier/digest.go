package verifier

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/otpkit/otpkit/pkg/logger"
	"github.com/otpkit/otpkit/pkg/otp"
	"github.com/otpkit/otpkit/pkg/userstore"
)

// ComputeDigestHash predicts the password the user is expected to submit and
// returns the lowercase hex MD5 of "username:realm:<pin><otp>" for protocols
// that verify a keyed hash instead of the cleartext password. The PIN prefix
// applies to HOTP tokens only; an mOTP PIN is already folded into the code.
//
// Within the linger window the previously accepted OTP is assumed. Outside
// it the engine must commit to one counter before seeing any proof from the
// user: it predicts the code at the expected counter and optimistically
// records it as used, so event-based tokens advance on every prediction and
// an abandoned challenge burns one counter value. HOTP predictions assume
// the decimal representation.
func (v *Verifier) ComputeDigestHash(ctx context.Context, username, realm string) (string, Status, error) {
	rec, err := v.store.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			v.log.Warn("user not found in users file",
				logger.Store(v.store.Path()), logger.Username(username))
			return "", StatusNotFound, err
		}
		v.log.Error("users file lookup failed",
			logger.Store(v.store.Path()), logger.Username(username), logger.Error(err))
		return "", StatusGeneralError, err
	}

	now := v.now()
	lingering := rec.LastOTP != "" && v.withinLinger(rec.LastAuth, now)

	var expected string
	if lingering {
		v.log.Info("assuming otp reuse within linger time",
			logger.Username(username), logger.Realm(realm), logger.Linger(v.cfg.MaxLinger))
		expected = rec.LastOTP
	} else {
		if rec.LastOTP != "" {
			v.log.Info("not assuming previous expired otp",
				logger.Username(username), logger.Linger(v.cfg.MaxLinger))
		}
		counter := rec.Counter(now)
		v.log.Info("assuming otp at expected counter",
			logger.Username(username), logger.Realm(realm), logger.Counter(counter))
		if rec.Algorithm == userstore.AlgorithmMOTP {
			expected = otp.MOTP(rec.Key, rec.PIN, uint64(counter), rec.Digits)
		} else {
			expected, _ = otp.HOTP(rec.Key, uint64(counter), rec.Digits)
		}

		if rec.EventBased() {
			rec.Offset = counter + 1
		}
		rec.LastOTP = expected
		rec.LastAuth = now
		if err := v.store.Update(ctx, rec); err != nil && !errors.Is(err, userstore.ErrUserNotFound) {
			v.log.Error("failed to persist predicted counter state",
				logger.Store(v.store.Path()), logger.Username(username), logger.Error(err))
			return "", StatusGeneralError, err
		}
	}

	pin := rec.PIN
	if rec.Algorithm == userstore.AlgorithmMOTP {
		pin = ""
	}
	sum := md5.Sum([]byte(fmt.Sprintf("%s:%s:%s%s", rec.Username, realm, pin, expected)))
	return hex.EncodeToString(sum[:]), StatusGranted, nil
}
