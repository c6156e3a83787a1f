package verifier_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otpkit/otpkit/pkg/userstore"
	"github.com/otpkit/otpkit/pkg/verifier"
)

func TestComputeDigestHashPredictsNextCode(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	path := writeUsers(t, "HOTP bob 1234 "+rfc4226KeyHex+" 0\n")
	v := newVerifier(t, path, &now)

	// MD5("bob:Protected Area:1234755224"): pin prefix plus the decimal
	// code at counter 0.
	hash, status, err := v.ComputeDigestHash(context.Background(), "bob", "Protected Area")
	require.NoError(t, err)
	assert.Equal(t, verifier.StatusGranted, status)
	assert.Equal(t, "16e94413fdd7feeb2828615f7fddca74", hash)

	// The prediction is committed: the counter advances as if the user had
	// authenticated with it.
	rec := lookupRecord(t, path, "bob")
	assert.Equal(t, int64(1), rec.Offset)
	assert.Equal(t, rfc4226Codes[0], rec.LastOTP)
	assert.Equal(t, now.Unix(), rec.LastAuth.Unix())
}

func TestComputeDigestHashMOTPOmitsPIN(t *testing.T) {
	t.Parallel()

	now := time.Unix(5, 0)
	path := writeUsers(t, "MOTP alice 1234 0123456789abcdef 0\n")
	v := newVerifier(t, path, &now)

	// MD5("alice:Protected Area:41e571"): the mOTP pin is hashed into the
	// code, never prepended.
	hash, status, err := v.ComputeDigestHash(context.Background(), "alice", "Protected Area")
	require.NoError(t, err)
	assert.Equal(t, verifier.StatusGranted, status)
	assert.Equal(t, "1d0ca9786ada3d083226772d63bb26c4", hash)

	// Time-based tokens keep their slew; only the use marker advances.
	rec := lookupRecord(t, path, "alice")
	assert.Equal(t, int64(0), rec.Offset)
	assert.Equal(t, "41e571", rec.LastOTP)
}

func TestComputeDigestHashWithinLinger(t *testing.T) {
	t.Parallel()

	lastAuth, err := time.ParseInLocation(userstore.TimeLayout, "2026-01-02T15:04:05L", time.Local)
	require.NoError(t, err)
	now := lastAuth.Add(30 * time.Second)

	path := writeUsers(t, "HOTP bob 1234 "+rfc4226KeyHex+" 5 123456 2026-01-02T15:04:05L\n")
	v := newVerifier(t, path, &now)

	// MD5("bob:Protected Area:1234123456"): the previously accepted code
	// is assumed while the linger window is open.
	hash, status, err := v.ComputeDigestHash(context.Background(), "bob", "Protected Area")
	require.NoError(t, err)
	assert.Equal(t, verifier.StatusGranted, status)
	assert.Equal(t, "659c925f111e9c6e711ea2acddfaf5e0", hash)

	// No state moves while lingering.
	rec := lookupRecord(t, path, "bob")
	assert.Equal(t, int64(5), rec.Offset)
	assert.Equal(t, "123456", rec.LastOTP)
	assert.Equal(t, lastAuth.Unix(), rec.LastAuth.Unix())
}

func TestComputeDigestHashUnknownUser(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	path := writeUsers(t, "HOTP bob - "+rfc4226KeyHex+" 0\n")
	v := newVerifier(t, path, &now)

	hash, status, err := v.ComputeDigestHash(context.Background(), "mallory", "Protected Area")
	assert.ErrorIs(t, err, userstore.ErrUserNotFound)
	assert.Equal(t, verifier.StatusNotFound, status)
	assert.Empty(t, hash)
}
