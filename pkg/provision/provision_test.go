package provision_test

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	pquerna "github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otpkit/otpkit/pkg/provision"
	"github.com/otpkit/otpkit/pkg/userstore"
)

func eventRecord() userstore.Record {
	return userstore.Record{
		Algorithm: userstore.AlgorithmHOTP,
		Digits:    6,
		Username:  "bob",
		Key:       []byte("12345678901234567890"),
		Offset:    5,
	}
}

func TestURI(t *testing.T) {
	t.Parallel()

	t.Run("event-based record", func(t *testing.T) {
		t.Parallel()
		uri, err := provision.URI(eventRecord(), "Example")
		require.NoError(t, err)
		assert.Equal(t,
			"otpauth://hotp/Example:bob?algorithm=SHA1&counter=5&digits=6&issuer=Example&secret=GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ",
			uri)
	})

	t.Run("time-based record", func(t *testing.T) {
		t.Parallel()
		rec := eventRecord()
		rec.TimeInterval = 30
		rec.Offset = 0

		uri, err := provision.URI(rec, "Example")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(uri, "otpauth://totp/Example:bob?"), uri)
		assert.Contains(t, uri, "period=30")
		assert.NotContains(t, uri, "counter=")
	})

	t.Run("parses with an independent implementation", func(t *testing.T) {
		t.Parallel()
		uri, err := provision.URI(eventRecord(), "Example Corp")
		require.NoError(t, err)

		key, err := pquerna.NewKeyFromURL(uri)
		require.NoError(t, err)
		assert.Equal(t, "hotp", key.Type())
		assert.Equal(t, "Example Corp", key.Issuer())
		assert.Equal(t, "bob", key.AccountName())
		assert.Equal(t, "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ", key.Secret())
	})

	t.Run("rejects motp records", func(t *testing.T) {
		t.Parallel()
		rec := eventRecord()
		rec.Algorithm = userstore.AlgorithmMOTP

		_, err := provision.URI(rec, "Example")
		assert.ErrorIs(t, err, provision.ErrUnsupportedAlgorithm)
	})

	t.Run("rejects missing issuer", func(t *testing.T) {
		t.Parallel()
		_, err := provision.URI(eventRecord(), "")
		assert.ErrorIs(t, err, provision.ErrMissingIssuer)
	})

	t.Run("rejects empty key", func(t *testing.T) {
		t.Parallel()
		rec := eventRecord()
		rec.Key = nil

		_, err := provision.URI(rec, "Example")
		assert.ErrorIs(t, err, provision.ErrMissingKey)
	})
}

func TestQRCode(t *testing.T) {
	t.Parallel()

	t.Run("produces a decodable png", func(t *testing.T) {
		t.Parallel()
		img, err := provision.QRCode(eventRecord(), "Example", 256)
		require.NoError(t, err)

		decoded, err := png.Decode(bytes.NewReader(img))
		require.NoError(t, err)
		assert.Equal(t, 256, decoded.Bounds().Dx())
	})

	t.Run("defaults the size", func(t *testing.T) {
		t.Parallel()
		img, err := provision.QRCode(eventRecord(), "Example", 0)
		require.NoError(t, err)

		decoded, err := png.Decode(bytes.NewReader(img))
		require.NoError(t, err)
		assert.Equal(t, 256, decoded.Bounds().Dx())
	})

	t.Run("propagates record errors", func(t *testing.T) {
		t.Parallel()
		rec := eventRecord()
		rec.Algorithm = userstore.AlgorithmMOTP

		_, err := provision.QRCode(rec, "Example", 256)
		assert.ErrorIs(t, err, provision.ErrUnsupportedAlgorithm)
	})
}

func TestQRCodeBase64(t *testing.T) {
	t.Parallel()

	dataURI, err := provision.QRCodeBase64(eventRecord(), "Example", 128)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(dataURI, "data:image/png;base64,"), dataURI)

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURI, "data:image/png;base64,"))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)
}
