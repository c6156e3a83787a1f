package provision

import (
	"encoding/base32"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	skipqrcode "github.com/skip2/go-qrcode"

	"github.com/otpkit/otpkit/pkg/userstore"
)

// defaultSize is the QR image size in pixels used when none is specified.
const defaultSize = 256

// URI renders the record as an otpauth:// key URI for authenticator apps,
// following the Key Uri Format specification:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
//
// Event-based records become hotp URIs carrying the next expected counter;
// time-based records become totp URIs carrying the interval as the period.
func URI(rec userstore.Record, issuer string) (string, error) {
	if rec.Algorithm != userstore.AlgorithmHOTP {
		return "", ErrUnsupportedAlgorithm
	}
	if issuer == "" {
		return "", ErrMissingIssuer
	}
	if len(rec.Key) == 0 {
		return "", ErrMissingKey
	}

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(issuer),
		url.PathEscape(rec.Username),
	)

	query := url.Values{}
	query.Set("secret", base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(rec.Key))
	query.Set("issuer", issuer)
	query.Set("algorithm", "SHA1")
	query.Set("digits", strconv.Itoa(rec.Digits))

	kind := "totp"
	if rec.EventBased() {
		kind = "hotp"
		query.Set("counter", strconv.FormatInt(rec.Offset, 10))
	} else {
		query.Set("period", strconv.Itoa(rec.TimeInterval))
	}

	return fmt.Sprintf("otpauth://%s/%s?%s", kind, label, query.Encode()), nil
}

// QRCode renders the record's key URI as a PNG image. A non-positive size
// falls back to defaultSize pixels.
func QRCode(rec userstore.Record, issuer string, size int) ([]byte, error) {
	uri, err := URI(rec, issuer)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(uri, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return png, nil
}

// QRCodeBase64 renders the record's key URI as a base64 data URI suitable
// for embedding in an <img> tag.
func QRCodeBase64(rec userstore.Record, issuer string, size int) (string, error) {
	png, err := QRCode(rec, issuer, size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}
