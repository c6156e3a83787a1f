package otp

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
)

// MOTP generates a Mobile-OTP password: the MD5 digest of
// "<counter><hex key><pin>" rendered as lowercase hex and truncated to the
// requested number of characters.
//
// digits values below 1 are treated as 1 and values beyond the digest length
// (32 hex characters) return the full digest.
func MOTP(key []byte, pin string, counter uint64, digits int) string {
	if digits < 1 {
		digits = 1
	}

	material := strconv.FormatUint(counter, 10) + hex.EncodeToString(key) + pin
	sum := md5.Sum([]byte(material))
	digest := hex.EncodeToString(sum[:])

	if digits > len(digest) {
		digits = len(digest)
	}
	return digest[:digits]
}
