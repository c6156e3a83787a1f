package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
)

const (
	// MaxDecimalDigits is the widest decimal rendering of the 31-bit
	// truncated HOTP value.
	MaxDecimalDigits = 10
	// MaxHexDigits is the widest hexadecimal rendering of the same value.
	MaxHexDigits = 8
)

var powers10 = [MaxDecimalDigits]uint32{
	10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000, 1000000000,
}

// HOTP generates the RFC 4226 one-time password for the given key and
// counter and returns it in both supported representations: zero-padded
// decimal and zero-padded lowercase hexadecimal.
//
// digits selects the output length; values below 1 are treated as 1. The
// decimal form is capped at MaxDecimalDigits and the hexadecimal form at
// MaxHexDigits regardless of the requested length.
func HOTP(key []byte, counter uint64, digits int) (decimal, hexadecimal string) {
	if digits < 1 {
		digits = 1
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation (RFC 4226 §5.3): the low nibble of the final byte
	// selects a 4-byte window; the top bit is masked off to keep the value
	// positive.
	offset := sum[len(sum)-1] & 0x0f
	value := uint32(sum[offset]&0x7f)<<24 |
		uint32(sum[offset+1])<<16 |
		uint32(sum[offset+2])<<8 |
		uint32(sum[offset+3])

	if digits < MaxDecimalDigits {
		decimal = fmt.Sprintf("%0*d", digits, value%powers10[digits-1])
	} else {
		decimal = fmt.Sprintf("%0*d", MaxDecimalDigits, value)
	}

	if digits < MaxHexDigits {
		hexadecimal = fmt.Sprintf("%0*x", digits, value&(1<<(4*digits)-1))
	} else {
		hexadecimal = fmt.Sprintf("%0*x", MaxHexDigits, value)
	}

	return decimal, hexadecimal
}
