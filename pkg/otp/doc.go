// Package otp implements the one-time-password code generators used by the
// verification engine: the HOTP algorithm from RFC 4226 and the mOTP
// (Mobile-OTP) algorithm from https://motp.sourceforge.net/.
//
// Both generators are pure functions of (key, counter, parameters). They keep
// no state between calls and are safe for concurrent use.
//
// # HOTP
//
// HOTP computes HMAC-SHA1 over the 8-byte big-endian counter, applies the
// RFC 4226 dynamic truncation to obtain a 31-bit value, and renders that
// value twice: as zero-padded decimal digits and as zero-padded lowercase
// hexadecimal digits. Tokens in the field submit either representation, and
// the users-file format does not record which one a given token uses, so the
// verifier compares against both. Decimal output is capped at 10 digits and
// hexadecimal output at 8 digits, the widths a 31-bit value can fill.
//
// # mOTP
//
// MOTP hashes the ASCII concatenation of the counter, the lowercase
// hex-encoded secret key, and the user's PIN with MD5, then truncates the hex
// digest to the requested number of characters. The PIN is part of the hash
// input rather than a prefix of the submitted password.
package otp
