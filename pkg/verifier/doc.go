// Package verifier implements the OTP verification engine: it checks a
// submitted one-time password against a user's persistent record and, on
// success, advances the record's counter state in the users file.
//
// The engine is consumed by an external protocol layer (HTTP Basic/Digest or
// anything else that produces a username and a password string). It has two
// entry points:
//
//   - VerifyPassword compares a submitted password against the user's token
//     and reports Granted, Denied, NotFound, or GeneralError.
//   - ComputeDigestHash predicts the password the user is expected to submit
//     and returns the keyed hash "username:realm:<pin><otp>" for digest-style
//     protocols that never see the cleartext password.
//
// # Verification flow
//
// A password check walks a fixed sequence: record lookup, PIN-prefix check
// (HOTP only; an mOTP PIN is hashed into the code instead), length check,
// reuse check, and finally the counter-window search. A password equal to
// the last accepted one is granted again, without advancing any state, as
// long as it is submitted within the configured linger period; afterwards it
// is denied as expired. The window search tries the expected counter first,
// then nearby counters: event-based tokens only search forward (counters
// never repeat), time-based tokens search both directions to tolerate clock
// skew between token and server. The first matching counter wins and the
// record is rewritten with the advanced offset, the accepted password, and
// the authentication time.
//
// Generated codes are compared in both representations a token may emit:
// decimal exactly, hexadecimal case-insensitively. The users file does not
// record which representation a token uses, so both are always tried; see
// the otp package.
//
// # Concurrency
//
// A Verifier carries no mutable state of its own: every call re-reads the
// users file and updates are serialized by the store's advisory lock, so one
// Verifier may be shared by any number of request-handling goroutines, and
// any number of processes may share one users file.
package verifier
