// Package userstore reads and rewrites the line-oriented OTP users file that
// holds one authentication record per user.
//
// # File format
//
// The users file is UTF-8 text with one record per line:
//
//	<token-type> <username> <pin|-> <hex-key> [<offset> [<last-otp> <last-auth>]]
//
// Fields are separated by runs of spaces, tabs, carriage returns, or vertical
// tabs. Lines starting with '#' and blank lines are structure, not records;
// they are preserved verbatim whenever the file is rewritten. The token type
// follows the grammar
//
//	(HOTP|MOTP)[/(E|T<seconds>)][/<digits>]
//
// with the algorithm name matched case-insensitively. The single-letter forms
// "E" and "T" are accepted as aliases for "HOTP/E" and "HOTP/T30" so files
// written for early deployments keep working. The last-auth timestamp uses
// the layout 2006-01-02T15:04:05L in local time.
//
// # Codec
//
// ParseLine classifies one line as a comment/blank to pass through, a record,
// or an invalid entry with a human-readable reason. Invalid entries are never
// fatal: the store logs them and copies them through unchanged on rewrite so
// an operator can repair the file without losing data. EncodeRecord is the
// inverse of ParseLine for valid records and abbreviates token-type
// sub-fields that equal the algorithm defaults.
//
// # Store
//
// Store ties the codec to one users file path. Lookup scans the file
// read-only and without locking; it may race with a concurrent Update and
// will observe either the old or the new file, never a torn one, because
// updates replace the file atomically. Update serializes all writers,
// across processes, through an exclusive advisory lock on a sibling
// ".lock" file, rewrites every line into a temporary file substituting the
// target record, and renames the result over the original. On any failure
// the temporary file is discarded and the original file is left untouched.
// Lock acquisition is bounded; a busy lock surfaces as an error instead of
// blocking the caller indefinitely.
//
// The store never creates or deletes usernames. Provisioning records is
// out of scope; updating a user that has vanished from the file leaves the
// content unchanged and reports ErrUserNotFound.
package userstore
