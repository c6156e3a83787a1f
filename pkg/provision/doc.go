// Package provision exports existing token records to authenticator apps.
//
// URI renders a record as an otpauth:// key URI following the Key Uri Format
// specification; QRCode and QRCodeBase64 wrap it in a scannable PNG. The
// package is read-only over records: it never creates or modifies them, it
// only re-encodes state that is already in the users file.
//
// Only HOTP tokens can be exported. The mOTP scheme has no key-URI
// representation, so mOTP records are rejected with ErrUnsupportedAlgorithm.
//
// # Usage
//
//	rec, err := store.Lookup(ctx, "bob")
//	if err != nil {
//		// handle error
//	}
//	uri, err := provision.URI(rec, "Example Corp")
//	if err != nil {
//		// handle error
//	}
//	png, err := provision.QRCode(rec, "Example Corp", 256)
//
// # Error Handling
//
// All failure modes are declared as package-level sentinel errors and can be
// tested with errors.Is.
package provision
