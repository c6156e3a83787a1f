package logger

import "log/slog"

// Username records the authenticating user under the key "username".
func Username(name string) slog.Attr {
	return slog.String("username", name)
}

// Store records the users file path under the key "store".
func Store(path string) slog.Attr {
	return slog.String("store", path)
}

// Realm records the digest-authentication realm under the key "realm".
func Realm(realm string) slog.Attr {
	return slog.String("realm", realm)
}

// Counter records an OTP counter value under the key "counter".
func Counter(c int64) slog.Attr {
	return slog.Int64("counter", c)
}

// Adjust records a counter-window adjustment under the key "adjust".
func Adjust(a int64) slog.Attr {
	return slog.Int64("adjust", a)
}

// Linger records the reuse grace period, in seconds, under the key "linger".
func Linger(seconds int) slog.Attr {
	return slog.Int("linger", seconds)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}
