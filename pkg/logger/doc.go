// Package logger provides the slog setup and attribute helpers shared by the
// OTP engine packages and the otptool CLI.
//
// New builds a *slog.Logger from functional options (format, level, output,
// static attributes) with production-safe defaults: JSON output at INFO
// level. The attr helpers keep log field names consistent across the store,
// the verifier, and the CLI so one authentication attempt can be followed
// through the log by its username and store path.
//
// # Usage
//
//	log := logger.New(
//		logger.WithTextFormatter(),
//		logger.WithLevel(slog.LevelDebug),
//	)
//	log.Info("verification granted",
//		logger.Username("alice"),
//		logger.Counter(1042),
//	)
package logger
