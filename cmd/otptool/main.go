// Command otptool exercises an OTP users file from the command line: it
// verifies submitted codes, inspects records, predicts the next expected
// code, and exports records to authenticator apps.
//
// Configuration is read from the environment (OTP_USERS_FILE, OTP_MAX_OFFSET,
// OTP_MAX_LINGER), optionally from a YAML file, with flags taking precedence.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/otpkit/otpkit/pkg/config"
	"github.com/otpkit/otpkit/pkg/logger"
	"github.com/otpkit/otpkit/pkg/otp"
	"github.com/otpkit/otpkit/pkg/provision"
	"github.com/otpkit/otpkit/pkg/userstore"
	"github.com/otpkit/otpkit/pkg/verifier"
)

const usage = `Usage: otptool [flags] <command> [args]

Commands:
  verify <user> <otp>   check a one-time password and advance counter state
  lookup <user>         print a user's record
  expect <user>         print the currently expected code without consuming it
  uri <user>            print the otpauth:// provisioning URI

Flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "otptool: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var cfg verifier.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	fs := flag.NewFlagSet("otptool", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	cfgFile := fs.String("config", "", "YAML configuration file")
	usersFile := fs.String("users", "", "users file path (overrides OTP_USERS_FILE)")
	maxOffset := fs.Int("max-offset", -1, "maximum counter offset (overrides OTP_MAX_OFFSET)")
	maxLinger := fs.Int("max-linger", -1, "OTP reuse window in seconds (overrides OTP_MAX_LINGER)")
	issuer := fs.String("issuer", "otpkit", "issuer name for provisioning URIs")
	qrFile := fs.String("qr", "", "also write the provisioning URI as a QR PNG to this file")
	verbose := fs.Bool("verbose", false, "log at debug level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *cfgFile != "" {
		if err := config.LoadFile(*cfgFile, &cfg); err != nil {
			return err
		}
	}
	if *usersFile != "" {
		cfg.UsersFile = *usersFile
	}
	if *maxOffset >= 0 {
		cfg.MaxOffset = *maxOffset
	}
	if *maxLinger >= 0 {
		cfg.MaxLinger = *maxLinger
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := logger.New(
		logger.WithTextFormatter(),
		logger.WithLevel(level),
		logger.WithOutput(os.Stderr),
		logger.WithAttr(logger.Component("otptool")),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no command given")
	}
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	switch cmd {
	case "verify":
		if len(rest) != 2 {
			return fmt.Errorf("usage: otptool verify <user> <otp>")
		}
		return verifyCmd(ctx, cfg, log, stdout, rest[0], rest[1])
	case "lookup":
		if len(rest) != 1 {
			return fmt.Errorf("usage: otptool lookup <user>")
		}
		return lookupCmd(ctx, cfg, log, stdout, rest[0])
	case "expect":
		if len(rest) != 1 {
			return fmt.Errorf("usage: otptool expect <user>")
		}
		return expectCmd(ctx, cfg, log, stdout, rest[0])
	case "uri":
		if len(rest) != 1 {
			return fmt.Errorf("usage: otptool uri <user>")
		}
		return uriCmd(ctx, cfg, log, stdout, rest[0], *issuer, *qrFile)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func verifyCmd(ctx context.Context, cfg verifier.Config, log *slog.Logger, stdout io.Writer, user, code string) error {
	v, err := verifier.New(cfg, verifier.WithLogger(log))
	if err != nil {
		return err
	}
	status, err := v.VerifyPassword(ctx, user, code)
	fmt.Fprintln(stdout, status)
	if status != verifier.StatusGranted {
		return err
	}
	return nil
}

func lookupCmd(ctx context.Context, cfg verifier.Config, log *slog.Logger, stdout io.Writer, user string) error {
	rec, err := lookup(ctx, cfg, log, user)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "username:  %s\n", rec.Username)
	fmt.Fprintf(stdout, "algorithm: %s\n", rec.Algorithm)
	if rec.EventBased() {
		fmt.Fprintf(stdout, "counter:   event-based\n")
	} else {
		fmt.Fprintf(stdout, "counter:   time-based, %ds interval\n", rec.TimeInterval)
	}
	fmt.Fprintf(stdout, "digits:    %d\n", rec.Digits)
	fmt.Fprintf(stdout, "pin:       %s\n", orNone(rec.PIN))
	fmt.Fprintf(stdout, "offset:    %d\n", rec.Offset)
	fmt.Fprintf(stdout, "last otp:  %s\n", orNone(rec.LastOTP))
	if rec.LastAuth.IsZero() {
		fmt.Fprintf(stdout, "last auth: never\n")
	} else {
		fmt.Fprintf(stdout, "last auth: %s\n", rec.LastAuth.Format(time.RFC3339))
	}
	return nil
}

func expectCmd(ctx context.Context, cfg verifier.Config, log *slog.Logger, stdout io.Writer, user string) error {
	rec, err := lookup(ctx, cfg, log, user)
	if err != nil {
		return err
	}
	counter := rec.Counter(time.Now())
	if rec.Algorithm == userstore.AlgorithmMOTP {
		fmt.Fprintf(stdout, "counter %d: %s\n", counter, otp.MOTP(rec.Key, rec.PIN, uint64(counter), rec.Digits))
		return nil
	}
	decimal, hexadecimal := otp.HOTP(rec.Key, uint64(counter), rec.Digits)
	fmt.Fprintf(stdout, "counter %d: %s (decimal) %s (hex)\n", counter, decimal, hexadecimal)
	return nil
}

func uriCmd(ctx context.Context, cfg verifier.Config, log *slog.Logger, stdout io.Writer, user, issuer, qrFile string) error {
	rec, err := lookup(ctx, cfg, log, user)
	if err != nil {
		return err
	}
	uri, err := provision.URI(rec, issuer)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, uri)
	if qrFile != "" {
		img, err := provision.QRCode(rec, issuer, 0)
		if err != nil {
			return err
		}
		if err := os.WriteFile(qrFile, img, 0o600); err != nil {
			return err
		}
	}
	return nil
}

func lookup(ctx context.Context, cfg verifier.Config, log *slog.Logger, user string) (userstore.Record, error) {
	if err := cfg.Validate(); err != nil {
		return userstore.Record{}, err
	}
	store, err := userstore.New(cfg.UsersFile, userstore.WithLogger(log))
	if err != nil {
		return userstore.Record{}, err
	}
	return store.Lookup(ctx, user)
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
