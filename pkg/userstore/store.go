package userstore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

const defaultLockWait = 5 * time.Second

// Store provides lookup and update access to one users file. It keeps no
// record cache: every call re-reads the file, so concurrent processes
// sharing the file always observe each other's committed updates.
//
// A Store is safe for concurrent use.
type Store struct {
	path     string
	log      *slog.Logger
	lockWait time.Duration

	// rewriteStall, when set, runs after the rewrite scan while the update
	// lock is still held. Tests use it to wedge one writer mid-update.
	rewriteStall func()
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for per-line diagnostics. Nil loggers are
// ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithLockWait bounds how long Update waits for the writer lock before
// giving up. Non-positive values are ignored.
func WithLockWait(wait time.Duration) Option {
	return func(s *Store) {
		if wait > 0 {
			s.lockWait = wait
		}
	}
}

// New creates a Store for the users file at path. The file does not have to
// exist yet; it is only opened when a call needs it.
func New(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, ErrInvalidStorePath
	}
	s := &Store{
		path:     path,
		log:      slog.Default(),
		lockWait: defaultLockWait,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the users file path the store operates on.
func (s *Store) Path() string { return s.path }

// Lookup returns a private copy of the first record whose username matches.
// It takes no lock and never modifies the file; a concurrent Update is
// harmless because updates replace the file atomically.
func (s *Store) Lookup(ctx context.Context, username string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return Record{}, errors.Join(ErrFailedToOpenStore, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		parsed := ParseLine(scanner.Text())
		switch parsed.Kind {
		case LineInvalid:
			s.warnInvalid(lineNum, parsed.Reason)
		case LineRecord:
			if parsed.Record.Username == username {
				return parsed.Record, nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Record{}, errors.Join(ErrFailedToOpenStore, err)
	}
	return Record{}, ErrUserNotFound
}

// Update rewrites the users file, replacing the line whose username matches
// rec with rec's canonical encoding. Every other line (records for other
// users, comments, blanks, and invalid entries) is copied through
// byte-for-byte. Writers are serialized through an exclusive advisory lock
// on the sibling lock file, and the rewritten file replaces the original
// atomically, so readers never observe a partial rewrite.
//
// If the username is no longer present the file content is left unchanged
// and ErrUserNotFound is returned. On I/O failure the temporary file is
// discarded, the original file is untouched, and the record state must be
// treated as not advanced.
func (s *Store) Update(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lock, err := acquireLock(ctx, s.path+LockSuffix, s.lockWait)
	if err != nil {
		return err
	}
	defer lock.release()

	src, err := os.Open(s.path)
	if err != nil {
		return errors.Join(ErrFailedToOpenStore, err)
	}
	defer func() { _ = src.Close() }()

	tmpPath := fmt.Sprintf("%s.%s.new", s.path, uuid.NewString())
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return errors.Join(ErrFailedToRewriteStore, err)
	}
	discard := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	found, err := s.rewrite(src, tmp, rec)
	if err != nil {
		discard()
		return err
	}
	if s.rewriteStall != nil {
		s.rewriteStall()
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Join(ErrFailedToRewriteStore, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Join(ErrFailedToRewriteStore, err)
	}

	if !found {
		s.log.Warn("user missing from users file during update",
			slog.String("store", s.path), slog.String("username", rec.Username))
		return ErrUserNotFound
	}
	return nil
}

// rewrite copies src to dst line by line, substituting the target record.
// Raw line bytes, including line endings, are preserved for every line that
// is not the target's.
func (s *Store) rewrite(src io.Reader, dst io.Writer, rec Record) (bool, error) {
	reader := bufio.NewReader(src)
	writer := bufio.NewWriter(dst)
	found := false

	for lineNum := 1; ; lineNum++ {
		raw, readErr := reader.ReadString('\n')
		if raw != "" {
			parsed := ParseLine(raw)
			if parsed.Kind == LineInvalid {
				s.warnInvalid(lineNum, parsed.Reason)
			}

			out := raw
			if parsed.Kind == LineRecord && parsed.Record.Username == rec.Username && !found {
				found = true
				out = EncodeRecord(rec) + "\n"
			}
			if _, err := writer.WriteString(out); err != nil {
				return false, errors.Join(ErrFailedToRewriteStore, err)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return false, errors.Join(ErrFailedToRewriteStore, readErr)
		}
	}

	if err := writer.Flush(); err != nil {
		return false, errors.Join(ErrFailedToRewriteStore, err)
	}
	return found, nil
}

func (s *Store) warnInvalid(lineNum int, reason string) {
	s.log.Warn("ignoring invalid entry in users file",
		slog.String("store", s.path),
		slog.Int("line", lineNum),
		slog.String("reason", reason))
}
