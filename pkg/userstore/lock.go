package userstore

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// LockSuffix is appended to the users file path to form the lock file name.
const LockSuffix = ".lock"

const lockRetryInterval = 10 * time.Millisecond

// fileLock holds an exclusive advisory lock for the duration of one store
// rewrite. The lock file itself is created on first use and never removed;
// its existence carries no meaning, only the flock on it does.
type fileLock struct {
	f *os.File
}

// acquireLock takes an exclusive flock on path, polling in non-blocking mode
// so a wedged writer cannot hang the caller. Acquisition gives up when the
// wait budget is spent or ctx is done.
func acquireLock(ctx context.Context, path string, wait time.Duration) (*fileLock, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o600)
	if err != nil {
		return nil, errors.Join(ErrFailedToLockStore, err)
	}

	deadline := time.Now().Add(wait)
	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &fileLock{f: f}, nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			_ = f.Close()
			return nil, errors.Join(ErrFailedToLockStore, err)
		}
		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, errors.Join(ErrFailedToLockStore, errors.New("lock wait exceeded"))
		}
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, errors.Join(ErrFailedToLockStore, ctx.Err())
		case <-time.After(lockRetryInterval):
		}
	}
}

// release drops the lock. Closing the descriptor releases the flock even if
// the explicit unlock fails.
func (l *fileLock) release() {
	_ = unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	_ = l.f.Close()
}
