//go:build !windows

package install

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

var flockFn = unix.Flock

// tryLockFile attempts a non-blocking exclusive flock on the file.
func tryLockFile(file *os.File) error {
	return flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
}

// lockIsBusy reports whether err means another process holds the lock.
func lockIsBusy(err error) bool {
	return errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN)
}

// unlockFile releases the advisory lock on the file.
func unlockFile(file *os.File) error {
	return flockFn(int(file.Fd()), unix.LOCK_UN)
}
