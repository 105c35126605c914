package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"fjacquet/ledger-import/internal/fileutils"
	"fjacquet/ledger-import/internal/models"
	"fjacquet/ledger-import/internal/parsererror"
)

// Lock is an exclusive lock file guarding a ledger against concurrent writers.
type Lock struct {
	path string
}

// LockPath returns the lock file used for the ledger at location.
func LockPath(location string) string {
	return location + ".lock"
}

// AcquireLock creates the lock file for the ledger at location. It fails with
// a LockError when the file already exists. Stale locks are never broken
// automatically.
func AcquireLock(location string) (*Lock, error) {
	path := LockPath(location)
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, models.PermissionDataFile)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, &parsererror.LockError{Path: path}
		}
		return nil, fmt.Errorf("error creating lock file: %w", err)
	}
	_, werr := fmt.Fprintf(f, "pid=%s\ncreated=%s\n",
		strconv.Itoa(os.Getpid()), time.Now().UTC().Format(time.RFC3339))
	cerr := f.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("error writing lock file: %w", errors.Join(werr, cerr))
	}

	return &Lock{path: path}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the lock file. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing lock file: %w", err)
	}
	return nil
}
