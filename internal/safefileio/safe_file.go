package safefileio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// SafeOpenFile opens filePath for reading. The final path component is opened
// with O_NOFOLLOW and the parent components are checked for symlinks after the
// open, so a swapped-in link is detected rather than followed.
func SafeOpenFile(filePath string) (*os.File, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	// #nosec G304 - absPath is cleaned above and O_NOFOLLOW rejects a symlinked final component
	file, err := os.OpenFile(absPath, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		if isSymlinkOpenError(err) {
			return nil, fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
		}
		return nil, err
	}

	if err := verifyPathComponents(absPath); err != nil {
		_ = file.Close()
		return nil, err
	}
	if err := validateRegular(file, absPath); err != nil {
		_ = file.Close()
		return nil, err
	}
	return file, nil
}

// SafeWriteFile atomically replaces filePath with content.
func SafeWriteFile(filePath string, content []byte, perm os.FileMode) (err error) {
	af, err := CreateAtomic(filePath, perm)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = af.Abort()
		}
	}()

	if _, err = af.Write(content); err != nil {
		return err
	}
	return af.Commit()
}

// AtomicFile collects output in a temporary file beside its target. The
// target only changes on Commit; Abort discards everything written.
type AtomicFile struct {
	target string
	tmp    *os.File
	closed bool
}

// CreateAtomic starts an atomic write of filePath. An existing target must be
// a regular file; symlinks anywhere in the path are rejected.
func CreateAtomic(filePath string, perm os.FileMode) (*AtomicFile, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	if err := verifyPathComponents(absPath); err != nil {
		return nil, err
	}
	if err := checkTarget(absPath); err != nil {
		return nil, err
	}

	dir, base := filepath.Split(absPath)
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file for %s: %w", absPath, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to set permissions on %s: %w", tmp.Name(), err)
	}

	return &AtomicFile{target: absPath, tmp: tmp}, nil
}

// Name returns the absolute path of the file that Commit publishes.
func (a *AtomicFile) Name() string {
	return a.target
}

// Write implements io.Writer.
func (a *AtomicFile) Write(p []byte) (int, error) {
	if a.closed {
		return 0, ErrAlreadyClosed
	}
	n, err := a.tmp.Write(p)
	if err != nil {
		return n, fmt.Errorf("failed to write to %s: %w", a.tmp.Name(), err)
	}
	return n, nil
}

// Commit flushes the temporary file to disk and renames it over the target.
func (a *AtomicFile) Commit() error {
	if a.closed {
		return ErrAlreadyClosed
	}
	a.closed = true

	tmpName := a.tmp.Name()
	if err := a.tmp.Sync(); err != nil {
		_ = a.tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := a.tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	// The target may have been replaced with a symlink since CreateAtomic.
	if err := checkTarget(a.target); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, a.target); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to publish %s: %w", a.target, err)
	}
	return nil
}

// Abort discards the temporary file, leaving the target untouched. Calling
// Abort after Commit is a no-op.
func (a *AtomicFile) Abort() error {
	if a.closed {
		return nil
	}
	a.closed = true

	closeErr := a.tmp.Close()
	if err := os.Remove(a.tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", a.tmp.Name(), err)
	}
	if closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
		return fmt.Errorf("failed to close %s: %w", a.tmp.Name(), closeErr)
	}
	return nil
}

// checkTarget rejects an existing target that is a symlink or not a regular file.
func checkTarget(absPath string) error {
	fi, err := os.Lstat(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", absPath, err)
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%w: not a regular file: %s", ErrInvalidFilePath, absPath)
	}
	return nil
}

// verifyPathComponents checks every directory above absPath for symlinks.
func verifyPathComponents(absPath string) error {
	current := filepath.Dir(absPath)
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return nil // root
		}

		fi, err := os.Lstat(current)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("failed to stat %s: %w", current, err)
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s", ErrIsSymlink, current)
		}

		current = parent
	}
}

// validateRegular uses the open descriptor so the check applies to the file
// actually opened, not whatever the path points at now.
func validateRegular(file *os.File, absPath string) error {
	fi, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%w: not a regular file: %s", ErrInvalidFilePath, absPath)
	}
	return nil
}
