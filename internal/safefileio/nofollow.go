//go:build !netbsd

package safefileio

import (
	"errors"
	"syscall"
)

// isSymlinkOpenError reports whether err is what open(2) returns for a
// symlink opened with O_NOFOLLOW. Linux answers ELOOP, FreeBSD EMLINK.
func isSymlinkOpenError(err error) bool {
	return errors.Is(err, syscall.ELOOP) || errors.Is(err, syscall.EMLINK)
}
