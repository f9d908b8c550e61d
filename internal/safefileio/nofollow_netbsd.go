//go:build netbsd

package safefileio

import (
	"errors"
	"syscall"
)

// isSymlinkOpenError reports whether err is what open(2) returns for a
// symlink opened with O_NOFOLLOW. NetBSD answers EFTYPE.
func isSymlinkOpenError(err error) bool {
	return errors.Is(err, syscall.EFTYPE)
}
