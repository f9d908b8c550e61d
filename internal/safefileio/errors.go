// Package safefileio opens symbol files for reading and publishes output
// files without ever following symlinks or exposing partially written data.
package safefileio

import "errors"

var (
	// ErrInvalidFilePath indicates that the specified file path is invalid.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrIsSymlink indicates that the specified path is a symbolic link, which is not allowed.
	ErrIsSymlink = errors.New("path is a symbolic link")

	// ErrAlreadyClosed indicates that an atomic file was already committed or aborted.
	ErrAlreadyClosed = errors.New("atomic file already closed")
)
