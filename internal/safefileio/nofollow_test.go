//go:build !netbsd

package safefileio

import (
	"fmt"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSymlinkOpenError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "ELOOP path error", err: &os.PathError{Op: "open", Path: "/x", Err: syscall.ELOOP}, want: true},
		{name: "EMLINK path error", err: &os.PathError{Op: "open", Path: "/x", Err: syscall.EMLINK}, want: true},
		{name: "wrapped ELOOP", err: fmt.Errorf("open: %w", syscall.ELOOP), want: true},
		{name: "not exist", err: os.ErrNotExist, want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSymlinkOpenError(tt.err))
		})
	}
}
