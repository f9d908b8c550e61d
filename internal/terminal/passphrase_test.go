package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPassphrase_FromPipe(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "newline terminated", input: "secret\n", want: "secret"},
		{name: "crlf terminated", input: "secret\r\n", want: "secret"},
		{name: "no terminator", input: "secret", want: "secret"},
		{name: "only first line", input: "first\nsecond\n", want: "first"},
		{name: "inner spaces kept", input: " two words \n", want: " two words "},
		{name: "empty input", input: "", wantErr: ErrEmptyPassphrase},
		{name: "blank line", input: "\n", wantErr: ErrEmptyPassphrase},
		{name: "too long", input: strings.Repeat("x", maxPassphraseLength+1), wantErr: ErrPassphraseTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer
			got, err := ReadPassphrase(strings.NewReader(tt.input), &prompt, "Hash phrase: ")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.Empty(t, prompt.String(), "no prompt is shown for piped input")
		})
	}
}

func TestReadPassphrase_PasswordReaderNotUsedForPipes(t *testing.T) {
	original := readPassword
	t.Cleanup(func() { readPassword = original })
	readPassword = func(int) ([]byte, error) {
		t.Fatal("readPassword must not be called for non-terminal input")
		return nil, nil
	}

	got, err := ReadPassphrase(strings.NewReader("piped\n"), &bytes.Buffer{}, "Hash phrase: ")
	require.NoError(t, err)
	assert.Equal(t, "piped", string(got))
}
