package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// maxPassphraseLength bounds how much of a piped stdin is read as the phrase.
const maxPassphraseLength = 64 * 1024

var (
	// ErrEmptyPassphrase is returned when the entered phrase is empty
	ErrEmptyPassphrase = errors.New("hash phrase is empty")

	// ErrPassphraseTooLong is returned when the piped phrase exceeds maxPassphraseLength
	ErrPassphraseTooLong = errors.New("hash phrase is too long")
)

// readPassword is replaced in tests.
var readPassword = term.ReadPassword

// ReadPassphrase reads a secret from in. On an interactive terminal it writes
// prompt to promptOut and reads without echo; otherwise it reads the first
// line of in. The trailing line terminator is removed.
func ReadPassphrase(in io.Reader, promptOut io.Writer, prompt string) ([]byte, error) {
	if fd, ok := TerminalFD(in); ok && !IsCIEnvironment() {
		_, _ = fmt.Fprint(promptOut, prompt)
		phrase, err := readPassword(fd)
		_, _ = fmt.Fprintln(promptOut)
		if err != nil {
			return nil, fmt.Errorf("failed to read hash phrase from terminal: %w", err)
		}
		if len(phrase) == 0 {
			return nil, ErrEmptyPassphrase
		}
		return phrase, nil
	}

	return readLine(in)
}

func readLine(in io.Reader) ([]byte, error) {
	br := bufio.NewReader(io.LimitReader(in, maxPassphraseLength+1))
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read hash phrase: %w", err)
	}
	if len(line) > maxPassphraseLength {
		return nil, ErrPassphraseTooLong
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, ErrEmptyPassphrase
	}
	return []byte(line), nil
}
