package symfile

import (
	"errors"
	"fmt"
)

// Transform errors
var (
	// ErrUnknownCommand is returned when the leading token of a line is not a recognized record keyword
	ErrUnknownCommand = errors.New("unexpected symbol instruction")

	// ErrMalformedLine is returned when a recognized record does not carry enough fields
	ErrMalformedLine = errors.New("malformed symbol line")

	// ErrEmptyHashPhrase is returned when the hash phrase is empty
	ErrEmptyHashPhrase = errors.New("hash phrase cannot be empty")

	// ErrReadInput is returned when the input stream cannot be read
	ErrReadInput = errors.New("failed to read symbol input")

	// ErrWriteOutput is returned when a transformed line cannot be written
	ErrWriteOutput = errors.New("failed to write symbol output")
)

// UnknownCommandError reports a line whose leading token is not part of the grammar.
type UnknownCommandError struct {
	Line    int
	Command string
}

// Error implements the error interface
func (e *UnknownCommandError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: '%s'", e.Line, ErrUnknownCommand, e.Command)
	}
	return fmt.Sprintf("%s: '%s'", ErrUnknownCommand, e.Command)
}

// Is allows errors.Is to match ErrUnknownCommand
func (e *UnknownCommandError) Is(target error) bool {
	return target == ErrUnknownCommand
}

// MalformedLineError reports a recognized record with fewer fields than it requires.
type MalformedLineError struct {
	Line    int
	Command string
	Fields  int // number of whitespace-delimited fields found, including the command
	Want    int // minimum number of fields the command requires
}

// Error implements the error interface
func (e *MalformedLineError) Error() string {
	command := e.Command
	if command == "" {
		command = "<empty>"
	}
	msg := fmt.Sprintf("%s: %s record has %d field(s), want at least %d", ErrMalformedLine, command, e.Fields, e.Want)
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// Is allows errors.Is to match ErrMalformedLine
func (e *MalformedLineError) Is(target error) bool {
	return target == ErrMalformedLine
}

// withLine stamps a 1-based line number onto the typed errors produced by TransformLine.
func withLine(err error, line int) error {
	var unknown *UnknownCommandError
	if errors.As(err, &unknown) {
		unknown.Line = line
		return unknown
	}
	var malformed *MalformedLineError
	if errors.As(err, &malformed) {
		malformed.Line = line
		return malformed
	}
	return err
}
