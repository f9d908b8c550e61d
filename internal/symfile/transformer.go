package symfile

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
)

// MaxLineSize is the longest input line Transform accepts.
const MaxLineSize = 16 * 1024 * 1024

// Options configures a Transformer.
type Options struct {
	// StripLineNumbers drops line-number records from the output
	StripLineNumbers bool
}

// Result is the outcome of transforming one line.
type Result struct {
	Kind RecordKind
	// Line is the reconstructed line without a trailing newline. It is empty when Emit is false.
	Line string
	// Emit is false when the line is dropped from the output
	Emit bool
	// Token is the hashed name substituted into Line, set for name-bearing kinds only
	Token string
}

// Stats counts what a transform run did.
type Stats struct {
	LinesRead    int
	LinesEmitted int
	LinesDropped int
	NamesHashed  int
	ByKind       map[RecordKind]int
}

func newStats() Stats {
	return Stats{ByKind: make(map[RecordKind]int)}
}

func (s *Stats) add(res Result) {
	s.LinesRead++
	s.ByKind[res.Kind]++
	if res.Emit {
		s.LinesEmitted++
	} else {
		s.LinesDropped++
	}
	if res.Token != "" {
		s.NamesHashed++
	}
}

// Report is returned by Transform once the whole input has been processed.
type Report struct {
	Names *NameMap
	Stats Stats
}

// Transformer rewrites symbol lines, replacing names with hashed tokens.
// It holds no per-run state; every run owns its own NameMap.
type Transformer struct {
	hasher *Hasher
	opts   Options
}

// NewTransformer creates a Transformer that hashes names with hasher.
func NewTransformer(hasher *Hasher, opts Options) *Transformer {
	return &Transformer{hasher: hasher, opts: opts}
}

// TransformLine classifies and rewrites a single line. Every hashed name is
// recorded in names. Errors are *UnknownCommandError or *MalformedLineError
// with Line left at zero.
func (t *Transformer) TransformLine(line string, names *NameMap) (Result, error) {
	line = trimLine(line)
	parts := splitFields(line, 2)
	if len(parts) < 2 {
		command := ""
		if len(parts) == 1 {
			command = parts[0]
		}
		return Result{}, &MalformedLineError{Command: command, Fields: len(parts), Want: 2}
	}
	command, rest := parts[0], parts[1]

	kind := Classify(command)
	switch kind {
	case KindFile, KindPublic, KindFunc:
		want := kind.nameFields()
		fields := splitFields(rest, want-1)
		if len(fields) < want-1 {
			return Result{}, &MalformedLineError{Command: command, Fields: len(fields) + 1, Want: want}
		}
		name := fields[len(fields)-1]
		token := t.hasher.Hash(name)
		names.Record(token, name)

		out := make([]string, 0, want)
		out = append(out, command)
		out = append(out, fields[:len(fields)-1]...)
		out = append(out, token)
		return Result{Kind: kind, Line: strings.Join(out, " "), Emit: true, Token: token}, nil
	case KindStack, KindModule:
		return Result{Kind: kind, Line: line, Emit: true}, nil
	case KindLineNumber:
		if t.opts.StripLineNumbers {
			return Result{Kind: kind}, nil
		}
		return Result{Kind: kind, Line: line, Emit: true}, nil
	case KindUnknown:
		return Result{}, &UnknownCommandError{Command: command}
	}
	return Result{}, &UnknownCommandError{Command: command}
}

// trimLine strips the surrounding ASCII whitespace, including the CR of CRLF input.
func trimLine(line string) string {
	return strings.Trim(line, fieldSeparators)
}

// Lines lazily transforms lines, yielding each emitted output line. Dropped
// lines are skipped. On the first error it yields ("", err) and stops.
func (t *Transformer) Lines(lines iter.Seq[string], names *NameMap) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		lineNo := 0
		for line := range lines {
			lineNo++
			res, err := t.TransformLine(line, names)
			if err != nil {
				yield("", withLine(err, lineNo))
				return
			}
			if !res.Emit {
				continue
			}
			if !yield(res.Line, nil) {
				return
			}
		}
	}
}

// Transform reads symbol lines from r and writes the transformed,
// newline-terminated lines to w. It stops at the first line it cannot
// classify; lines before that point have already been written to w, so the
// caller must discard w's contents on error.
func (t *Transformer) Transform(r io.Reader, w io.Writer) (*Report, error) {
	report := &Report{Names: NewNameMap(), Stats: newStats()}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	bw := bufio.NewWriter(w)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		res, err := t.TransformLine(scanner.Text(), report.Names)
		if err != nil {
			_ = bw.Flush()
			return report, withLine(err, lineNo)
		}
		report.Stats.add(res)
		if !res.Emit {
			continue
		}
		if _, err := bw.WriteString(res.Line); err != nil {
			return report, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return report, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}
	if err := scanner.Err(); err != nil {
		_ = bw.Flush()
		return report, fmt.Errorf("%w after line %d: %w", ErrReadInput, lineNo, err)
	}
	if err := bw.Flush(); err != nil {
		return report, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return report, nil
}
