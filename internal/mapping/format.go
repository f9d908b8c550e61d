// Package mapping serializes the token-to-name table produced by a symbol
// transform so the holder of the table can reverse pseudonymized names.
package mapping

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/isseis/go-symbol-hasher/internal/symfile"
)

// Format selects the serialization of the mapping table.
type Format string

// Supported formats
const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

// JSON document identifiers
const (
	jsonVersion = "1.0"
	jsonFormat  = "symbol-name-map"
)

var (
	// ErrUnsupportedFormat is returned when an unknown mapping format is requested
	ErrUnsupportedFormat = errors.New("unsupported mapping format")
)

// Document is the JSON form of a mapping table.
type Document struct {
	Version string    `json:"version"`
	Format  string    `json:"format"`
	Entries []Mapping `json:"entries"`
}

// Mapping is one token/name pair of a Document.
type Mapping struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// ParseFormat converts a user-supplied name into a Format. Empty selects CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatTSV:
		return FormatTSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: csv, tsv, json)", ErrUnsupportedFormat, s)
	}
}

// Write serializes entries to w in the given format, one row per entry:
// column 1 is the token, column 2 the original name.
func Write(w io.Writer, format Format, entries []symfile.Entry) error {
	switch format {
	case FormatCSV:
		return writeDelimited(w, ',', entries)
	case FormatTSV:
		return writeDelimited(w, '\t', entries)
	case FormatJSON:
		return writeJSON(w, entries)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func writeDelimited(w io.Writer, comma rune, entries []symfile.Entry) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	for _, e := range entries {
		if err := cw.Write([]string{e.Token, e.Name}); err != nil {
			return fmt.Errorf("failed to write mapping row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush mapping: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, entries []symfile.Entry) error {
	doc := Document{
		Version: jsonVersion,
		Format:  jsonFormat,
		Entries: make([]Mapping, 0, len(entries)),
	}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, Mapping{Token: e.Token, Name: e.Name})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}
	return nil
}
