// Package symfile pseudonymizes Breakpad symbol files. Name-bearing records
// (FILE, PUBLIC, FUNC) have their names replaced by a keyed HMAC-SHA256 token,
// while structural records pass through so the file stays usable for stack
// unwinding and address lookup.
package symfile

import "strings"

// fieldSeparators are the bytes that separate record fields. Other Unicode
// spaces such as U+00A0 are part of a field.
const fieldSeparators = " \t\n\r\v\f"

// RecordKind identifies the grammar rule a symbol line belongs to.
type RecordKind int

// Record kinds. The set is closed: anything not listed here is KindUnknown.
const (
	KindUnknown RecordKind = iota
	KindFile
	KindPublic
	KindFunc
	KindStack
	KindModule
	KindLineNumber
)

// String returns the keyword form of the kind.
func (k RecordKind) String() string {
	switch k {
	case KindFile:
		return "FILE"
	case KindPublic:
		return "PUBLIC"
	case KindFunc:
		return "FUNC"
	case KindStack:
		return "STACK"
	case KindModule:
		return "MODULE"
	case KindLineNumber:
		return "LINE"
	default:
		return "UNKNOWN"
	}
}

// nameFields is the number of fields (command included) a name-bearing record
// splits into; the last one is the name.
func (k RecordKind) nameFields() int {
	switch k {
	case KindFile:
		return 3 // FILE number name
	case KindPublic:
		return 4 // PUBLIC address psize name
	case KindFunc:
		return 5 // FUNC address size psize name
	default:
		return 0
	}
}

// HasName reports whether records of this kind carry a name that gets hashed.
func (k RecordKind) HasName() bool {
	return k.nameFields() > 0
}

// Classify maps the leading token of a symbol line to its record kind.
func Classify(command string) RecordKind {
	switch command {
	case "FILE":
		return KindFile
	case "PUBLIC":
		return KindPublic
	case "FUNC":
		return KindFunc
	case "STACK":
		return KindStack
	case "MODULE":
		return KindModule
	}
	if isLineNumberToken(command) {
		return KindLineNumber
	}
	return KindUnknown
}

// isLineNumberToken reports whether s is a non-empty run of lowercase hex digits.
// Line-number rows start with the address they cover.
func isLineNumberToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// splitFields splits s on runs of ASCII whitespace into at most n pieces. The last
// piece holds everything after the (n-1)th separator with its internal
// whitespace kept, so names containing spaces survive intact.
func splitFields(s string, n int) []string {
	fields := make([]string, 0, n)
	s = strings.TrimLeft(s, fieldSeparators)
	for s != "" {
		if len(fields) == n-1 {
			fields = append(fields, s)
			break
		}
		i := strings.IndexAny(s, fieldSeparators)
		if i < 0 {
			fields = append(fields, s)
			break
		}
		fields = append(fields, s[:i])
		s = strings.TrimLeft(s[i:], fieldSeparators)
	}
	return fields
}
