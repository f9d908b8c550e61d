package symfile

import "sort"

// Entry is one token-to-name pair of a NameMap.
type Entry struct {
	Token string
	Name  string
}

// NameMap accumulates the reverse mapping from generated token to original
// name over a single transform run. It is not safe for concurrent use.
type NameMap struct {
	index   map[string]int
	entries []Entry
}

// NewNameMap creates an empty NameMap.
func NewNameMap() *NameMap {
	return &NameMap{index: make(map[string]int)}
}

// Record stores token -> name. If token is already present its name is
// replaced (last write wins) and its position is kept.
func (m *NameMap) Record(token, name string) {
	if i, ok := m.index[token]; ok {
		m.entries[i].Name = name
		return
	}
	m.index[token] = len(m.entries)
	m.entries = append(m.entries, Entry{Token: token, Name: name})
}

// Lookup returns the original name recorded for token.
func (m *NameMap) Lookup(token string) (string, bool) {
	i, ok := m.index[token]
	if !ok {
		return "", false
	}
	return m.entries[i].Name, true
}

// Len returns the number of distinct tokens recorded.
func (m *NameMap) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the entries in first-insertion order.
func (m *NameMap) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Sorted returns a copy of the entries ordered by token.
func (m *NameMap) Sorted() []Entry {
	out := m.Entries()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Token < out[j].Token
	})
	return out
}
