package symfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		command string
		want    RecordKind
	}{
		{"FILE", KindFile},
		{"PUBLIC", KindPublic},
		{"FUNC", KindFunc},
		{"STACK", KindStack},
		{"MODULE", KindModule},
		{"1000", KindLineNumber},
		{"deadbeef", KindLineNumber},
		{"0", KindLineNumber},
		{"DEADBEEF", KindUnknown},
		{"file", KindUnknown},
		{"INFO", KindUnknown},
		{"BOGUS", KindUnknown},
		{"10g0", KindUnknown},
		{"0x1000", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.command))
		})
	}
}

func TestRecordKind_HasName(t *testing.T) {
	assert.True(t, KindFile.HasName())
	assert.True(t, KindPublic.HasName())
	assert.True(t, KindFunc.HasName())
	assert.False(t, KindStack.HasName())
	assert.False(t, KindModule.HasName())
	assert.False(t, KindLineNumber.HasName())
	assert.False(t, KindUnknown.HasName())
}

func TestRecordKind_String(t *testing.T) {
	assert.Equal(t, "FUNC", KindFunc.String())
	assert.Equal(t, "LINE", KindLineNumber.String())
	assert.Equal(t, "UNKNOWN", RecordKind(99).String())
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  []string
	}{
		{"exact count", "1000 10 0 main", 4, []string{"1000", "10", "0", "main"}},
		{"name keeps spaces", "1000 10 0 foo(int, char)", 4, []string{"1000", "10", "0", "foo(int, char)"}},
		{"runs of whitespace between fields", "1000 \t 10   0  main", 4, []string{"1000", "10", "0", "main"}},
		{"internal whitespace in name kept", "0 a  b", 2, []string{"0", "a  b"}},
		{"leading whitespace skipped", "   0 name", 2, []string{"0", "name"}},
		{"too few fields", "1000 10", 4, []string{"1000", "10"}},
		{"single field", "only", 2, []string{"only"}},
		{"empty", "", 2, []string{}},
		{"whitespace only", " \t ", 2, []string{}},
		{"vertical tab and form feed separate", "0\v\fname", 2, []string{"0", "name"}},
		{"non-breaking space is not a separator", "a\u00a0b c", 2, []string{"a\u00a0b", "c"}},
		{"leading non-breaking space kept", "\u00a0x y", 2, []string{"\u00a0x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitFields(tt.input, tt.n))
		})
	}
}
