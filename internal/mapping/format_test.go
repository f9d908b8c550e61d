package mapping

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/isseis/go-symbol-hasher/internal/symfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEntries = []symfile.Entry{
	{Token: "h-01", Name: "/home/user/src/foo.cc"},
	{Token: "h-02", Name: "foo(int, char)"},
	{Token: "h-03", Name: `say "hi" <now>`},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"csv", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{" tsv ", FormatTSV, false},
		{"json", FormatJSON, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, testEntries))

	assert.Equal(t, "h-01,/home/user/src/foo.cc\nh-02,\"foo(int, char)\"\nh-03,\"say \"\"hi\"\" <now>\"\n", buf.String())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(testEntries))
	for i, rec := range records {
		assert.Equal(t, []string{testEntries[i].Token, testEntries[i].Name}, rec)
	}
}

func TestWrite_TSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTSV, testEntries[:2]))

	assert.Equal(t, "h-01\t/home/user/src/foo.cc\nh-02\tfoo(int, char)\n", buf.String())
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, testEntries))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "1.0", doc.Version)
	assert.Equal(t, "symbol-name-map", doc.Format)
	require.Len(t, doc.Entries, 3)
	assert.Equal(t, Mapping{Token: "h-03", Name: `say "hi" <now>`}, doc.Entries[2])
	assert.Contains(t, buf.String(), "<now>")
}

func TestWrite_EmptyEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, nil))
	assert.Empty(t, buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, FormatJSON, nil))
	assert.Contains(t, buf.String(), `"entries": []`)
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Format("yaml"), testEntries)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

