package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/karnwit/internlog/pkg/entry"
)

func sampleSnapshot() []*entry.Entry {
	work := entry.New("u1", "2024-01-12", "built export feature")
	work.Hours = entry.Hours(8)
	work.WorkLink = "https://example.com/pr/42"

	holiday := entry.New("u1", "2024-01-11", "public holiday")
	holiday.Hours = entry.Hours(0)

	unrecorded := entry.New("u1", "2024-01-10", "no hours recorded")

	return []*entry.Entry{work, holiday, unrecorded}
}

func TestRowsKeepOrderAndNilHours(t *testing.T) {
	rows := Rows(sampleSnapshot())
	require.Len(t, rows, 3)

	assert.Equal(t, "2024-01-12", rows[0].Date)
	assert.Equal(t, 8.0, *rows[0].Hours)
	assert.Equal(t, "https://example.com/pr/42", rows[0].Link)

	assert.Equal(t, 0.0, *rows[1].Hours, "holiday keeps its explicit zero")
	assert.Nil(t, rows[2].Hours, "unrecorded hours must not export a default")
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), Filename)
	require.NoError(t, WriteXLSX(path, sampleSnapshot()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Date", "Hours", "Description", "Link"}, rows[0])
	assert.Equal(t, "2024-01-12", rows[1][0])
	assert.Equal(t, "8", rows[1][1])
	// Unrecorded hours leave the cell empty.
	assert.Equal(t, "no hours recorded", rows[3][2])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleSnapshot()))

	out := buf.String()
	assert.Contains(t, out, "Date,Hours,Description,Link\n")
	assert.Contains(t, out, "2024-01-12,8,built export feature,https://example.com/pr/42\n")
	assert.Contains(t, out, "2024-01-11,0,public holiday,\n")
	assert.Contains(t, out, "2024-01-10,,no hours recorded,\n")
}
