package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "CS101 attendance",
		Headers: []string{"student_id", "status", "checkin_time"},
		Rows: []map[string]string{
			{"student_id": "6501", "status": "present", "checkin_time": "2024-06-01T08:00:00Z"},
			{"student_id": "6502", "status": "leave"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	assert.Contains(t, f.ContentType(), "spreadsheetml")

	_, err = ParseFormat("docx")
	assert.Error(t, err)
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(out), "\ufeff")), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "student_id,status,checkin_time", lines[0])
	assert.Equal(t, "6502,leave,", lines[2])
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "CS101 attendance", rows[0][0])
	assert.Equal(t, []string{"student_id", "status", "checkin_time"}, rows[1])
	assert.Equal(t, "present", rows[2][1])
}

func TestRenderersRequireHeaders(t *testing.T) {
	for _, f := range []Format{FormatCSV, FormatPDF, FormatXLSX} {
		_, err := RendererFor(f).Render(Dataset{})
		assert.Error(t, err, string(f))
	}
}
