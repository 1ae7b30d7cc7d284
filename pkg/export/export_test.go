package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Date", "Task", "Minutes"},
		Rows: []map[string]string{
			{"Date": "2025-01-06", "Task": "Essay, draft", "Minutes": "25"},
			{"Date": "2025-01-07", "Task": "Lab", "Minutes": "50"},
		},
		Weights: map[string]float64{"Task": 3},
		Footer:  map[string]string{"Task": "Total", "Minutes": "75"},
	}
}

func TestCSVExporterRender(t *testing.T) {
	body, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Date,Task,Minutes", lines[0])
	assert.Equal(t, `2025-01-06,"Essay, draft",25`, lines[1])
	assert.Equal(t, ",Total,75", lines[3])
}

func TestCSVExporterCustomComma(t *testing.T) {
	body, err := (&CSVExporter{Comma: ';'}).Render(Dataset{Headers: []string{"a", "b"}, Rows: []map[string]string{{"a": "1"}}})
	require.NoError(t, err)
	assert.Equal(t, "a;b\n1;\n", string(body))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	body, err := NewPDFExporter().Render(sampleDataset(), "Study plan")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestPDFExporterPaginates(t *testing.T) {
	data := Dataset{Headers: []string{"Row"}}
	for i := 0; i < 120; i++ {
		data.Rows = append(data.Rows, map[string]string{"Row": "x"})
	}
	body, err := NewPDFExporter().Render(data, "")
	require.NoError(t, err)
	assert.Greater(t, bytes.Count(body, []byte("/Type /Page\n")), 1)
}

func TestColumnWidthsWeighted(t *testing.T) {
	widths := columnWidths(sampleDataset(), 250)
	require.Len(t, widths, 3)
	assert.InDelta(t, 50, widths[0], 0.001)
	assert.InDelta(t, 150, widths[1], 0.001)
	assert.InDelta(t, 50, widths[2], 0.001)
}
