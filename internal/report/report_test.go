package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"crane-safety-service/internal/model"
)

func sampleRows() []model.EventWithShift {
	operator := "Alice"
	shift := "Morning"
	confidence := 0.92
	remarks := "near miss"

	return []model.EventWithShift{
		{
			Event: model.Event{
				EventID:           "EVT-001",
				EventType:         model.EventTypeRed,
				Severity:          model.SeverityCritical,
				Timestamp:         time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
				CraneID:           "C1",
				ZoneType:          "hook",
				MotionType:        model.MotionTypeCT,
				Operator:          &operator,
				AIConfidenceScore: &confidence,
				Remarks:           &remarks,
			},
			ShiftName: &shift,
		},
		{
			Event: model.Event{
				EventID:    "EVT-002",
				EventType:  model.EventTypeYellow,
				Severity:   model.SeverityWarning,
				Timestamp:  time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC),
				CraneID:    "C2",
				ZoneType:   "unknown",
				MotionType: model.MotionTypeLT,
			},
		},
	}
}

func TestRenderCSV(t *testing.T) {
	data, err := RenderCSV(sampleRows())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, []string{
		"EVT-001", "red", "2024-03-01 10:30:00", "C1", "hook",
		"CT", "Alice", "Morning", "critical", "0.92", "near miss",
	}, records[1])
	// Absent optional fields render as empty cells, not "null" or "N/A".
	assert.Equal(t, []string{
		"EVT-002", "yellow", "2024-03-01 11:00:00", "C2", "unknown",
		"LT", "", "", "warning", "", "",
	}, records[2])
}

func TestRenderCSV_EmptyStillHasHeader(t *testing.T) {
	data, err := RenderCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, exportHeader, records[0])
}

func TestRenderXLSX(t *testing.T) {
	data, err := RenderXLSX(sampleRows())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Incidents")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, "EVT-001", rows[1][0])
	assert.Equal(t, "Morning", rows[1][7])
}

func TestRenderPDF(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	filter := model.EventFilter{DateFrom: &from}

	data, err := RenderPDF(sampleRows(), filter)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRangeLabel(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-01 to 2024-03-31", rangeLabel(model.EventFilter{DateFrom: &from, DateTo: &to}))
	assert.Equal(t, "2024-03-01 to N/A", rangeLabel(model.EventFilter{DateFrom: &from}))
	assert.Equal(t, "N/A to N/A", rangeLabel(model.EventFilter{}))
}
