package report

import (
	"strconv"

	"crane-safety-service/internal/model"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// Document is a rendered report ready to stream to the caller.
type Document struct {
	Data        []byte
	ContentType string
	Filename    string
}

var exportHeader = []string{
	"Event ID", "Event Type", "Timestamp", "Crane ID", "Zone Type",
	"Motion Type", "Operator", "Shift", "Severity", "Confidence Score", "Remarks",
}

func exportRecord(e model.EventWithShift) []string {
	return []string{
		e.EventID,
		string(e.EventType),
		e.Timestamp.Format("2006-01-02 15:04:05"),
		e.CraneID,
		e.ZoneType,
		string(e.MotionType),
		stringOrEmpty(e.Operator),
		stringOrEmpty(e.ShiftName),
		string(e.Severity),
		floatOrEmpty(e.AIConfidenceScore),
		stringOrEmpty(e.Remarks),
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
