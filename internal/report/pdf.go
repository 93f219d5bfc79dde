package report

import (
	"bytes"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"crane-safety-service/internal/model"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Time", 34},
	{"Crane ID", 24},
	{"Type", 18},
	{"Zone", 24},
	{"Operator", 28},
	{"Shift", 26},
	{"Severity", 22},
}

func RenderPDF(rows []model.EventWithShift, filter model.EventFilter) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Crane Safety Incident Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Generated: "+time.Now().Format("2006-01-02 15:04:05"))
	pdf.Ln(6)
	if filter.DateFrom != nil || filter.DateTo != nil {
		pdf.Cell(0, 6, "Date Range: "+rangeLabel(filter))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(14, 165, 233)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		cells := []string{
			row.Timestamp.Format("2006-01-02 15:04:05"),
			row.CraneID,
			strings.ToUpper(string(row.EventType)),
			row.ZoneType,
			valueOrNA(row.Operator),
			valueOrNA(row.ShiftName),
			string(row.Severity),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, cells[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rangeLabel(filter model.EventFilter) string {
	from, to := "N/A", "N/A"
	if filter.DateFrom != nil {
		from = filter.DateFrom.Format("2006-01-02")
	}
	if filter.DateTo != nil {
		to = filter.DateTo.Format("2006-01-02")
	}
	return from + " to " + to
}

func valueOrNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
