package service

import (
	"context"
	"fmt"
	"time"

	"crane-safety-service/internal/model"
	"crane-safety-service/internal/report"
	"crane-safety-service/internal/repository"
)

type ReportService struct {
	events *repository.EventRepository
}

func NewReportService(events *repository.EventRepository) *ReportService {
	return &ReportService{events: events}
}

// Export renders every event matching the filter, unpaginated, in the
// requested format.
func (s *ReportService) Export(ctx context.Context, format string, filter model.EventFilter) (*report.Document, error) {
	switch report.Format(format) {
	case report.FormatCSV, report.FormatPDF, report.FormatXLSX:
	default:
		return nil, fmt.Errorf("%w: format must be csv, pdf or xlsx", ErrInvalidInput)
	}

	rows, err := s.events.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	stamp := time.Now().UnixMilli()

	switch report.Format(format) {
	case report.FormatCSV:
		data, err := report.RenderCSV(rows)
		if err != nil {
			return nil, err
		}
		return &report.Document{
			Data:        data,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("crane-incidents-%d.csv", stamp),
		}, nil
	case report.FormatPDF:
		data, err := report.RenderPDF(rows, filter)
		if err != nil {
			return nil, err
		}
		return &report.Document{
			Data:        data,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("crane-incidents-%d.pdf", stamp),
		}, nil
	case report.FormatXLSX:
		data, err := report.RenderXLSX(rows)
		if err != nil {
			return nil, err
		}
		return &report.Document{
			Data:        data,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    fmt.Sprintf("crane-incidents-%d.xlsx", stamp),
		}, nil
	default:
		// Unreachable: format was validated above.
		return nil, fmt.Errorf("%w: format must be csv, pdf or xlsx", ErrInvalidInput)
	}
}
