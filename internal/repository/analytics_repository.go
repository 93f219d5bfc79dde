package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"crane-safety-service/internal/model"
)

const trendDays = 30

type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Summary computes the headline counters in one pass over the filtered set.
// active_cranes counts distinct crane ids, not events.
func (r *AnalyticsRepository) Summary(ctx context.Context, filter model.EventFilter) (model.AnalyticsSummary, error) {
	var summary model.AnalyticsSummary

	query := scopeEvents(r.db.WithContext(ctx).Table("events"), filter, "").
		Select(`COUNT(*) AS total_incidents,
			COALESCE(SUM(CASE WHEN event_type = 'red' THEN 1 ELSE 0 END), 0) AS red_zone_events,
			COALESCE(SUM(CASE WHEN event_type = 'yellow' THEN 1 ELSE 0 END), 0) AS yellow_zone_events,
			COUNT(DISTINCT crane_id) AS active_cranes`)

	if err := query.Scan(&summary).Error; err != nil {
		return model.AnalyticsSummary{}, err
	}
	return summary, nil
}

// IncidentsTrend groups matching events by calendar date, most recent 30
// distinct dates, newest first.
func (r *AnalyticsRepository) IncidentsTrend(ctx context.Context, filter model.EventFilter) ([]model.TrendPoint, error) {
	type row struct {
		Date  time.Time
		Count int64
	}
	var rows []row

	query := scopeEvents(r.db.WithContext(ctx).Table("events"), filter, "").
		Select(`DATE("timestamp") AS date, COUNT(*) AS count`).
		Group(`DATE("timestamp")`).
		Order("date DESC").
		Limit(trendDays)

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]model.TrendPoint, 0, len(rows))
	for _, row := range rows {
		result = append(result, model.TrendPoint{
			Date:  row.Date.Format("2006-01-02"),
			Count: row.Count,
		})
	}
	return result, nil
}

func (r *AnalyticsRepository) EventBreakdown(ctx context.Context, filter model.EventFilter) ([]model.TypeCount, error) {
	type row struct {
		EventType string
		Count     int64
	}
	var rows []row

	query := scopeEvents(r.db.WithContext(ctx).Table("events"), filter, "").
		Select("event_type, COUNT(*) AS count").
		Group("event_type").
		Order("event_type ASC")

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]model.TypeCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, model.TypeCount{Type: row.EventType, Count: row.Count})
	}
	return result, nil
}

// OperatorWise counts events per non-null operator, top 10. The secondary
// ascending key keeps tie order stable across calls.
func (r *AnalyticsRepository) OperatorWise(ctx context.Context, filter model.EventFilter) ([]model.OperatorCount, error) {
	var rows []model.OperatorCount

	query := scopeEvents(r.db.WithContext(ctx).Table("events"), filter, "").
		Select("operator, COUNT(*) AS count").
		Where("operator IS NOT NULL").
		Group("operator").
		Order("count DESC, operator ASC").
		Limit(10)

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ShiftWise counts events per joined shift name. Events with no shift, or a
// shift_id matching nothing, land in the "Unknown" bucket.
func (r *AnalyticsRepository) ShiftWise(ctx context.Context, filter model.EventFilter) ([]model.ShiftCount, error) {
	type row struct {
		Shift *string
		Count int64
	}
	var rows []row

	query := scopeEvents(r.db.WithContext(ctx).Table("events e"), filter, "e").
		Select("s.name AS shift, COUNT(*) AS count").
		Joins("LEFT JOIN shifts s ON s.id = e.shift_id").
		Group("s.name").
		Order("count DESC, shift ASC")

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]model.ShiftCount, 0, len(rows))
	for _, row := range rows {
		name := "Unknown"
		if row.Shift != nil && *row.Shift != "" {
			name = *row.Shift
		}
		result = append(result, model.ShiftCount{Shift: name, Count: row.Count})
	}
	return result, nil
}

func (r *AnalyticsRepository) CraneWise(ctx context.Context, filter model.EventFilter) ([]model.CraneCount, error) {
	var rows []model.CraneCount

	query := scopeEvents(r.db.WithContext(ctx).Table("events"), filter, "").
		Select("crane_id, COUNT(*) AS count").
		Group("crane_id").
		Order("count DESC, crane_id ASC").
		Limit(10)

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
