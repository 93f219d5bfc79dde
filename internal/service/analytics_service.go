package service

import (
	"context"

	"crane-safety-service/internal/model"
	"crane-safety-service/internal/repository"
)

type AnalyticsService struct {
	analytics *repository.AnalyticsRepository
}

func NewAnalyticsService(analytics *repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analytics: analytics}
}

// Get assembles the full aggregate view for one filter. Every query below
// shares the filter's predicate with the event listing.
func (s *AnalyticsService) Get(ctx context.Context, filter model.EventFilter) (*model.AnalyticsData, error) {
	summary, err := s.analytics.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}
	trend, err := s.analytics.IncidentsTrend(ctx, filter)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.analytics.EventBreakdown(ctx, filter)
	if err != nil {
		return nil, err
	}
	operators, err := s.analytics.OperatorWise(ctx, filter)
	if err != nil {
		return nil, err
	}
	shifts, err := s.analytics.ShiftWise(ctx, filter)
	if err != nil {
		return nil, err
	}
	cranes, err := s.analytics.CraneWise(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &model.AnalyticsData{
		TotalIncidents:   summary.TotalIncidents,
		RedZoneEvents:    summary.RedZoneEvents,
		YellowZoneEvents: summary.YellowZoneEvents,
		ActiveCranes:     summary.ActiveCranes,
		IncidentsTrend:   trend,
		EventBreakdown:   breakdown,
		OperatorWise:     operators,
		ShiftWise:        shifts,
		CraneWise:        cranes,
	}, nil
}
