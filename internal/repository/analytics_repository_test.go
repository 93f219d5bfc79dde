package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crane-safety-service/internal/model"
)

func TestAnalyticsRepositorySummary(t *testing.T) {
	mock, gdb := setupMockDB(t)
	repo := NewAnalyticsRepository(gdb)

	rows := sqlmock.NewRows([]string{"total_incidents", "red_zone_events", "yellow_zone_events", "active_cranes"}).
		AddRow(12, 7, 5, 3)
	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total_incidents`).
		WithArgs("C1").
		WillReturnRows(rows)

	summary, err := repo.Summary(context.Background(), model.EventFilter{CraneID: "C1"})

	require.NoError(t, err)
	assert.Equal(t, int64(12), summary.TotalIncidents)
	assert.Equal(t, int64(7), summary.RedZoneEvents)
	assert.Equal(t, int64(5), summary.YellowZoneEvents)
	assert.Equal(t, int64(3), summary.ActiveCranes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositorySummary_EmptySet(t *testing.T) {
	mock, gdb := setupMockDB(t)
	repo := NewAnalyticsRepository(gdb)

	rows := sqlmock.NewRows([]string{"total_incidents", "red_zone_events", "yellow_zone_events", "active_cranes"}).
		AddRow(0, 0, 0, 0)
	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total_incidents`).
		WillReturnRows(rows)

	summary, err := repo.Summary(context.Background(), model.EventFilter{})

	require.NoError(t, err)
	assert.Zero(t, summary.TotalIncidents)
	assert.Zero(t, summary.RedZoneEvents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryIncidentsTrend_FormatsDates(t *testing.T) {
	mock, gdb := setupMockDB(t)
	repo := NewAnalyticsRepository(gdb)

	rows := sqlmock.NewRows([]string{"date", "count"}).
		AddRow(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), 4).
		AddRow(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 9)
	mock.ExpectQuery(`SELECT DATE\("timestamp"\) AS date, COUNT\(\*\) AS count FROM events`).
		WillReturnRows(rows)

	trend, err := repo.IncidentsTrend(context.Background(), model.EventFilter{})

	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, model.TrendPoint{Date: "2024-03-02", Count: 4}, trend[0])
	assert.Equal(t, model.TrendPoint{Date: "2024-03-01", Count: 9}, trend[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryEventBreakdown(t *testing.T) {
	mock, gdb := setupMockDB(t)
	repo := NewAnalyticsRepository(gdb)

	rows := sqlmock.NewRows([]string{"event_type", "count"}).
		AddRow("red", 8).
		AddRow("yellow", 2)
	mock.ExpectQuery(`SELECT event_type, COUNT\(\*\) AS count FROM events`).
		WillReturnRows(rows)

	breakdown, err := repo.EventBreakdown(context.Background(), model.EventFilter{})

	require.NoError(t, err)
	require.Len(t, breakdown, 2)
	assert.Equal(t, model.TypeCount{Type: "red", Count: 8}, breakdown[0])
	assert.Equal(t, model.TypeCount{Type: "yellow", Count: 2}, breakdown[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryOperatorWise_AppliesFilter(t *testing.T) {
	mock, gdb := setupMockDB(t)
	repo := NewAnalyticsRepository(gdb)

	rows := sqlmock.NewRows([]string{"operator", "count"}).
		AddRow("Alice", 6).
		AddRow("Bob", 6)
	mock.ExpectQuery(`SELECT operator, COUNT\(\*\) AS count FROM events WHERE event_type = \$1 AND operator IS NOT NULL`).
		WithArgs("red", 10).
		WillReturnRows(rows)

	operators, err := repo.OperatorWise(context.Background(), model.EventFilter{EventType: "red"})

	require.NoError(t, err)
	require.Len(t, operators, 2)
	assert.Equal(t, "Alice", operators[0].Operator)
	assert.Equal(t, int64(6), operators[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryShiftWise_BucketsUnknown(t *testing.T) {
	mock, gdb := setupMockDB(t)
	repo := NewAnalyticsRepository(gdb)

	rows := sqlmock.NewRows([]string{"shift", "count"}).
		AddRow("Morning", 10).
		AddRow(nil, 3)
	mock.ExpectQuery(`SELECT s\.name AS shift, COUNT\(\*\) AS count FROM events e LEFT JOIN shifts s`).
		WillReturnRows(rows)

	shifts, err := repo.ShiftWise(context.Background(), model.EventFilter{})

	require.NoError(t, err)
	require.Len(t, shifts, 2)
	assert.Equal(t, model.ShiftCount{Shift: "Morning", Count: 10}, shifts[0])
	assert.Equal(t, model.ShiftCount{Shift: "Unknown", Count: 3}, shifts[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryCraneWise(t *testing.T) {
	mock, gdb := setupMockDB(t)
	repo := NewAnalyticsRepository(gdb)

	rows := sqlmock.NewRows([]string{"crane_id", "count"}).
		AddRow("C2", 9).
		AddRow("C1", 1)
	mock.ExpectQuery(`SELECT crane_id, COUNT\(\*\) AS count FROM events`).
		WillReturnRows(rows)

	cranes, err := repo.CraneWise(context.Background(), model.EventFilter{})

	require.NoError(t, err)
	require.Len(t, cranes, 2)
	assert.Equal(t, model.CraneCount{CraneID: "C2", Count: 9}, cranes[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}
