package model

// AnalyticsData is the full aggregate view for one filter. Every number in it
// is derived from the same predicate the event listing uses.
type AnalyticsData struct {
	TotalIncidents   int64           `json:"total_incidents"`
	RedZoneEvents    int64           `json:"red_zone_events"`
	YellowZoneEvents int64           `json:"yellow_zone_events"`
	ActiveCranes     int64           `json:"active_cranes"`
	IncidentsTrend   []TrendPoint    `json:"incidents_trend"`
	EventBreakdown   []TypeCount     `json:"event_breakdown"`
	OperatorWise     []OperatorCount `json:"operator_wise"`
	ShiftWise        []ShiftCount    `json:"shift_wise"`
	CraneWise        []CraneCount    `json:"crane_wise"`
}

// AnalyticsSummary holds the headline counters shown on the dashboard.
type AnalyticsSummary struct {
	TotalIncidents   int64 `json:"total_incidents"`
	RedZoneEvents    int64 `json:"red_zone_events"`
	YellowZoneEvents int64 `json:"yellow_zone_events"`
	ActiveCranes     int64 `json:"active_cranes"`
}

type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type OperatorCount struct {
	Operator string `json:"operator"`
	Count    int64  `json:"count"`
}

type ShiftCount struct {
	Shift string `json:"shift"`
	Count int64  `json:"count"`
}

type CraneCount struct {
	CraneID string `json:"crane_id"`
	Count   int64  `json:"count"`
}
