package model

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// EventFilter is the canonical set of optional constraints applied uniformly
// to listing, analytics and export queries. A zero field means "no constraint
// on that dimension", never "match null".
type EventFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	EventType string
	CraneID   string
	Operator  string
	ShiftID   *int64
	Severity  string
}

// PageRequest is a validated paging window.
type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination describes the window actually served plus the unwindowed total.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

func NewPagination(page PageRequest, total int64) Pagination {
	var totalPages int64
	if total > 0 {
		totalPages = (total + int64(page.Limit) - 1) / int64(page.Limit)
	}
	return Pagination{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ParseEventFilter normalizes raw query values into an EventFilter. Empty or
// malformed values are treated as absent; unknown keys are ignored. No field
// is existence-checked against other tables.
func ParseEventFilter(values url.Values) EventFilter {
	filter := EventFilter{}

	if parsed, ok := parseTimeValue(values.Get("date_from")); ok {
		filter.DateFrom = &parsed
	}
	if parsed, ok := parseTimeValue(values.Get("date_to")); ok {
		filter.DateTo = &parsed
	}

	filter.EventType = strings.TrimSpace(values.Get("event_type"))
	filter.CraneID = strings.TrimSpace(values.Get("crane_id"))
	filter.Operator = strings.TrimSpace(values.Get("operator"))
	filter.Severity = strings.TrimSpace(values.Get("severity"))

	if raw := strings.TrimSpace(values.Get("shift_id")); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			filter.ShiftID = &id
		}
	}

	return filter
}

// ParsePageRequest reads page/limit, falling back to page=1, limit=50 for
// missing, malformed or non-positive values.
func ParsePageRequest(values url.Values) PageRequest {
	page := PageRequest{Page: DefaultPage, Limit: DefaultLimit}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page.Page = parsed
		}
	}
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page.Limit = parsed
		}
	}

	return page
}

func parseTimeValue(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}
