package model

import (
	"time"
)

type EventType string

const (
	EventTypeRed    EventType = "red"
	EventTypeYellow EventType = "yellow"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

type MotionType string

const (
	MotionTypeCT MotionType = "CT"
	MotionTypeLT MotionType = "LT"
)

// Event is one logged crane-safety incident. The observation itself is
// immutable after ingestion; only remarks and the reviewed flag change.
type Event struct {
	ID                int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID           string     `gorm:"type:text;not null;uniqueIndex" json:"event_id"`
	EventType         EventType  `gorm:"type:text;not null" json:"event_type"`
	Severity          Severity   `gorm:"type:text;not null" json:"severity"`
	Timestamp         time.Time  `gorm:"not null;index" json:"timestamp"`
	CraneID           string     `gorm:"type:text;not null;index" json:"crane_id"`
	ZoneType          string     `gorm:"type:text;not null;default:unknown" json:"zone_type"`
	MotionType        MotionType `gorm:"type:text;not null;default:CT" json:"motion_type"`
	ShiftID           *int64     `gorm:"index" json:"shift_id"`
	Operator          *string    `gorm:"type:text" json:"operator"`
	AIConfidenceScore *float64   `json:"ai_confidence_score"`
	ImageReference    *string    `gorm:"type:text" json:"image_reference"`
	Remarks           *string    `gorm:"type:text" json:"remarks"`
	Reviewed          bool       `gorm:"not null;default:false" json:"reviewed"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// SeverityFor derives the severity label from the event type. The mapping is
// applied once at creation time and never recomputed.
func SeverityFor(t EventType) Severity {
	if t == EventTypeRed {
		return SeverityCritical
	}
	return SeverityWarning
}

// EventWithShift is an event row joined with its shift for display.
type EventWithShift struct {
	Event
	ShiftName    *string `json:"shift_name,omitempty"`
	ShiftManager *string `json:"shift_manager,omitempty"`
}
