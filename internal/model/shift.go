package model

import "time"

// Shift is a named work period referenced by events. An event whose shift_id
// matches no shift is reported with an "Unknown" label, never an error.
type Shift struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	StartTime    string    `gorm:"type:text;not null" json:"start_time"`
	EndTime      string    `gorm:"type:text;not null" json:"end_time"`
	ShiftManager *string   `gorm:"type:text" json:"shift_manager"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Shift) TableName() string {
	return "shifts"
}
