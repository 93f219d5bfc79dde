package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crane-safety-service/internal/model"
)

const eventShiftSelect = `e.*, s.name AS shift_name, s.shift_manager AS shift_manager`

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns one page of filtered events joined with their shift, newest
// timestamp first with insertion order breaking ties, plus the unwindowed
// total for the same filter. Both queries go through scopeEvents so the total
// always matches what the data query would return without the window.
func (r *EventRepository) List(ctx context.Context, filter model.EventFilter, page model.PageRequest) ([]model.EventWithShift, int64, error) {
	var total int64
	countQuery := scopeEvents(r.db.WithContext(ctx).Table("events e"), filter, "e")
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if total == 0 {
		return []model.EventWithShift{}, 0, nil
	}

	var rows []model.EventWithShift
	dataQuery := scopeEvents(r.db.WithContext(ctx).Table("events e"), filter, "e").
		Select(eventShiftSelect).
		Joins("LEFT JOIN shifts s ON s.id = e.shift_id").
		Order(`e."timestamp" DESC, e.id ASC`).
		Limit(page.Limit).
		Offset(page.Offset())
	if err := dataQuery.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// ListAll returns every matching event in list order, without a window. Used
// by the report exporter.
func (r *EventRepository) ListAll(ctx context.Context, filter model.EventFilter) ([]model.EventWithShift, error) {
	var rows []model.EventWithShift
	query := scopeEvents(r.db.WithContext(ctx).Table("events e"), filter, "e").
		Select(eventShiftSelect).
		Joins("LEFT JOIN shifts s ON s.id = e.shift_id").
		Order(`e."timestamp" DESC, e.id ASC`)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.EventWithShift, error) {
	var rows []model.EventWithShift
	query := r.db.WithContext(ctx).Table("events e").
		Select(eventShiftSelect).
		Joins("LEFT JOIN shifts s ON s.id = e.shift_id").
		Where("e.id = ?", id).
		Limit(1)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// CreateIdempotent inserts the event unless its event_id already exists. The
// dedupe rides on the unique index via ON CONFLICT DO NOTHING, so concurrent
// ingestion of the same event_id cannot produce two rows. When the row
// already existed, event is overwritten with the stored row and created is
// false.
func (r *EventRepository) CreateIdempotent(ctx context.Context, event *model.Event) (created bool, err error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(event)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	var existing model.Event
	if err := r.db.WithContext(ctx).Where("event_id = ?", event.EventID).Take(&existing).Error; err != nil {
		return false, err
	}
	*event = existing
	return false, nil
}

func (r *EventRepository) UpdateRemarks(ctx context.Context, id int64, remarks string) (*model.EventWithShift, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		Update("remarks", remarks)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *EventRepository) SetReviewed(ctx context.Context, id int64, reviewed bool) (*model.EventWithShift, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		Update("reviewed", reviewed)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}
