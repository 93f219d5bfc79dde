package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"crane-safety-service/internal/model"
	"crane-safety-service/internal/repository"
	"crane-safety-service/internal/storage"
)

type EventService struct {
	events *repository.EventRepository
	store  storage.Store
}

func NewEventService(events *repository.EventRepository, store storage.Store) *EventService {
	return &EventService{events: events, store: store}
}

type CreateEventInput struct {
	EventID           string
	EventType         string
	Timestamp         string
	CraneID           string
	ZoneType          string
	MotionType        string
	ShiftID           *int64
	Operator          *string
	AIConfidenceScore *float64
	ImageReference    *string
	Remarks           *string
}

// Ingest validates and stores one incident. Re-ingesting an event_id that
// already exists returns the stored row with created=false; nothing is
// overwritten. Validation failures are rejected before any store access.
func (s *EventService) Ingest(ctx context.Context, input CreateEventInput) (*model.Event, bool, error) {
	if input.EventID == "" || input.EventType == "" || input.Timestamp == "" || input.CraneID == "" {
		return nil, false, fmt.Errorf("%w: event_id, event_type, timestamp and crane_id are required", ErrInvalidInput)
	}

	eventType := model.EventType(input.EventType)
	if eventType != model.EventTypeRed && eventType != model.EventTypeYellow {
		return nil, false, fmt.Errorf("%w: event_type must be red or yellow", ErrInvalidInput)
	}

	timestamp, err := time.Parse(time.RFC3339, input.Timestamp)
	if err != nil {
		return nil, false, fmt.Errorf("%w: timestamp must be RFC3339", ErrInvalidInput)
	}

	zoneType := input.ZoneType
	if zoneType == "" {
		zoneType = "unknown"
	}
	motionType := model.MotionType(input.MotionType)
	if motionType == "" {
		motionType = model.MotionTypeCT
	}
	if motionType != model.MotionTypeCT && motionType != model.MotionTypeLT {
		return nil, false, fmt.Errorf("%w: motion_type must be CT or LT", ErrInvalidInput)
	}
	if input.AIConfidenceScore != nil && (*input.AIConfidenceScore < 0 || *input.AIConfidenceScore > 1) {
		return nil, false, fmt.Errorf("%w: ai_confidence_score must be within [0,1]", ErrInvalidInput)
	}

	imageReference, err := s.resolveImage(ctx, input.ImageReference)
	if err != nil {
		return nil, false, err
	}

	event := &model.Event{
		EventID:           input.EventID,
		EventType:         eventType,
		Severity:          model.SeverityFor(eventType),
		Timestamp:         timestamp,
		CraneID:           input.CraneID,
		ZoneType:          zoneType,
		MotionType:        motionType,
		ShiftID:           input.ShiftID,
		Operator:          input.Operator,
		AIConfidenceScore: input.AIConfidenceScore,
		ImageReference:    imageReference,
		Remarks:           input.Remarks,
	}

	created, err := s.events.CreateIdempotent(ctx, event)
	if err != nil {
		return nil, false, err
	}
	return event, created, nil
}

// resolveImage stores an inline base64 payload and returns its key. A value
// that is not decodable base64 is passed through as an opaque reference to an
// already-stored object.
func (s *EventService) resolveImage(ctx context.Context, ref *string) (*string, error) {
	if ref == nil || *ref == "" {
		return nil, nil
	}

	raw := *ref
	contentType := "image/jpeg"
	if strings.HasPrefix(raw, "data:") {
		meta, rest, found := strings.Cut(raw, ",")
		if !found {
			return nil, fmt.Errorf("%w: malformed image data url", ErrInvalidInput)
		}
		contentType = strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
		raw = rest
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(data) == 0 {
		return ref, nil
	}

	key, err := s.store.Put(ctx, data, contentType)
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func (s *EventService) List(ctx context.Context, filter model.EventFilter, page model.PageRequest) ([]model.EventWithShift, model.Pagination, error) {
	rows, total, err := s.events.List(ctx, filter, page)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return rows, model.NewPagination(page, total), nil
}

func (s *EventService) Get(ctx context.Context, id int64) (*model.EventWithShift, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) UpdateRemarks(ctx context.Context, id int64, remarks string) (*model.EventWithShift, error) {
	event, err := s.events.UpdateRemarks(ctx, id, remarks)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

// SetReviewed toggles the reviewed flag. A nil value means true: reviewing
// without an explicit flag marks the event reviewed.
func (s *EventService) SetReviewed(ctx context.Context, id int64, reviewed *bool) (*model.EventWithShift, error) {
	value := true
	if reviewed != nil {
		value = *reviewed
	}

	event, err := s.events.SetReviewed(ctx, id, value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

// GetImage resolves a stored image reference to its bytes and content type.
func (s *EventService) GetImage(ctx context.Context, key string) ([]byte, string, error) {
	data, contentType, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	return data, contentType, nil
}
