package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/daykey"
	"github.com/yourname/cadence/internal/payload"
	"github.com/yourname/cadence/internal/storage"
)

var validate = validator.New()

// maxFutureSkew bounds how far ahead of server time a reported timestamp may
// lie before ingress rejects it.
const maxFutureSkew = 5 * time.Minute

type EventRequest struct {
	ModuleType     string         `json:"module_type" validate:"required,oneof=SMOKE SNS CAFFEINE FOCUS"`
	EventType      string         `json:"event_type" validate:"required,oneof=ACTION DELAY ADJUSTMENT"`
	Timestamp      time.Time      `json:"timestamp" validate:"required"`
	ActionKind     string         `json:"action_kind,omitempty" validate:"omitempty,oneof=CONSUME_OR_OPEN SESSION_START SESSION_END"`
	DelayMinutes   int            `json:"delay_minutes,omitempty" validate:"gte=0"`
	ReasonLabel    string         `json:"reason_label,omitempty"`
	TriggerContext string         `json:"trigger_context,omitempty"`
	Payload        map[string]any `json:"payload,omitempty"`
}

// ValidateEventRequest applies the ingress rules: struct tags first, then the
// cross-field rules the tags cannot express. Malformed events must never
// reach the calculator.
func ValidateEventRequest(body *EventRequest, now time.Time) error {
	if err := validate.Struct(body); err != nil {
		return err
	}
	if body.Timestamp.After(now.Add(maxFutureSkew)) {
		return errors.New("timestamp is too far in the future")
	}
	switch internal.EventType(body.EventType) {
	case internal.EventAction:
		if body.ActionKind == "" {
			return errors.New("action events require action_kind")
		}
	case internal.EventDelay:
		if body.DelayMinutes < 1 {
			return errors.New("delay events require a positive delay_minutes")
		}
	}
	switch internal.ActionKind(body.ActionKind) {
	case internal.ActionSessionStart:
		if _, err := payload.ParseSessionStart(body.Payload); err != nil {
			return err
		}
	case internal.ActionSessionEnd:
		if _, err := payload.ParseSessionEnd(body.Payload); err != nil {
			return err
		}
	}
	return nil
}

// CreateEvent persists a new event. The local day key is computed exactly
// once here, from the day-anchor in effect now; a later anchor change never
// re-buckets stored history.
func CreateEvent(ctx context.Context, eventRepo storage.EventRepository, user *internal.User, body *EventRequest, now time.Time, dayAnchorMinutes int) (*internal.Event, error) {
	event := &internal.Event{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		ModuleType:     internal.ModuleType(body.ModuleType),
		EventType:      internal.EventType(body.EventType),
		Timestamp:      body.Timestamp,
		LocalDayKey:    daykey.LocalDayKey(body.Timestamp, dayAnchorMinutes),
		ActionKind:     internal.ActionKind(body.ActionKind),
		DelayMinutes:   body.DelayMinutes,
		ReasonLabel:    body.ReasonLabel,
		TriggerContext: internal.TriggerContext(body.TriggerContext),
		Payload:        body.Payload,
		CreatedAt:      now,
	}
	if err := eventRepo.SaveEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
