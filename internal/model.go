package internal

import "time"

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// ModuleType identifies one tracked habit. Its kind (interval vs session)
// decides which status vocabulary and accounting rules apply.
type ModuleType string

const (
	ModuleSmoke    ModuleType = "SMOKE"
	ModuleSNS      ModuleType = "SNS"
	ModuleCaffeine ModuleType = "CAFFEINE"
	ModuleFocus    ModuleType = "FOCUS"
)

func (m ModuleType) IsValid() bool {
	switch m {
	case ModuleSmoke, ModuleSNS, ModuleCaffeine, ModuleFocus:
		return true
	}
	return false
}

// IsSessionKind reports whether the module is tracked as a timed session
// rather than as a minimum interval between actions.
func (m ModuleType) IsSessionKind() bool {
	return m == ModuleFocus
}

type EventType string

const (
	EventAction     EventType = "ACTION"
	EventDelay      EventType = "DELAY"
	EventAdjustment EventType = "ADJUSTMENT"
)

func (e EventType) IsValid() bool {
	switch e {
	case EventAction, EventDelay, EventAdjustment:
		return true
	}
	return false
}

// ActionKind refines ACTION events. It is meaningless on other event types.
type ActionKind string

const (
	ActionConsumeOrOpen ActionKind = "CONSUME_OR_OPEN"
	ActionSessionStart  ActionKind = "SESSION_START"
	ActionSessionEnd    ActionKind = "SESSION_END"
)

func (a ActionKind) IsValid() bool {
	switch a {
	case ActionConsumeOrOpen, ActionSessionStart, ActionSessionEnd:
		return true
	}
	return false
}

type TriggerContext string

const (
	TriggerFocusExtend TriggerContext = "FOCUS_EXTEND"
	TriggerUrge        TriggerContext = "URGE"
	TriggerManual      TriggerContext = "MANUAL"
)

// Event is an immutable, append-only record of one user report.
// LocalDayKey is computed once at creation time from the day-anchor offset in
// effect then and is never recomputed: a later day-anchor change does not
// retroactively re-bucket history.
type Event struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	ModuleType     ModuleType     `json:"module_type"`
	EventType      EventType      `json:"event_type"`
	Timestamp      time.Time      `json:"timestamp"`
	LocalDayKey    string         `json:"local_day_key"`
	ActionKind     ActionKind     `json:"action_kind,omitempty"`
	DelayMinutes   int            `json:"delay_minutes,omitempty"`
	ReasonLabel    string         `json:"reason_label,omitempty"`
	TriggerContext TriggerContext `json:"trigger_context,omitempty"`
	Payload        map[string]any `json:"payload,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

type ModuleConfig struct {
	DefaultSessionMin int `json:"default_session_min,omitempty"`
}

type ModuleSetting struct {
	ModuleType        ModuleType    `json:"module_type"`
	Enabled           bool          `json:"enabled"`
	TargetIntervalMin int           `json:"target_interval_min"`
	Config            *ModuleConfig `json:"config,omitempty"`
}

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
