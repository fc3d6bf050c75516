package internal

import "time"

// ModuleStatus is the derived per-module state machine vocabulary.
// Interval-kind modules use DISABLED/SETUP_REQUIRED/NO_BASELINE/GAP_DETECTED/
// COUNTDOWN/READY; session-kind modules use DISABLED/FOCUS_IDLE/FOCUS_RUNNING.
// FOCUS_COACHING is part of the vocabulary but is never produced by the
// calculator; coaching lives in the UI layer as a transient overlay.
type ModuleStatus string

const (
	StatusDisabled      ModuleStatus = "DISABLED"
	StatusSetupRequired ModuleStatus = "SETUP_REQUIRED"
	StatusNoBaseline    ModuleStatus = "NO_BASELINE"
	StatusGapDetected   ModuleStatus = "GAP_DETECTED"
	StatusCountdown     ModuleStatus = "COUNTDOWN"
	StatusReady         ModuleStatus = "READY"
	StatusFocusIdle     ModuleStatus = "FOCUS_IDLE"
	StatusFocusRunning  ModuleStatus = "FOCUS_RUNNING"
	StatusFocusCoaching ModuleStatus = "FOCUS_COACHING"
)

type CTAKey string

const (
	CTALogAction     CTAKey = "LOG_ACTION"
	CTARecover       CTAKey = "RECOVER"
	CTAUrge          CTAKey = "URGE"
	CTAStartSession  CTAKey = "START_SESSION"
	CTAEndSession    CTAKey = "END_SESSION"
	CTAUrgeInterrupt CTAKey = "URGE_INTERRUPT"
)

type CTA struct {
	Key     CTAKey `json:"key"`
	Enabled bool   `json:"enabled"`
}

// DayTotals is the earned/lost/net distance ledger for one module over one
// window (a day or a week). Net is never negative at the module level.
type DayTotals struct {
	EarnedMin   int `json:"earned_min"`
	LostMin     int `json:"lost_min"`
	NetMin      int `json:"net_min"`
	ActionCount int `json:"action_count"`
}

// FocusSession describes the currently running focus session, if any.
type FocusSession struct {
	StartedAt        time.Time `json:"started_at"`
	PlannedMinutes   int       `json:"planned_minutes"`
	ExtendedMinutes  int       `json:"extended_minutes"`
	ElapsedMinutes   int       `json:"elapsed_minutes"`
	RemainingMinutes int       `json:"remaining_minutes"`
}

// ModuleState is recomputed fresh on every read from the full event history;
// it is never persisted and has no identity beyond its ModuleType.
type ModuleState struct {
	ModuleType        ModuleType    `json:"module_type"`
	Status            ModuleStatus  `json:"status"`
	LastActionTime    *time.Time    `json:"last_action_time,omitempty"`
	TargetTime        *time.Time    `json:"target_time,omitempty"`
	RemainingMin      int           `json:"remaining_min"`
	ActualIntervalMin int           `json:"actual_interval_min"`
	Today             DayTotals     `json:"today"`
	CTAPrimary        CTA           `json:"cta_primary"`
	FocusSession      *FocusSession `json:"focus_session,omitempty"`
	TodayFocusTotal   int           `json:"today_focus_total_min"`
}

type IntegratedSummary struct {
	EarnedMin             int `json:"earned_min"`
	LostMin               int `json:"lost_min"`
	NetMin                int `json:"net_min"`
	Level                 int `json:"level,omitempty"`
	NextLevelRemainingMin int `json:"next_level_remaining_min,omitempty"`
}

// FloatingSuggestion is a single proactive nudge surfaced when an
// interval-kind countdown is close to expiring.
type FloatingSuggestion struct {
	ModuleType      ModuleType `json:"module_type"`
	RemainingMin    int        `json:"remaining_min"`
	DelayOptionsMin []int      `json:"delay_options_min"`
}

type TodaySummary struct {
	DayKey             string              `json:"day_key"`
	Integrated         IntegratedSummary   `json:"integrated"`
	Modules            []ModuleState       `json:"modules"`
	FloatingSuggestion *FloatingSuggestion `json:"floating_suggestion,omitempty"`
}

// WeeklyModuleReport carries the same ledger over a 7-day window plus the
// kind-specific aggregate (avg interval for interval-kind, avg session length
// and focus total for session-kind).
type WeeklyModuleReport struct {
	ModuleType     ModuleType `json:"module_type"`
	EarnedMin      int        `json:"earned_min"`
	LostMin        int        `json:"lost_min"`
	NetMin         int        `json:"net_min"`
	ActionCount    int        `json:"action_count,omitempty"`
	AvgIntervalMin float64    `json:"avg_interval_min,omitempty"`
	AvgSessionMin  float64    `json:"avg_session_min,omitempty"`
	FocusTotalMin  int        `json:"focus_total_min,omitempty"`
}

type WeeklyReport struct {
	WeekStartDayKey string               `json:"week_start_day_key"`
	Integrated      IntegratedSummary    `json:"integrated"`
	Modules         []WeeklyModuleReport `json:"modules"`
}
