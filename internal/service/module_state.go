package service

import (
	"time"

	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/daykey"
	"github.com/yourname/cadence/internal/payload"
)

const (
	defaultSessionMinutes = 10
	longRunningSessionMin = 360
)

// Calculator derives module states and summaries from the append-only event
// log. Every method is a pure function of its arguments; the logger is only
// used to surface malformed payloads that are deliberately tolerated.
type Calculator struct {
	log internal.Logger
}

func NewCalculator(logger internal.Logger) *Calculator {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &Calculator{log: logger}
}

// CalculateModuleState derives one module's current status, timing fields and
// today's distance ledger from its settings and events. setting may be nil.
func (c *Calculator) CalculateModuleState(moduleType internal.ModuleType, setting *internal.ModuleSetting, events []internal.Event, now time.Time, dayAnchorMinutes int) internal.ModuleState {
	if setting == nil || !setting.Enabled {
		return internal.ModuleState{
			ModuleType: moduleType,
			Status:     internal.StatusDisabled,
			CTAPrimary: internal.CTA{Key: internal.CTALogAction, Enabled: false},
		}
	}
	if moduleType.IsSessionKind() {
		return c.sessionState(moduleType, setting, events, now, dayAnchorMinutes)
	}
	return c.intervalState(moduleType, setting, events, now, dayAnchorMinutes)
}

func (c *Calculator) intervalState(moduleType internal.ModuleType, setting *internal.ModuleSetting, events []internal.Event, now time.Time, dayAnchorMinutes int) internal.ModuleState {
	state := internal.ModuleState{ModuleType: moduleType}

	if setting.TargetIntervalMin <= 0 {
		state.Status = internal.StatusSetupRequired
		state.CTAPrimary = internal.CTA{Key: internal.CTALogAction, Enabled: false}
		return state
	}

	todayKey := daykey.LocalDayKey(now, dayAnchorMinutes)
	todayEvents := filterByDayKey(events, todayKey)
	todayConsumes := consumeEventsAsc(todayEvents)
	earned := earnedMinutes(todayEvents)
	lost := pairwiseLostMinutes(todayConsumes, setting.TargetIntervalMin)
	state.Today = internal.DayTotals{
		EarnedMin:   earned,
		LostMin:     lost,
		NetMin:      netMinutes(earned, lost),
		ActionCount: len(todayConsumes),
	}

	last := latestConsume(events)
	if last == nil {
		state.Status = internal.StatusNoBaseline
		state.CTAPrimary = internal.CTA{Key: internal.CTALogAction, Enabled: true}
		return state
	}

	lastAt := last.Timestamp
	targetTime := daykey.AddMinutes(lastAt, setting.TargetIntervalMin)
	state.LastActionTime = &lastAt
	state.TargetTime = &targetTime
	state.ActualIntervalMin = daykey.ElapsedMinutes(lastAt, now)
	state.RemainingMin = ceilMinutesUntil(now, targetTime)

	switch {
	case state.ActualIntervalMin > CalculateGapThreshold(setting.TargetIntervalMin):
		state.Status = internal.StatusGapDetected
		state.CTAPrimary = internal.CTA{Key: internal.CTARecover, Enabled: true}
	case state.RemainingMin > 0:
		state.Status = internal.StatusCountdown
		state.CTAPrimary = internal.CTA{Key: internal.CTAUrge, Enabled: true}
	default:
		state.Status = internal.StatusReady
		state.CTAPrimary = internal.CTA{Key: internal.CTALogAction, Enabled: true}
	}
	return state
}

func (c *Calculator) sessionState(moduleType internal.ModuleType, setting *internal.ModuleSetting, events []internal.Event, now time.Time, dayAnchorMinutes int) internal.ModuleState {
	state := internal.ModuleState{ModuleType: moduleType}

	defaultMin := defaultSessionMinutes
	if setting.Config != nil && setting.Config.DefaultSessionMin > 0 {
		defaultMin = setting.Config.DefaultSessionMin
	}

	todayKey := daykey.LocalDayKey(now, dayAnchorMinutes)
	todayEvents := filterByDayKey(events, todayKey)
	earned := earnedMinutes(todayEvents)
	state.Today = internal.DayTotals{
		EarnedMin: earned,
		LostMin:   0,
		NetMin:    earned,
	}
	state.TodayFocusTotal = c.focusTotalMinutes(todayEvents)

	start := activeSessionStart(events)
	if start == nil {
		state.Status = internal.StatusFocusIdle
		state.CTAPrimary = internal.CTA{Key: internal.CTAStartSession, Enabled: true}
		return state
	}

	planned := defaultMin
	if parsed, err := payload.ParseSessionStart(start.Payload); err == nil {
		planned = parsed.PlannedMinutes
	} else {
		c.log.Warnf("ignoring malformed SESSION_START payload on event %s: %v", start.ID, err)
	}

	extended := 0
	for _, e := range events {
		if e.EventType == internal.EventDelay && e.TriggerContext == internal.TriggerFocusExtend && e.Timestamp.After(start.Timestamp) {
			extended += e.DelayMinutes
		}
	}

	elapsed := daykey.ElapsedMinutes(start.Timestamp, now)
	remaining := planned + extended - elapsed
	if remaining < 0 {
		remaining = 0
	}

	state.Status = internal.StatusFocusRunning
	state.FocusSession = &internal.FocusSession{
		StartedAt:        start.Timestamp,
		PlannedMinutes:   planned,
		ExtendedMinutes:  extended,
		ElapsedMinutes:   elapsed,
		RemainingMinutes: remaining,
	}
	if elapsed > longRunningSessionMin {
		state.CTAPrimary = internal.CTA{Key: internal.CTAEndSession, Enabled: true}
	} else {
		state.CTAPrimary = internal.CTA{Key: internal.CTAUrgeInterrupt, Enabled: true}
	}
	return state
}

// latestConsume returns the most recent CONSUME_OR_OPEN action, or nil.
func latestConsume(events []internal.Event) *internal.Event {
	var last *internal.Event
	for i := range events {
		e := &events[i]
		if e.EventType != internal.EventAction || e.ActionKind != internal.ActionConsumeOrOpen {
			continue
		}
		if last == nil || e.Timestamp.After(last.Timestamp) {
			last = e
		}
	}
	return last
}

// activeSessionStart returns the latest SESSION_START if no SESSION_END
// follows it, otherwise nil.
func activeSessionStart(events []internal.Event) *internal.Event {
	var start *internal.Event
	for i := range events {
		e := &events[i]
		if e.EventType == internal.EventAction && e.ActionKind == internal.ActionSessionStart {
			if start == nil || e.Timestamp.After(start.Timestamp) {
				start = e
			}
		}
	}
	if start == nil {
		return nil
	}
	for i := range events {
		e := &events[i]
		if e.EventType == internal.EventAction && e.ActionKind == internal.ActionSessionEnd && e.Timestamp.After(start.Timestamp) {
			return nil
		}
	}
	return start
}

// ceilMinutesUntil counts whole minutes from now to target, rounding any
// partial minute up, floored at zero.
func ceilMinutesUntil(now, target time.Time) int {
	d := target.Sub(now)
	if d <= 0 {
		return 0
	}
	return int((d + time.Minute - 1) / time.Minute)
}
