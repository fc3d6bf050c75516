package service

import (
	"time"

	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/daykey"
)

// levelThresholds is the cumulative-earned ladder for the integrated level.
var levelThresholds = []int{0, 30, 120, 360, 720, 1440, 2880, 5760, 11520, 23040}

const (
	suggestionMinRemaining = 5
	suggestionMaxRemaining = 20
)

var suggestionDelayOptions = []int{1, 3}

type TodaySummaryInput struct {
	Settings         []internal.ModuleSetting
	EventsByModule   map[internal.ModuleType][]internal.Event
	Now              time.Time
	DayAnchorMinutes int
	// TotalEarnedMin, when set, is the caller-supplied cumulative earned
	// total used to derive the integrated level.
	TotalEarnedMin *int
}

// CalculateTodaySummary runs the module calculator across all enabled
// settings and folds the results into one integrated summary.
func (c *Calculator) CalculateTodaySummary(in TodaySummaryInput) internal.TodaySummary {
	summary := internal.TodaySummary{
		DayKey: daykey.LocalDayKey(in.Now, in.DayAnchorMinutes),
	}

	for i := range in.Settings {
		setting := in.Settings[i]
		if !setting.Enabled {
			continue
		}
		state := c.CalculateModuleState(setting.ModuleType, &setting, in.EventsByModule[setting.ModuleType], in.Now, in.DayAnchorMinutes)
		summary.Modules = append(summary.Modules, state)
		summary.Integrated.EarnedMin += state.Today.EarnedMin
		summary.Integrated.LostMin += state.Today.LostMin
		summary.Integrated.NetMin += state.Today.NetMin
	}

	if in.TotalEarnedMin != nil {
		level, next := levelFor(*in.TotalEarnedMin)
		summary.Integrated.Level = level
		summary.Integrated.NextLevelRemainingMin = next
	}

	summary.FloatingSuggestion = floatingSuggestion(summary.Modules)
	return summary
}

// ModuleStateFor looks up the computed state for one module type. The second
// return is false when the module was not among the enabled settings.
func ModuleStateFor(states []internal.ModuleState, moduleType internal.ModuleType) (internal.ModuleState, bool) {
	for _, s := range states {
		if s.ModuleType == moduleType {
			return s, true
		}
	}
	return internal.ModuleState{}, false
}

// levelFor maps a cumulative earned total onto the threshold ladder. Levels
// are 1-based; the remaining figure is 0 at the top of the ladder.
func levelFor(totalEarnedMin int) (level, nextRemaining int) {
	for i, threshold := range levelThresholds {
		if totalEarnedMin >= threshold {
			level = i + 1
		}
	}
	if level < len(levelThresholds) {
		nextRemaining = levelThresholds[level] - totalEarnedMin
	}
	return level, nextRemaining
}

// floatingSuggestion picks the interval-kind countdown closest to expiry,
// provided it is close enough to matter but not already moot. First minimal
// wins on ties.
func floatingSuggestion(states []internal.ModuleState) *internal.FloatingSuggestion {
	var best *internal.ModuleState
	for i := range states {
		s := &states[i]
		if s.ModuleType.IsSessionKind() || s.Status != internal.StatusCountdown {
			continue
		}
		if s.RemainingMin < suggestionMinRemaining || s.RemainingMin > suggestionMaxRemaining {
			continue
		}
		if best == nil || s.RemainingMin < best.RemainingMin {
			best = s
		}
	}
	if best == nil {
		return nil
	}
	return &internal.FloatingSuggestion{
		ModuleType:      best.ModuleType,
		RemainingMin:    best.RemainingMin,
		DelayOptionsMin: append([]int(nil), suggestionDelayOptions...),
	}
}
