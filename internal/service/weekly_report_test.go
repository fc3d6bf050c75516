package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/service"
)

// weekStart matches baseTime's week (Monday 2025-03-10).
const weekStart = "2025-03-10"

func TestWeeklyReportInvalidWeekStart(t *testing.T) {
	_, err := newCalc().CalculateWeeklyReport(service.WeeklyReportInput{WeekStartDayKey: "bogus"})
	assert.Error(t, err)
}

func TestWeeklyReportIntervalModule(t *testing.T) {
	day1 := baseTime               // Monday 12:00
	day2 := baseTime.AddDate(0, 0, 1)
	events := []internal.Event{
		consumeAt(internal.ModuleSmoke, day1),
		consumeAt(internal.ModuleSmoke, day1.Add(40*time.Minute)), // 20 lost
		delayAt(internal.ModuleSmoke, day1.Add(2*time.Hour), 15, internal.TriggerUrge),
		consumeAt(internal.ModuleSmoke, day2),
		consumeAt(internal.ModuleSmoke, day2.Add(90*time.Minute)), // on time, 0 lost
		// outside the week entirely
		consumeAt(internal.ModuleSmoke, day1.AddDate(0, 0, -3)),
	}
	report, err := newCalc().CalculateWeeklyReport(service.WeeklyReportInput{
		Settings:        []internal.ModuleSetting{{ModuleType: internal.ModuleSmoke, Enabled: true, TargetIntervalMin: 60}},
		AllEvents:       events,
		WeekStartDayKey: weekStart,
	})
	assert.NoError(t, err)
	assert.Equal(t, weekStart, report.WeekStartDayKey)
	if assert.Len(t, report.Modules, 1) {
		m := report.Modules[0]
		assert.Equal(t, internal.ModuleSmoke, m.ModuleType)
		assert.Equal(t, 15, m.EarnedMin)
		assert.Equal(t, 20, m.LostMin)
		assert.Equal(t, 0, m.NetMin)
		assert.Equal(t, 4, m.ActionCount)
		// gaps: 40, 1400 (to next day), 90 -> mean 510
		assert.InDelta(t, 510.0, m.AvgIntervalMin, 0.01)
	}
	assert.Equal(t, 15, report.Integrated.EarnedMin)
	assert.Equal(t, 20, report.Integrated.LostMin)
}

func TestWeeklyReportSessionModule(t *testing.T) {
	events := []internal.Event{
		sessionStartAt(baseTime, map[string]any{"plannedMinutes": 25}),
		sessionEndAt(baseTime.Add(25*time.Minute), map[string]any{"actualMinutes": 25}),
		sessionStartAt(baseTime.Add(2*time.Hour), map[string]any{"plannedMinutes": 25}),
		sessionEndAt(baseTime.Add(2*time.Hour+35*time.Minute), map[string]any{"actualMinutes": 35}),
		sessionEndAt(baseTime.Add(3*time.Hour), map[string]any{"oops": true}), // malformed, ignored
		delayAt(internal.ModuleFocus, baseTime.Add(time.Hour), 5, internal.TriggerFocusExtend),
	}
	report, err := newCalc().CalculateWeeklyReport(service.WeeklyReportInput{
		Settings:        []internal.ModuleSetting{{ModuleType: internal.ModuleFocus, Enabled: true}},
		AllEvents:       events,
		WeekStartDayKey: weekStart,
	})
	assert.NoError(t, err)
	if assert.Len(t, report.Modules, 1) {
		m := report.Modules[0]
		assert.Equal(t, 5, m.EarnedMin)
		assert.Equal(t, 0, m.LostMin)
		assert.Equal(t, 5, m.NetMin)
		assert.Equal(t, 60, m.FocusTotalMin)
		assert.InDelta(t, 30.0, m.AvgSessionMin, 0.01)
	}
}

func TestWeeklyReportSkipsDisabledModules(t *testing.T) {
	report, err := newCalc().CalculateWeeklyReport(service.WeeklyReportInput{
		Settings: []internal.ModuleSetting{
			{ModuleType: internal.ModuleSmoke, Enabled: false, TargetIntervalMin: 60},
		},
		WeekStartDayKey: weekStart,
	})
	assert.NoError(t, err)
	assert.Empty(t, report.Modules)
}

// The weekly lost/earned figures must equal the sum of the 7 independently
// computed daily figures.
func TestWeeklyEqualsSumOfDailies(t *testing.T) {
	setting := internal.ModuleSetting{ModuleType: internal.ModuleSNS, Enabled: true, TargetIntervalMin: 30}
	var events []internal.Event
	for day := 0; day < 7; day++ {
		dayNoon := baseTime.AddDate(0, 0, day)
		events = append(events,
			consumeAt(internal.ModuleSNS, dayNoon),
			consumeAt(internal.ModuleSNS, dayNoon.Add(10*time.Minute)),
			consumeAt(internal.ModuleSNS, dayNoon.Add(45*time.Minute)),
			delayAt(internal.ModuleSNS, dayNoon.Add(time.Hour), day+1, internal.TriggerUrge),
		)
	}

	calc := newCalc()
	sumEarned, sumLost := 0, 0
	for day := 0; day < 7; day++ {
		now := baseTime.AddDate(0, 0, day).Add(6 * time.Hour)
		state := calc.CalculateModuleState(internal.ModuleSNS, &setting, events, now, anchor)
		sumEarned += state.Today.EarnedMin
		sumLost += state.Today.LostMin
	}

	report, err := calc.CalculateWeeklyReport(service.WeeklyReportInput{
		Settings:        []internal.ModuleSetting{setting},
		AllEvents:       events,
		WeekStartDayKey: weekStart,
	})
	assert.NoError(t, err)
	assert.Equal(t, sumEarned, report.Modules[0].EarnedMin)
	assert.Equal(t, sumLost, report.Modules[0].LostMin)
}
