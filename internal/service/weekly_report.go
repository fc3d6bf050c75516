package service

import (
	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/daykey"
)

type WeeklyReportInput struct {
	Settings        []internal.ModuleSetting
	AllEvents       []internal.Event
	WeekStartDayKey string
}

// CalculateWeeklyReport re-runs the daily distance accounting over each of
// the week's 7 day keys and folds the per-module results into one report.
// Lost minutes are charged per day, so the weekly figure always equals the
// sum of the 7 independent daily figures.
func (c *Calculator) CalculateWeeklyReport(in WeeklyReportInput) (internal.WeeklyReport, error) {
	dayKeys, err := daykey.WeekDayKeys(in.WeekStartDayKey)
	if err != nil {
		return internal.WeeklyReport{}, err
	}

	report := internal.WeeklyReport{WeekStartDayKey: in.WeekStartDayKey}

	byModule := make(map[internal.ModuleType][]internal.Event)
	inWeek := make(map[string]bool, len(dayKeys))
	for _, k := range dayKeys {
		inWeek[k] = true
	}
	for _, e := range in.AllEvents {
		if inWeek[e.LocalDayKey] {
			byModule[e.ModuleType] = append(byModule[e.ModuleType], e)
		}
	}

	for i := range in.Settings {
		setting := in.Settings[i]
		if !setting.Enabled {
			continue
		}
		weekEvents := byModule[setting.ModuleType]
		var module internal.WeeklyModuleReport
		if setting.ModuleType.IsSessionKind() {
			module = c.weeklySessionReport(setting, weekEvents)
		} else {
			module = c.weeklyIntervalReport(setting, weekEvents, dayKeys)
		}
		report.Modules = append(report.Modules, module)
		report.Integrated.EarnedMin += module.EarnedMin
		report.Integrated.LostMin += module.LostMin
		report.Integrated.NetMin += module.NetMin
	}

	return report, nil
}

func (c *Calculator) weeklyIntervalReport(setting internal.ModuleSetting, weekEvents []internal.Event, dayKeys []string) internal.WeeklyModuleReport {
	earned := earnedMinutes(weekEvents)

	lost := 0
	for _, key := range dayKeys {
		dayConsumes := consumeEventsAsc(filterByDayKey(weekEvents, key))
		lost += pairwiseLostMinutes(dayConsumes, setting.TargetIntervalMin)
	}

	consumes := consumeEventsAsc(weekEvents)
	avgInterval := 0.0
	if len(consumes) > 1 {
		totalGap := 0
		for i := 1; i < len(consumes); i++ {
			totalGap += daykey.ElapsedMinutes(consumes[i-1].Timestamp, consumes[i].Timestamp)
		}
		avgInterval = float64(totalGap) / float64(len(consumes)-1)
	}

	return internal.WeeklyModuleReport{
		ModuleType:     setting.ModuleType,
		EarnedMin:      earned,
		LostMin:        lost,
		NetMin:         netMinutes(earned, lost),
		ActionCount:    len(consumes),
		AvgIntervalMin: avgInterval,
	}
}

func (c *Calculator) weeklySessionReport(setting internal.ModuleSetting, weekEvents []internal.Event) internal.WeeklyModuleReport {
	earned := earnedMinutes(weekEvents)

	totalMin := 0
	sessionCount := 0
	for _, e := range weekEvents {
		if e.EventType != internal.EventAction || e.ActionKind != internal.ActionSessionEnd {
			continue
		}
		actual, ok := c.sessionEndMinutes(e)
		if !ok {
			continue
		}
		totalMin += actual
		sessionCount++
	}

	avgSession := 0.0
	if sessionCount > 0 {
		avgSession = float64(totalMin) / float64(sessionCount)
	}

	return internal.WeeklyModuleReport{
		ModuleType:    setting.ModuleType,
		EarnedMin:     earned,
		LostMin:       0,
		NetMin:        earned,
		AvgSessionMin: avgSession,
		FocusTotalMin: totalMin,
	}
}
