// Package daykey converts absolute timestamps into "local day" and "week"
// buckets under a configurable day-anchor offset, so a day can run e.g.
// 04:00→04:00 instead of midnight→midnight.
package daykey

import "time"

const dayKeyLayout = "2006-01-02"

// LocalDayKey returns the YYYY-MM-DD key the timestamp belongs to under the
// given anchor. A timestamp whose local minute-of-day is strictly before the
// anchor attributes to the previous day; the anchor minute itself starts the
// new day.
func LocalDayKey(ts time.Time, dayAnchorMinutes int) string {
	minuteOfDay := ts.Hour()*60 + ts.Minute()
	day := ts
	if minuteOfDay < dayAnchorMinutes {
		day = day.AddDate(0, 0, -1)
	}
	return day.Format(dayKeyLayout)
}

// WeekStartDayKey rewinds the given day key to the Monday on or before it.
// Sunday counts as day 7 of the week.
func WeekStartDayKey(dayKey string) (string, error) {
	day, err := time.Parse(dayKeyLayout, dayKey)
	if err != nil {
		return "", err
	}
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1)).Format(dayKeyLayout), nil
}

// WeekDayKeys returns the 7 consecutive day keys starting at weekStartDayKey.
func WeekDayKeys(weekStartDayKey string) ([]string, error) {
	start, err := time.Parse(dayKeyLayout, weekStartDayKey)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 7)
	for i := range keys {
		keys[i] = start.AddDate(0, 0, i).Format(dayKeyLayout)
	}
	return keys, nil
}

// ElapsedMinutes is the floor-truncated number of minutes from from to to.
func ElapsedMinutes(from, to time.Time) int {
	return int(to.Sub(from) / time.Minute)
}

// AddMinutes shifts a time forward by n minutes.
func AddMinutes(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * time.Minute)
}
