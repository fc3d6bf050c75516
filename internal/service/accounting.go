package service

import (
	"sort"
	"time"

	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/daykey"
	"github.com/yourname/cadence/internal/payload"
)

// CalculateGapThreshold returns the interval (minutes) beyond which a module
// is treated as "returning after a break" instead of still counting down.
func CalculateGapThreshold(targetIntervalMin int) int {
	threshold := targetIntervalMin * 10
	if threshold < 480 {
		threshold = 480
	}
	return threshold
}

// CalculateEarlyLostMinutes returns the minutes forfeited by acting at now
// when the target was targetTime. Acting on or after the target costs nothing.
func CalculateEarlyLostMinutes(targetTime, now time.Time) int {
	lost := daykey.ElapsedMinutes(now, targetTime)
	if lost < 0 {
		return 0
	}
	return lost
}

// earnedMinutes sums the reported postponement minutes over DELAY events.
func earnedMinutes(events []internal.Event) int {
	total := 0
	for _, e := range events {
		if e.EventType == internal.EventDelay {
			total += e.DelayMinutes
		}
	}
	return total
}

// consumeEventsAsc returns the CONSUME_OR_OPEN action events sorted by
// ascending timestamp. The input order is not trusted.
func consumeEventsAsc(events []internal.Event) []internal.Event {
	var consumes []internal.Event
	for _, e := range events {
		if e.EventType == internal.EventAction && e.ActionKind == internal.ActionConsumeOrOpen {
			consumes = append(consumes, e)
		}
	}
	sort.Slice(consumes, func(i, j int) bool {
		return consumes[i].Timestamp.Before(consumes[j].Timestamp)
	})
	return consumes
}

// pairwiseLostMinutes charges, for each consecutive pair of consume events,
// the shortfall between the actual gap and the target interval.
func pairwiseLostMinutes(consumes []internal.Event, targetIntervalMin int) int {
	lost := 0
	for i := 1; i < len(consumes); i++ {
		target := daykey.AddMinutes(consumes[i-1].Timestamp, targetIntervalMin)
		lost += CalculateEarlyLostMinutes(target, consumes[i].Timestamp)
	}
	return lost
}

// netMinutes clamps the ledger to zero: a module never reports negative net.
func netMinutes(earned, lost int) int {
	if earned > lost {
		return earned - lost
	}
	return 0
}

// sessionEndMinutes extracts actualMinutes from a SESSION_END event. A
// payload that fails schema validation contributes nothing; this is
// deliberate leniency, logged so malformed data stays observable.
func (c *Calculator) sessionEndMinutes(e internal.Event) (int, bool) {
	end, err := payload.ParseSessionEnd(e.Payload)
	if err != nil {
		c.log.Warnf("ignoring malformed SESSION_END payload on event %s: %v", e.ID, err)
		return 0, false
	}
	return end.ActualMinutes, true
}

// focusTotalMinutes sums actualMinutes over the SESSION_END events in the
// given window.
func (c *Calculator) focusTotalMinutes(events []internal.Event) int {
	total := 0
	for _, e := range events {
		if e.EventType != internal.EventAction || e.ActionKind != internal.ActionSessionEnd {
			continue
		}
		if actual, ok := c.sessionEndMinutes(e); ok {
			total += actual
		}
	}
	return total
}

// filterByDayKey keeps only events whose baked-in LocalDayKey equals key.
func filterByDayKey(events []internal.Event, key string) []internal.Event {
	var out []internal.Event
	for _, e := range events {
		if e.LocalDayKey == key {
			out = append(out, e)
		}
	}
	return out
}
