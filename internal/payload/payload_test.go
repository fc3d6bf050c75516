package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSessionStartValid(t *testing.T) {
	start, err := ParseSessionStart(map[string]any{"plannedMinutes": 25})
	assert.NoError(t, err)
	assert.Equal(t, 25, start.PlannedMinutes)
}

func TestParseSessionStartFromWire(t *testing.T) {
	// JSON decoding hands us float64, not int
	start, err := ParseSessionStart(map[string]any{"plannedMinutes": float64(10)})
	assert.NoError(t, err)
	assert.Equal(t, 10, start.PlannedMinutes)
}

func TestParseSessionStartInvalid(t *testing.T) {
	cases := []map[string]any{
		nil,
		{},
		{"plannedMinutes": 0},
		{"plannedMinutes": "ten"},
		{"plannedMinutes": 12.5},
	}
	for _, payload := range cases {
		_, err := ParseSessionStart(payload)
		assert.Error(t, err, "payload %v should be rejected", payload)
		assert.ErrorIs(t, err, ErrInvalidPayload)
	}
}

func TestParseSessionEndValid(t *testing.T) {
	end, err := ParseSessionEnd(map[string]any{"actualMinutes": 42, "endReason": "completed"})
	assert.NoError(t, err)
	assert.Equal(t, 42, end.ActualMinutes)
	assert.Equal(t, "completed", end.EndReason)
}

func TestParseSessionEndReasonOptional(t *testing.T) {
	end, err := ParseSessionEnd(map[string]any{"actualMinutes": 0})
	assert.NoError(t, err)
	assert.Equal(t, 0, end.ActualMinutes)
	assert.Equal(t, "", end.EndReason)
}

func TestParseSessionEndInvalid(t *testing.T) {
	cases := []map[string]any{
		nil,
		{"endReason": "completed"},
		{"actualMinutes": -1},
		{"actualMinutes": "42"},
	}
	for _, payload := range cases {
		_, err := ParseSessionEnd(payload)
		assert.Error(t, err, "payload %v should be rejected", payload)
	}
}
