package test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/storage"
)

func setupTestStorage(t *testing.T) *storage.FileStorage {
	testDir := "testdata"
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		_ = os.MkdirAll(testDir, 0755)
	}
	eventsFile := testDir + "/test_events.json"
	settingsFile := testDir + "/test_settings.json"
	usersFile := testDir + "/test_users.json"
	os.Remove(eventsFile)
	os.Remove(settingsFile)
	os.Remove(usersFile)
	os.WriteFile(usersFile, []byte(`[{"id":"u1","token":"MOCK-TOKEN","name":"Test User"}]`), 0644)
	s, err := storage.NewFileStorage(eventsFile, settingsFile, usersFile, internal.NewNopLogger())
	assert.NoError(t, err)
	return s
}

func TestSaveAndListEvents(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	event := &internal.Event{
		ID:          "e1",
		UserID:      "u1",
		ModuleType:  internal.ModuleSmoke,
		EventType:   internal.EventAction,
		ActionKind:  internal.ActionConsumeOrOpen,
		Timestamp:   time.Now().Add(-time.Hour),
		LocalDayKey: "2025-03-10",
	}
	assert.NoError(t, s.SaveEvent(ctx, event))

	events, err := s.ListEvents(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, internal.ActionConsumeOrOpen, events[0].ActionKind)

	none, err := s.ListEvents(ctx, "nobody")
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestListEventsByModuleFilters(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	now := time.Now()
	events := []*internal.Event{
		{ID: "e1", UserID: "u1", ModuleType: internal.ModuleSmoke, EventType: internal.EventAction, ActionKind: internal.ActionConsumeOrOpen, Timestamp: now.Add(-2 * time.Hour)},
		{ID: "e2", UserID: "u1", ModuleType: internal.ModuleSNS, EventType: internal.EventAction, ActionKind: internal.ActionConsumeOrOpen, Timestamp: now.Add(-1 * time.Hour)},
		{ID: "e3", UserID: "u1", ModuleType: internal.ModuleSmoke, EventType: internal.EventDelay, DelayMinutes: 5, Timestamp: now},
	}
	for _, e := range events {
		assert.NoError(t, s.SaveEvent(ctx, e))
	}

	smoke, err := s.ListEventsByModule(ctx, "u1", internal.ModuleSmoke)
	assert.NoError(t, err)
	assert.Len(t, smoke, 2)
	// ascending by timestamp
	assert.Equal(t, "e1", smoke[0].ID)
	assert.Equal(t, "e3", smoke[1].ID)
}

func TestEventsPersistAcrossReload(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	event := &internal.Event{
		ID:         "e1",
		UserID:     "u1",
		ModuleType: internal.ModuleCaffeine,
		EventType:  internal.EventAction,
		ActionKind: internal.ActionConsumeOrOpen,
		Timestamp:  time.Now(),
		Payload:    map[string]any{"note": "espresso"},
	}
	assert.NoError(t, s.SaveEvent(ctx, event))
	assert.NoError(t, s.Close())

	reloaded, err := storage.NewFileStorage("testdata/test_events.json", "testdata/test_settings.json", "testdata/test_users.json", internal.NewNopLogger())
	assert.NoError(t, err)
	events, err := reloaded.ListEvents(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "espresso", events[0].Payload["note"])
}

func TestUpsertAndListSettings(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	setting := &internal.ModuleSetting{ModuleType: internal.ModuleSmoke, Enabled: true, TargetIntervalMin: 60}
	assert.NoError(t, s.UpsertSetting(ctx, "u1", setting))

	// second upsert for the same module replaces
	setting2 := &internal.ModuleSetting{ModuleType: internal.ModuleSmoke, Enabled: true, TargetIntervalMin: 90}
	assert.NoError(t, s.UpsertSetting(ctx, "u1", setting2))

	settings, err := s.ListSettings(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, settings, 1)
	assert.Equal(t, 90, settings[0].TargetIntervalMin)
}

func TestGetUserByToken(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	user, err := s.GetUserByToken(ctx, "MOCK-TOKEN")
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = s.GetUserByToken(ctx, "WRONG")
	assert.Error(t, err)
}
