package storage

import (
	"context"

	"github.com/yourname/cadence/internal"
)

type EventRepository interface {
	SaveEvent(ctx context.Context, event *internal.Event) error
	ListEvents(ctx context.Context, userID string) ([]internal.Event, error)
	ListEventsByModule(ctx context.Context, userID string, moduleType internal.ModuleType) ([]internal.Event, error)
}

type SettingRepository interface {
	UpsertSetting(ctx context.Context, userID string, setting *internal.ModuleSetting) error
	ListSettings(ctx context.Context, userID string) ([]internal.ModuleSetting, error)
}

type UserRepository interface {
	GetUserByToken(ctx context.Context, token string) (*internal.User, error)
}
