package api

import (
	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/config"
	"github.com/yourname/cadence/internal/service"
	"github.com/yourname/cadence/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Config() *config.Config
	Calculator() *service.Calculator
	EventRepo() storage.EventRepository
	SettingRepo() storage.SettingRepository
}
