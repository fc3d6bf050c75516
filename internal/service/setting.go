package service

import (
	"context"
	"errors"

	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/storage"
)

type SettingRequest struct {
	ModuleType        string `json:"module_type" validate:"required,oneof=SMOKE SNS CAFFEINE FOCUS"`
	Enabled           bool   `json:"enabled"`
	TargetIntervalMin int    `json:"target_interval_min" validate:"gte=0"`
	DefaultSessionMin int    `json:"default_session_min,omitempty" validate:"gte=0"`
}

func ValidateSettingRequest(req *SettingRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	moduleType := internal.ModuleType(req.ModuleType)
	if !moduleType.IsSessionKind() && req.Enabled && req.TargetIntervalMin < 1 {
		return errors.New("interval modules require a positive target_interval_min")
	}
	return nil
}

func UpsertSetting(ctx context.Context, settingRepo storage.SettingRepository, user *internal.User, req *SettingRequest) (*internal.ModuleSetting, error) {
	setting := &internal.ModuleSetting{
		ModuleType:        internal.ModuleType(req.ModuleType),
		Enabled:           req.Enabled,
		TargetIntervalMin: req.TargetIntervalMin,
	}
	if req.DefaultSessionMin > 0 {
		setting.Config = &internal.ModuleConfig{DefaultSessionMin: req.DefaultSessionMin}
	}
	if err := settingRepo.UpsertSetting(ctx, user.ID, setting); err != nil {
		return nil, err
	}
	return setting, nil
}
