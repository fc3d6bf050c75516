package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/daykey"
	"github.com/yourname/cadence/internal/service"
)

func GetTodaySummary(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		ctx := c.Request.Context()

		settings, err := app.SettingRepo().ListSettings(ctx, user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch settings")
			return
		}

		eventsByModule := make(map[internal.ModuleType][]internal.Event)
		for _, setting := range settings {
			if !setting.Enabled {
				continue
			}
			events, err := app.EventRepo().ListEventsByModule(ctx, user.ID, setting.ModuleType)
			if err != nil {
				HandleError(c, app.Logger(), err, 500, "Failed to fetch events")
				return
			}
			eventsByModule[setting.ModuleType] = events
		}

		in := service.TodaySummaryInput{
			Settings:         settings,
			EventsByModule:   eventsByModule,
			Now:              time.Now(),
			DayAnchorMinutes: app.Config().DayAnchorMinutes,
		}
		if raw := c.Query("total_earned_min"); raw != "" {
			total, err := strconv.Atoi(raw)
			if err != nil {
				HandleError(c, app.Logger(), err, 400, "Invalid total_earned_min")
				return
			}
			in.TotalEarnedMin = &total
		}

		summary := app.Calculator().CalculateTodaySummary(in)
		HandleSuccess(c, app.Logger(), summary, nil)
	}
}

func GetModuleState(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		ctx := c.Request.Context()

		moduleType := internal.ModuleType(c.Param("module_type"))
		if !moduleType.IsValid() {
			HandleError(c, app.Logger(), errors.New("unknown module type"), 400, "Invalid module type")
			return
		}

		settings, err := app.SettingRepo().ListSettings(ctx, user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch settings")
			return
		}
		var setting *internal.ModuleSetting
		for i := range settings {
			if settings[i].ModuleType == moduleType {
				setting = &settings[i]
				break
			}
		}
		if setting == nil {
			HandleError(c, app.Logger(), errors.New("module not configured"), 404, "Module not configured")
			return
		}

		events, err := app.EventRepo().ListEventsByModule(ctx, user.ID, moduleType)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch events")
			return
		}

		state := app.Calculator().CalculateModuleState(moduleType, setting, events, time.Now(), app.Config().DayAnchorMinutes)
		HandleSuccess(c, app.Logger(), state, nil)
	}
}

func GetWeeklyReport(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		ctx := c.Request.Context()

		weekStart := c.Query("week_start")
		if weekStart == "" {
			var err error
			todayKey := daykey.LocalDayKey(time.Now(), app.Config().DayAnchorMinutes)
			weekStart, err = daykey.WeekStartDayKey(todayKey)
			if err != nil {
				HandleError(c, app.Logger(), err, 500, "Failed to derive week start")
				return
			}
		}

		settings, err := app.SettingRepo().ListSettings(ctx, user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch settings")
			return
		}
		events, err := app.EventRepo().ListEvents(ctx, user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch events")
			return
		}

		report, err := app.Calculator().CalculateWeeklyReport(service.WeeklyReportInput{
			Settings:        settings,
			AllEvents:       events,
			WeekStartDayKey: weekStart,
		})
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid week_start")
			return
		}

		HandleSuccess(c, app.Logger(), report, nil)
	}
}
