package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/service"
)

func PutSetting(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var req service.SettingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: module_type required")
			return
		}

		if err := service.ValidateSettingRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Setting validation failed")
			return
		}

		setting, err := service.UpsertSetting(c.Request.Context(), app.SettingRepo(), user, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save setting")
			return
		}

		HandleSuccess(c, app.Logger(), setting, nil)
	}
}

func GetSettings(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		settings, err := app.SettingRepo().ListSettings(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch settings")
			return
		}

		HandleSuccess(c, app.Logger(), settings, nil)
	}
}
