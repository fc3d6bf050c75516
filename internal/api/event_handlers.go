package api

import (
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/service"
)

func PostEvent(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.EventRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		now := time.Now()
		if err := service.ValidateEventRequest(&body, now); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		event, err := service.CreateEvent(c.Request.Context(), app.EventRepo(), user, &body, now, app.Config().DayAnchorMinutes)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save event")
			return
		}

		HandleSuccess(c, app.Logger(), event, nil)
	}
}

func GetEvents(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		events, err := app.EventRepo().ListEvents(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch events")
			return
		}

		sort.Slice(events, func(i, j int) bool {
			return events[i].Timestamp.After(events[j].Timestamp)
		})

		HandleSuccess(c, app.Logger(), events, nil)
	}
}
