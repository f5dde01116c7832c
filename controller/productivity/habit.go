package productivity

import (
	"errors"
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/model"
	"personalhub/services"

	"github.com/gin-gonic/gin"
)

func habitResource(deps *common.Deps) *common.Resource[model.Habit, dto.HabitRequest] {
	return &common.Resource[model.Habit, dto.HabitRequest]{
		DB:       deps.DB,
		Name:     "Habit",
		Owned:    true,
		Order:    "name",
		ReadOnly: []string{"current_streak", "last_completed_date"},
	}
}

func HabitController(api *gin.RouterGroup, deps *common.Deps) {
	habitResource(deps).Register(api, "/habits")
	api.POST("/habits/:id/track", func(c *gin.Context) {
		TrackHabit(c, deps)
	})
}

// TrackHabit records today's completion. A repeat on the same day is not an error:
// the unchanged habit comes back with already_completed set.
func TrackHabit(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	habitID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	habit, err := deps.Streaks.Track(c.Request.Context(), userID, habitID, services.Today())
	switch {
	case errors.Is(err, services.ErrAlreadyCompletedToday):
		c.JSON(http.StatusOK, gin.H{"message": "Habit already completed today", "already_completed": true, "habit": habit})
	case err != nil:
		common.Fail(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Habit tracked", "already_completed": false, "habit": habit})
	}
}
