package journal

import (
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/middleware"
	"personalhub/model"
	"personalhub/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func JournalController(router *gin.Engine, deps *common.Deps) {
	api := router.Group("/api", middleware.AccessTokenMiddleware(deps.Tokens))

	entries := &common.Resource[model.JournalEntry, dto.JournalEntryRequest]{
		DB:    deps.DB,
		Name:  "Journal entry",
		Owned: true,
		Order: "date DESC",
		Filter: func(c *gin.Context, q *gorm.DB) *gorm.DB {
			if mood := c.Query("mood"); mood != "" {
				q = q.Where("mood = ?", mood)
			}
			return q
		},
	}
	api.GET("/journal/dashboard", func(c *gin.Context) {
		Dashboard(c, deps)
	})
	api.GET("/journal/mood", func(c *gin.Context) {
		MoodTracker(c, deps)
	})
	entries.Register(api, "/journal")

	(&common.Resource[model.Philosophy, dto.PhilosophyRequest]{
		DB: deps.DB, Name: "Philosophy", Owned: true, Order: "date_written DESC",
	}).Register(api, "/philosophies")
	(&common.Resource[model.VisionGoal, dto.VisionGoalRequest]{
		DB: deps.DB, Name: "Vision goal", Owned: true, Order: "target_date IS NULL, target_date",
	}).Register(api, "/vision-goals")
	(&common.Resource[model.LifeLesson, dto.LifeLessonRequest]{
		DB: deps.DB, Name: "Life lesson", Owned: true, Order: "date_learned DESC",
	}).Register(api, "/life-lessons")
}

func Dashboard(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	db := deps.DB.WithContext(c.Request.Context())

	recent := []model.JournalEntry{}
	if err := db.Where("user_id = ?", userID).Order("date DESC").Limit(5).Find(&recent).Error; err != nil {
		common.Fail(c, err)
		return
	}
	counts := gin.H{}
	for key, m := range map[string]interface{}{
		"total_entries":      &model.JournalEntry{},
		"total_philosophies": &model.Philosophy{},
		"total_vision_goals": &model.VisionGoal{},
		"total_life_lessons": &model.LifeLesson{},
	} {
		var n int64
		if err := db.Model(m).Where("user_id = ?", userID).Count(&n).Error; err != nil {
			common.Fail(c, err)
			return
		}
		counts[key] = n
	}
	counts["recent_entries"] = recent
	c.JSON(http.StatusOK, counts)
}

type moodPoint struct {
	Date        string `json:"date"`
	Mood        string `json:"mood"`
	EnergyLevel string `json:"energy_level"`
}

// MoodStats counts moods and energy levels and lists the mood per date, oldest first.
func MoodStats(entries []model.JournalEntry) (moods, energy map[string]int, series []moodPoint) {
	moods = map[string]int{}
	for _, m := range model.Moods {
		moods[m] = 0
	}
	energy = map[string]int{}
	for _, e := range model.EnergyLevels {
		energy[e] = 0
	}
	series = []moodPoint{}
	for _, e := range entries {
		if e.Mood != "" {
			moods[e.Mood]++
		}
		if e.EnergyLevel != "" {
			energy[e.EnergyLevel]++
		}
		series = append(series, moodPoint{Date: e.Date.Format(services.DateLayout), Mood: e.Mood, EnergyLevel: e.EnergyLevel})
	}
	return moods, energy, series
}

// MoodTracker summarises the last 30 days of entries.
func MoodTracker(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	window := services.LastDays(services.Today(), 30)
	var entries []model.JournalEntry
	err := deps.DB.WithContext(c.Request.Context()).
		Where("user_id = ? AND date >= ?", userID, window.From).
		Order("date").
		Find(&entries).Error
	if err != nil {
		common.Fail(c, err)
		return
	}
	moods, energy, series := MoodStats(entries)
	c.JSON(http.StatusOK, gin.H{"mood_counts": moods, "energy_counts": energy, "entries": series})
}
