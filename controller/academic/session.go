package academic

import (
	"math"
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/model"
	"personalhub/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SessionController(api *gin.RouterGroup, deps *common.Deps) {
	sessions := &common.Resource[model.StudySession, dto.StudySessionRequest]{
		DB:      deps.DB,
		Name:    "Study session",
		Owned:   true,
		Order:   "date DESC, id DESC",
		Filter:  courseFilter,
		Preload: []string{"Course"},
		Check: func(_ *gin.Context, db *gorm.DB, userID uint, s *model.StudySession) error {
			return common.OwnedParent(db, &model.Course{}, s.CourseID, userID)
		},
	}
	sessions.Register(api, "/sessions")
}

type courseMinutes struct {
	CourseID uint   `json:"course_id"`
	Name     string `json:"name"`
	Minutes  int    `json:"minutes"`
}

type dayMinutes struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// StudyStats aggregates sessions per course and per day over the window ending today.
func StudyStats(sessions []model.StudySession, window services.DateRange) (hours float64, perCourse []courseMinutes, perDay []dayMinutes) {
	total := 0
	courseIndex := map[uint]int{}
	perCourse = []courseMinutes{}
	byDay := map[string]int{}
	for _, s := range sessions {
		total += s.DurationMinutes
		i, ok := courseIndex[s.CourseID]
		if !ok {
			i = len(perCourse)
			courseIndex[s.CourseID] = i
			name := ""
			if s.Course != nil {
				name = s.Course.Name
			}
			perCourse = append(perCourse, courseMinutes{CourseID: s.CourseID, Name: name})
		}
		perCourse[i].Minutes += s.DurationMinutes
		if window.Contains(s.Date) {
			byDay[s.Date.Format(services.DateLayout)] += s.DurationMinutes
		}
	}
	perDay = []dayMinutes{}
	for _, d := range window.Days() {
		key := d.Format(services.DateLayout)
		perDay = append(perDay, dayMinutes{Date: key, Minutes: byDay[key]})
	}
	return math.Round(float64(total)/60*10) / 10, perCourse, perDay
}

func Dashboard(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	db := deps.DB.WithContext(c.Request.Context())

	courses := []model.Course{}
	if err := db.Where("user_id = ?", userID).Order("semester DESC, name").Find(&courses).Error; err != nil {
		common.Fail(c, err)
		return
	}
	var completed []model.Course
	status := map[string]int{model.CourseOngoing: 0, model.CourseCompleted: 0, model.CourseDropped: 0}
	for _, course := range courses {
		status[course.Status]++
		if course.Status == model.CourseCompleted {
			completed = append(completed, course)
		}
	}

	var sessions []model.StudySession
	if err := db.Preload("Course").Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&sessions).Error; err != nil {
		common.Fail(c, err)
		return
	}
	recent := sessions
	if len(recent) > 5 {
		recent = recent[:5]
	}
	hours, perCourse, perDay := StudyStats(sessions, services.LastDays(services.Today(), 30))

	c.JSON(http.StatusOK, gin.H{
		"courses":             courses,
		"gpa":                 services.ComputeGPA(completed),
		"total_credits":       services.TotalCredits(completed),
		"recent_sessions":     recent,
		"total_study_hours":   hours,
		"minutes_per_course":  perCourse,
		"minutes_per_day":     perDay,
		"course_status_count": status,
	})
}

type plannerDay struct {
	Date     string               `json:"date"`
	Sessions []model.StudySession `json:"sessions"`
}

// Planner lists ongoing courses and the next 30 days with the sessions logged on each.
func Planner(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	db := deps.DB.WithContext(c.Request.Context())

	courses := []model.Course{}
	if err := db.Where("user_id = ? AND status = ?", userID, model.CourseOngoing).Order("name").Find(&courses).Error; err != nil {
		common.Fail(c, err)
		return
	}
	window := services.NextDays(services.Today(), 30)
	var sessions []model.StudySession
	err := db.Preload("Course").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, window.From, window.To).
		Order("date, id").
		Find(&sessions).Error
	if err != nil {
		common.Fail(c, err)
		return
	}
	byDay := map[string][]model.StudySession{}
	for _, s := range sessions {
		key := s.Date.Format(services.DateLayout)
		byDay[key] = append(byDay[key], s)
	}
	days := make([]plannerDay, 0, 30)
	for _, d := range window.Days() {
		key := d.Format(services.DateLayout)
		list := byDay[key]
		if list == nil {
			list = []model.StudySession{}
		}
		days = append(days, plannerDay{Date: key, Sessions: list})
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses, "days": days})
}
