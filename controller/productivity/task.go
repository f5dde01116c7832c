package productivity

import (
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/model"
	"personalhub/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const taskOrder = "due_date IS NULL, due_date ASC, " +
	"CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, id"

func taskResource(deps *common.Deps) *common.Resource[model.Task, dto.TaskRequest] {
	return &common.Resource[model.Task, dto.TaskRequest]{
		DB:    deps.DB,
		Name:  "Task",
		Owned: true,
		Order: taskOrder,
		Filter: func(c *gin.Context, q *gorm.DB) *gorm.DB {
			if status := c.Query("status"); status != "" {
				q = q.Where("status = ?", status)
			}
			return q
		},
	}
}

func TaskController(api *gin.RouterGroup, deps *common.Deps) {
	taskResource(deps).Register(api, "/tasks")
	api.GET("/productivity/dashboard", func(c *gin.Context) {
		Dashboard(c, deps)
	})
}

// Dashboard returns the first ten tasks by due date with every habit and goal.
func Dashboard(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	db := deps.DB.WithContext(c.Request.Context())

	tasks := []model.Task{}
	if err := db.Where("user_id = ?", userID).Order(taskOrder).Limit(10).Find(&tasks).Error; err != nil {
		common.Fail(c, err)
		return
	}
	habits := []model.Habit{}
	if err := db.Where("user_id = ?", userID).Order("name").Find(&habits).Error; err != nil {
		common.Fail(c, err)
		return
	}
	goals := []model.Goal{}
	if err := db.Where("user_id = ?", userID).Order("target_date IS NULL, target_date").Find(&goals).Error; err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":  tasks,
		"habits": habits,
		"goals":  goals,
		"today":  services.Today().Format(services.DateLayout),
	})
}
