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

func GoalController(api *gin.RouterGroup, deps *common.Deps) {
	goals := &common.Resource[model.Goal, dto.GoalRequest]{
		DB:      deps.DB,
		Name:    "Goal",
		Owned:   true,
		Order:   "target_date IS NULL, target_date, id",
		Preload: []string{"Milestones"},
		Cascade: func(tx *gorm.DB, id uint) error {
			return tx.Where("goal_id = ?", id).Delete(&model.Milestone{}).Error
		},
	}
	goals.Register(api, "/goals")

	api.GET("/goals/:id/milestones", func(c *gin.Context) {
		ListMilestones(c, deps)
	})
	api.POST("/goals/:id/milestones", func(c *gin.Context) {
		CreateMilestone(c, deps)
	})
	api.POST("/goals/:id/milestones/:mid/complete", func(c *gin.Context) {
		CompleteMilestone(c, deps)
	})
	api.DELETE("/goals/:id/milestones/:mid", func(c *gin.Context) {
		DeleteMilestone(c, deps)
	})
}

func ownedGoal(c *gin.Context, deps *common.Deps) (uint, uint, bool) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return 0, 0, false
	}
	goalID, ok := common.ParamID(c, "id")
	if !ok {
		return 0, 0, false
	}
	if err := common.OwnedParent(deps.DB.WithContext(c.Request.Context()), &model.Goal{}, goalID, userID); err != nil {
		common.Fail(c, err)
		return 0, 0, false
	}
	return userID, goalID, true
}

func ListMilestones(c *gin.Context, deps *common.Deps) {
	_, goalID, ok := ownedGoal(c, deps)
	if !ok {
		return
	}
	milestones := []model.Milestone{}
	err := deps.DB.WithContext(c.Request.Context()).
		Where("goal_id = ?", goalID).
		Order("due_date IS NULL, due_date, id").
		Find(&milestones).Error
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, milestones)
}

func CreateMilestone(c *gin.Context, deps *common.Deps) {
	userID, goalID, ok := ownedGoal(c, deps)
	if !ok {
		return
	}
	var req dto.MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BadRequest(c, err)
		return
	}
	milestone := model.Milestone{GoalID: goalID}
	milestone.SetOwner(userID)
	if err := req.Apply(&milestone); err != nil {
		common.Fail(c, err)
		return
	}
	if err := deps.DB.WithContext(c.Request.Context()).Create(&milestone).Error; err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, milestone)
}

func findMilestone(c *gin.Context, db *gorm.DB, userID, goalID uint) (*model.Milestone, bool) {
	mid, ok := common.ParamID(c, "mid")
	if !ok {
		return nil, false
	}
	var milestone model.Milestone
	if err := db.Where("id = ? AND goal_id = ? AND user_id = ?", mid, goalID, userID).First(&milestone).Error; err != nil {
		common.Fail(c, err)
		return nil, false
	}
	return &milestone, true
}

// CompleteMilestone marks the milestone done as of today.
func CompleteMilestone(c *gin.Context, deps *common.Deps) {
	userID, goalID, ok := ownedGoal(c, deps)
	if !ok {
		return
	}
	db := deps.DB.WithContext(c.Request.Context())
	milestone, ok := findMilestone(c, db, userID, goalID)
	if !ok {
		return
	}
	today := services.Today()
	milestone.Completed = true
	milestone.CompletedDate = &today
	if err := db.Model(milestone).Updates(map[string]interface{}{"completed": true, "completed_date": today}).Error; err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, milestone)
}

func DeleteMilestone(c *gin.Context, deps *common.Deps) {
	userID, goalID, ok := ownedGoal(c, deps)
	if !ok {
		return
	}
	db := deps.DB.WithContext(c.Request.Context())
	milestone, ok := findMilestone(c, db, userID, goalID)
	if !ok {
		return
	}
	if err := db.Delete(milestone).Error; err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Milestone deleted"})
}
