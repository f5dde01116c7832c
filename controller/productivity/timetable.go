package productivity

import (
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/model"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

func TimetableController(api *gin.RouterGroup, deps *common.Deps) {
	timetables := &common.Resource[model.Timetable, dto.TimetableRequest]{
		DB:    deps.DB,
		Name:  "Timetable",
		Owned: true,
		Order: "active DESC, created_at DESC",
	}
	api.POST("/timetables/generate", func(c *gin.Context) {
		GenerateTimetable(c, deps)
	})
	timetables.Register(api, "/timetables")
}

// GenerateTimetable builds a timetable from flat day rows, skipping incomplete ones.
func GenerateTimetable(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BadRequest(c, err)
		return
	}
	timetable := model.Timetable{
		Name:     req.Name,
		Schedule: datatypes.NewJSONType(req.Schedule()),
		Active:   true,
	}
	timetable.SetOwner(userID)
	if err := deps.DB.WithContext(c.Request.Context()).Create(&timetable).Error; err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, timetable)
}
