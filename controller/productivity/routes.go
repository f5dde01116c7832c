package productivity

import (
	"personalhub/controller/common"
	"personalhub/middleware"

	"github.com/gin-gonic/gin"
)

func ProductivityController(router *gin.Engine, deps *common.Deps) {
	api := router.Group("/api", middleware.AccessTokenMiddleware(deps.Tokens))
	TaskController(api, deps)
	HabitController(api, deps)
	GoalController(api, deps)
	TimetableController(api, deps)
	FinanceController(api, deps)
}
