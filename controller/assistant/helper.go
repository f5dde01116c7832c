package assistant

import (
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/model"

	"github.com/gin-gonic/gin"
)

func HelperController(api *gin.RouterGroup, deps *common.Deps) {
	routes := api.Group("/assistant")
	{
		routes.POST("/study", func(c *gin.Context) {
			var req dto.StudyHelpRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				common.BadRequest(c, err)
				return
			}
			respond(c)(deps.AI.StudyHelp(c.Request.Context(), req.Course, req.Topic, req.Question))
		})
		routes.POST("/code", func(c *gin.Context) {
			var req dto.CodeAssistRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				common.BadRequest(c, err)
				return
			}
			respond(c)(deps.AI.CodeAssist(c.Request.Context(), req.Code, req.Language, req.Question))
		})
		routes.POST("/writing", func(c *gin.Context) {
			var req dto.WritingAssistRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				common.BadRequest(c, err)
				return
			}
			respond(c)(deps.AI.WritingAssist(c.Request.Context(), req.Text, req.RequestType))
		})
		routes.POST("/recommendations", func(c *gin.Context) {
			Recommendations(c, deps)
		})
	}
}

func respond(c *gin.Context) func(string, error) {
	return func(response string, err error) {
		if err != nil {
			common.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"response": response})
	}
}

// Recommendations includes the caller's ongoing courses as context.
func Recommendations(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	var req dto.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BadRequest(c, err)
		return
	}
	var current []string
	err := deps.DB.WithContext(c.Request.Context()).
		Model(&model.Course{}).
		Where("user_id = ? AND status = ?", userID, model.CourseOngoing).
		Pluck("name", &current).Error
	if err != nil {
		common.Fail(c, err)
		return
	}
	respond(c)(deps.AI.RecommendCourses(c.Request.Context(), req.Interests, current))
}
