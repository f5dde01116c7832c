package academic

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

func AcademicController(router *gin.Engine, deps *common.Deps) {
	api := router.Group("/api", middleware.AccessTokenMiddleware(deps.Tokens))

	courses := &common.Resource[model.Course, dto.CourseRequest]{
		DB:    deps.DB,
		Name:  "Course",
		Owned: true,
		Order: "semester DESC, name",
		Filter: func(c *gin.Context, q *gorm.DB) *gorm.DB {
			if status := c.Query("status"); status != "" {
				q = q.Where("status = ?", status)
			}
			return q
		},
		Cascade: func(tx *gorm.DB, id uint) error {
			for _, child := range []interface{}{&model.Note{}, &model.Flashcard{}, &model.StudySession{}} {
				if err := tx.Where("course_id = ?", id).Delete(child).Error; err != nil {
					return err
				}
			}
			return nil
		},
	}
	courses.Register(api, "/courses")

	NoteController(api, deps)
	FlashcardController(api, deps)
	SessionController(api, deps)

	api.GET("/academic/gpa", func(c *gin.Context) {
		GPA(c, deps)
	})
	api.GET("/academic/dashboard", func(c *gin.Context) {
		Dashboard(c, deps)
	})
	api.GET("/academic/planner", func(c *gin.Context) {
		Planner(c, deps)
	})
	api.POST("/courses/:id/questions", func(c *gin.Context) {
		GenerateQuestions(c, deps)
	})
}

func loadCourse(c *gin.Context, deps *common.Deps) (*model.Course, uint, bool) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return nil, 0, false
	}
	courseID, ok := common.ParamID(c, "id")
	if !ok {
		return nil, 0, false
	}
	var course model.Course
	err := deps.DB.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", courseID, userID).
		First(&course).Error
	if err != nil {
		common.Fail(c, err)
		return nil, 0, false
	}
	return &course, userID, true
}

func GPA(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	gpa, credits, err := services.CompletedCoursesGPA(c.Request.Context(), deps.DB, userID)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gpa": gpa, "total_credits": credits})
}

func GenerateQuestions(c *gin.Context, deps *common.Deps) {
	course, _, ok := loadCourse(c, deps)
	if !ok {
		return
	}
	var req dto.QuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BadRequest(c, err)
		return
	}
	questions, err := deps.AI.GenerateQuestions(c.Request.Context(), course.Name, req.Topic, req.Count)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"course": course.Name, "topic": req.Topic, "questions": questions})
}
