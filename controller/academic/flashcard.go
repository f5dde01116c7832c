package academic

import (
	"net/http"
	"strconv"
	"time"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/model"
	"personalhub/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const studyBatch = 20

func FlashcardController(api *gin.RouterGroup, deps *common.Deps) {
	cards := &common.Resource[model.Flashcard, dto.FlashcardRequest]{
		DB:     deps.DB,
		Name:   "Flashcard",
		Owned:  true,
		Order:  "created_at DESC",
		Filter: courseFilter,
		Check: func(_ *gin.Context, db *gorm.DB, userID uint, f *model.Flashcard) error {
			return common.OwnedParent(db, &model.Course{}, f.CourseID, userID)
		},
	}
	cards.Register(api, "/flashcards")

	api.POST("/flashcards/:id/review", func(c *gin.Context) {
		card, _, ok := cards.Load(c)
		if !ok {
			return
		}
		ReviewFlashcard(c, deps, card)
	})
	api.GET("/courses/:id/flashcards/study", func(c *gin.Context) {
		StudyFlashcards(c, deps)
	})
	api.POST("/courses/:id/flashcards/import", func(c *gin.Context) {
		ImportFlashcards(c, deps)
	})
}

// StudyFlashcards returns the course's cards due for review.
func StudyFlashcards(c *gin.Context, deps *common.Deps) {
	course, userID, ok := loadCourse(c, deps)
	if !ok {
		return
	}
	limit := studyBatch
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}
	var cards []model.Flashcard
	err := deps.DB.WithContext(c.Request.Context()).
		Where("course_id = ? AND user_id = ?", course.ID, userID).
		Find(&cards).Error
	if err != nil {
		common.Fail(c, err)
		return
	}
	due := services.DueFlashcards(cards, time.Now().UTC(), limit)
	if due == nil {
		due = []model.Flashcard{}
	}
	c.JSON(http.StatusOK, gin.H{"course": course, "cards": due, "total_cards": len(cards)})
}

func ReviewFlashcard(c *gin.Context, deps *common.Deps, card *model.Flashcard) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BadRequest(c, err)
		return
	}
	if err := services.ReviewFlashcard(card, *req.Quality, time.Now()); err != nil {
		common.Fail(c, err)
		return
	}
	err := deps.DB.WithContext(c.Request.Context()).Model(card).Updates(map[string]interface{}{
		"easiness":      card.Easiness,
		"interval":      card.Interval,
		"repetitions":   card.Repetitions,
		"next_review":   card.NextReview,
		"last_reviewed": card.LastReviewed,
	}).Error
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// ImportFlashcards reads question/answer rows from an uploaded xlsx workbook.
func ImportFlashcards(c *gin.Context, deps *common.Deps) {
	course, userID, ok := loadCourse(c, deps)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "File 'file' is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		common.BadRequest(c, err)
		return
	}
	defer f.Close()

	rows, skipped, err := services.ReadFlashcardSheet(f)
	if err != nil {
		common.Fail(c, err)
		return
	}
	result := services.ImportResult{Skipped: skipped}
	if len(rows) > 0 {
		cards := make([]model.Flashcard, 0, len(rows))
		for _, row := range rows {
			card := model.Flashcard{CourseID: course.ID, Question: row.Question, Answer: row.Answer, Easiness: 2.5}
			card.SetOwner(userID)
			cards = append(cards, card)
		}
		if err := deps.DB.WithContext(c.Request.Context()).CreateInBatches(cards, 100).Error; err != nil {
			common.Fail(c, err)
			return
		}
		result.Imported = len(cards)
	}
	logrus.WithFields(logrus.Fields{
		"course":   course.ID,
		"imported": result.Imported,
		"skipped":  result.Skipped,
	}).Info("flashcards imported")
	c.JSON(http.StatusOK, result)
}
