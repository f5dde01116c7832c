package blog

import (
	"fmt"
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/model"
	"personalhub/services"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func TutorialController(api *gin.RouterGroup, deps *common.Deps, admin []gin.HandlerFunc) {
	api.GET("/tutorials", func(c *gin.Context) {
		q := deps.DB.WithContext(c.Request.Context())
		if d := c.Query("difficulty"); d != "" {
			q = q.Where("difficulty = ?", d)
		}
		tutorials := []model.Tutorial{}
		if err := q.Order("created_at DESC").Find(&tutorials).Error; err != nil {
			common.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, tutorials)
	})
	api.GET("/tutorials/:slug", func(c *gin.Context) {
		tutorial, err := tutorialBySlug(deps.DB.WithContext(c.Request.Context()), c.Param("slug"))
		if err != nil {
			common.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, tutorial)
	})
	api.POST("/tutorials", append(admin, func(c *gin.Context) {
		SaveTutorial(c, deps, nil)
	})...)
	api.PUT("/tutorials/:slug", append(admin, func(c *gin.Context) {
		tutorial, err := tutorialBySlug(deps.DB.WithContext(c.Request.Context()), c.Param("slug"))
		if err != nil {
			common.Fail(c, err)
			return
		}
		SaveTutorial(c, deps, tutorial)
	})...)
	api.DELETE("/tutorials/:slug", append(admin, func(c *gin.Context) {
		res := deps.DB.WithContext(c.Request.Context()).Where("slug = ?", c.Param("slug")).Delete(&model.Tutorial{})
		if res.Error != nil {
			common.Fail(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			common.Fail(c, gorm.ErrRecordNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Tutorial deleted"})
	})...)
}

func tutorialBySlug(db *gorm.DB, s string) (*model.Tutorial, error) {
	var tutorial model.Tutorial
	if err := db.Where("slug = ?", s).First(&tutorial).Error; err != nil {
		return nil, err
	}
	return &tutorial, nil
}

func SaveTutorial(c *gin.Context, deps *common.Deps, tutorial *model.Tutorial) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	var req dto.TutorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BadRequest(c, err)
		return
	}
	created := tutorial == nil
	if created {
		tutorial = &model.Tutorial{}
		tutorial.SetOwner(userID)
	}
	req.Apply(tutorial)

	source := req.Slug
	if source == "" && created {
		source = req.Title
	}
	if source != "" {
		if tutorial.Slug = slug.Make(source); tutorial.Slug == "" {
			common.Fail(c, fmt.Errorf("%w: title produces an empty slug", services.ErrInvalidInput))
			return
		}
	}

	db := deps.DB.WithContext(c.Request.Context())
	var err error
	if created {
		err = db.Create(tutorial).Error
	} else {
		err = db.Save(tutorial).Error
	}
	if err != nil {
		common.Fail(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, tutorial)
}
