package portfolio

import (
	"net/http"
	"strings"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/model"
	"personalhub/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ProjectController(api *gin.RouterGroup, deps *common.Deps, admin []gin.HandlerFunc) {
	api.GET("/projects", func(c *gin.Context) {
		ListProjects(c, deps)
	})
	api.GET("/projects/:slug", func(c *gin.Context) {
		GetProject(c, deps)
	})
	api.POST("/projects", append(admin, func(c *gin.Context) {
		SaveProject(c, deps, nil)
	})...)
	api.PUT("/projects/:slug", append(admin, func(c *gin.Context) {
		project, ok := loadProject(c, deps)
		if !ok {
			return
		}
		SaveProject(c, deps, project)
	})...)
	api.DELETE("/projects/:slug", append(admin, func(c *gin.Context) {
		DeleteProject(c, deps)
	})...)
	api.POST("/projects/:slug/images", append(admin, func(c *gin.Context) {
		AddProjectImage(c, deps)
	})...)
}

// PublicProjects lists active and completed projects, newest first.
func PublicProjects(db *gorm.DB, category string) ([]model.Project, error) {
	q := db.Where("status IN ?", []string{model.ProjectActive, model.ProjectCompleted})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	projects := []model.Project{}
	err := q.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func ListProjects(c *gin.Context, deps *common.Deps) {
	projects, err := PublicProjects(deps.DB.WithContext(c.Request.Context()), c.Query("category"))
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func ProjectBySlug(db *gorm.DB, slug string) (*model.Project, error) {
	var project model.Project
	if err := db.Preload("Images").Where("slug = ?", slug).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func loadProject(c *gin.Context, deps *common.Deps) (*model.Project, bool) {
	project, err := ProjectBySlug(deps.DB.WithContext(c.Request.Context()), c.Param("slug"))
	if err != nil {
		common.Fail(c, err)
		return nil, false
	}
	return project, true
}

func GetProject(c *gin.Context, deps *common.Deps) {
	project, ok := loadProject(c, deps)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, project)
}

// SaveProject creates a project when project is nil and updates it otherwise.
// A blank slug is derived from the title and made unique with a numeric suffix.
func SaveProject(c *gin.Context, deps *common.Deps, project *model.Project) {
	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BadRequest(c, err)
		return
	}
	db := deps.DB.WithContext(c.Request.Context())
	created := project == nil
	if created {
		project = &model.Project{}
	}
	req.Apply(project)

	source := strings.TrimSpace(req.Slug)
	if source == "" && created {
		source = project.Title
	}
	if source != "" {
		slug, err := services.UniqueSlug(c.Request.Context(), deps.DB, "projects", source, project.ID)
		if err != nil {
			common.Fail(c, err)
			return
		}
		project.Slug = slug
	}

	var err error
	if created {
		err = db.Create(project).Error
	} else {
		err = db.Omit("Images").Save(project).Error
	}
	if err != nil {
		common.Fail(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, project)
}

func DeleteProject(c *gin.Context, deps *common.Deps) {
	project, ok := loadProject(c, deps)
	if !ok {
		return
	}
	err := deps.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&model.ProjectImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// AddProjectImage uploads the multipart "image" with an optional caption.
// The first image also becomes the project's cover.
func AddProjectImage(c *gin.Context, deps *common.Deps) {
	project, ok := loadProject(c, deps)
	if !ok {
		return
	}
	name, ok := common.SaveUpload(c, deps, "image", "projects", true)
	if !ok {
		return
	}
	image := model.ProjectImage{ProjectID: project.ID, Image: name, Caption: c.PostForm("caption")}
	err := deps.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
		if project.Image == "" {
			return tx.Model(project).Update("image", name).Error
		}
		return nil
	})
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"image": image, "url": deps.Store.URL(name)})
}
