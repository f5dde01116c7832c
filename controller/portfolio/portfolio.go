package portfolio

import (
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/middleware"
	"personalhub/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func PortfolioController(router *gin.Engine, deps *common.Deps) {
	public := router.Group("/api")
	admin := []gin.HandlerFunc{middleware.AccessTokenMiddleware(deps.Tokens), middleware.AdminMiddleware()}

	public.GET("/portfolio", func(c *gin.Context) {
		Portfolio(c, deps)
	})
	public.GET("/skills", func(c *gin.Context) {
		Skills(c, deps)
	})
	router.GET("/cv", func(c *gin.Context) {
		DownloadCV(c, deps)
	})

	skills := &common.Resource[model.Skill, dto.SkillRequest]{DB: deps.DB, Name: "Skill", Order: "category, proficiency DESC, name"}
	public.GET("/skills/:id", skills.Get)
	skills.RegisterWrite(public, "/skills", admin...)

	timeline := &common.Resource[model.TimelineEntry, dto.TimelineRequest]{DB: deps.DB, Name: "Timeline entry", Order: "year DESC, id DESC"}
	timeline.Register(public, "/timeline", admin...)

	ProjectController(public, deps, admin)
	ProfileController(public, deps)
	ContactController(public, deps)
}

// Portfolio is the public landing payload: the site owner's profile, skills,
// timeline and the three most recent active projects.
func Portfolio(c *gin.Context, deps *common.Deps) {
	db := deps.DB.WithContext(c.Request.Context())

	var profile *model.Profile
	var first model.Profile
	err := db.Order("id").Limit(1).Find(&first).Error
	if err != nil {
		common.Fail(c, err)
		return
	}
	if first.ID != 0 {
		profile = &first
	}

	skills := []model.Skill{}
	if err := db.Order("category, proficiency DESC, name").Find(&skills).Error; err != nil {
		common.Fail(c, err)
		return
	}
	timeline := []model.TimelineEntry{}
	if err := db.Order("year DESC, id DESC").Find(&timeline).Error; err != nil {
		common.Fail(c, err)
		return
	}
	projects := []model.Project{}
	if err := db.Where("status = ?", model.ProjectActive).Order("created_at DESC").Limit(3).Find(&projects).Error; err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  withProfileURLs(deps, profile),
		"skills":   skills,
		"timeline": timeline,
		"projects": projects,
	})
}

// Skills groups every skill by category.
func Skills(c *gin.Context, deps *common.Deps) {
	var skills []model.Skill
	if err := deps.DB.WithContext(c.Request.Context()).Order("category, proficiency DESC, name").Find(&skills).Error; err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, GroupSkills(skills))
}

func GroupSkills(skills []model.Skill) map[string][]model.Skill {
	grouped := map[string][]model.Skill{}
	for _, s := range skills {
		grouped[s.Category] = append(grouped[s.Category], s)
	}
	return grouped
}

func firstProfile(db *gorm.DB) (*model.Profile, error) {
	var profile model.Profile
	if err := db.Order("id").First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// DownloadCV redirects to the site owner's CV, or 404 when none was uploaded.
func DownloadCV(c *gin.Context, deps *common.Deps) {
	profile, err := firstProfile(deps.DB.WithContext(c.Request.Context()))
	if err != nil {
		common.Fail(c, err)
		return
	}
	if profile.CVFile == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "CV not available"})
		return
	}
	c.Redirect(http.StatusFound, deps.Store.URL(profile.CVFile))
}
