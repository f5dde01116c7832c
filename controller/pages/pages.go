package pages

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"personalhub/controller/blog"
	"personalhub/controller/common"
	"personalhub/controller/portfolio"
	"personalhub/dto"
	"personalhub/model"
	"personalhub/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

//go:embed templates/*.html
var templateFS embed.FS

const flashCookie = "hub_flash"

// Templates parses the embedded page templates.
func Templates() *template.Template {
	funcs := template.FuncMap{
		"date": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		"join": strings.Join,
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

func PagesController(router *gin.Engine, deps *common.Deps) {
	router.SetHTMLTemplate(Templates())

	router.GET("/", func(c *gin.Context) {
		Home(c, deps)
	})
	router.GET("/projects", func(c *gin.Context) {
		Projects(c, deps)
	})
	router.GET("/projects/:slug", func(c *gin.Context) {
		ProjectDetail(c, deps)
	})
	router.GET("/blog", func(c *gin.Context) {
		Blog(c, deps)
	})
	router.GET("/blog/:slug", func(c *gin.Context) {
		BlogDetail(c, deps)
	})
	router.POST("/contact", func(c *gin.Context) {
		ContactForm(c, deps)
	})
}

// popFlash reads and clears the one-shot message set by the contact form.
func popFlash(c *gin.Context) (string, string) {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return "", ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	level, msg, found := strings.Cut(value, "|")
	if !found {
		return "info", value
	}
	return level, msg
}

func setFlash(c *gin.Context, level, msg string) {
	c.SetCookie(flashCookie, level+"|"+msg, 60, "/", "", false, true)
}

func render(c *gin.Context, status int, name string, data gin.H) {
	level, msg := popFlash(c)
	data["FlashLevel"] = level
	data["Flash"] = msg
	c.HTML(status, name, data)
}

func notFound(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{"Title": "Not found"})
		return
	}
	common.Fail(c, err)
}

func Home(c *gin.Context, deps *common.Deps) {
	db := deps.DB.WithContext(c.Request.Context())
	var profile model.Profile
	if err := db.Order("id").Limit(1).Find(&profile).Error; err != nil {
		common.Fail(c, err)
		return
	}
	var featured []model.Project
	if err := db.Where("status = ?", model.ProjectActive).Order("created_at DESC").Limit(3).Find(&featured).Error; err != nil {
		common.Fail(c, err)
		return
	}
	var skills []model.Skill
	if err := db.Order("category, proficiency DESC, name").Find(&skills).Error; err != nil {
		common.Fail(c, err)
		return
	}
	var timeline []model.TimelineEntry
	if err := db.Order("year DESC, id DESC").Find(&timeline).Error; err != nil {
		common.Fail(c, err)
		return
	}
	render(c, http.StatusOK, "home.html", gin.H{
		"Title":    "Home",
		"Profile":  profile,
		"PhotoURL": deps.Store.URL(profile.Photo),
		"Projects": featured,
		"Skills":   portfolio.GroupSkills(skills),
		"Timeline": timeline,
	})
}

func Projects(c *gin.Context, deps *common.Deps) {
	projects, err := portfolio.PublicProjects(deps.DB.WithContext(c.Request.Context()), c.Query("category"))
	if err != nil {
		common.Fail(c, err)
		return
	}
	render(c, http.StatusOK, "projects.html", gin.H{"Title": "Projects", "Projects": projects, "Category": c.Query("category")})
}

func ProjectDetail(c *gin.Context, deps *common.Deps) {
	project, err := portfolio.ProjectBySlug(deps.DB.WithContext(c.Request.Context()), c.Param("slug"))
	if err != nil {
		notFound(c, err)
		return
	}
	images := make([]string, 0, len(project.Images))
	for _, img := range project.Images {
		images = append(images, deps.Store.URL(img.Image))
	}
	render(c, http.StatusOK, "project.html", gin.H{"Title": project.Title, "Project": project, "Images": images})
}

func Blog(c *gin.Context, deps *common.Deps) {
	posts, err := blog.PublishedPosts(deps.DB.WithContext(c.Request.Context()), c.Query("category"), c.Query("q"))
	if err != nil {
		common.Fail(c, err)
		return
	}
	render(c, http.StatusOK, "blog.html", gin.H{"Title": "Blog", "Posts": posts, "Query": c.Query("q")})
}

func BlogDetail(c *gin.Context, deps *common.Deps) {
	post, err := blog.PublishedPost(deps.DB.WithContext(c.Request.Context()), c.Param("slug"))
	if err != nil {
		notFound(c, err)
		return
	}
	render(c, http.StatusOK, "post.html", gin.H{"Title": post.Title, "Post": post})
}

// ContactForm handles the form on the home page and redirects back with a flash message.
func ContactForm(c *gin.Context, deps *common.Deps) {
	var req dto.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		setFlash(c, "error", "Please fill in every field with a valid email address.")
		c.Redirect(http.StatusSeeOther, "/#contact")
		return
	}
	err := portfolio.SubmitContact(c.Request.Context(), deps, req, c.ClientIP(), c.Request.UserAgent())
	switch {
	case errors.Is(err, services.ErrCaptchaRejected):
		setFlash(c, "error", "reCAPTCHA verification failed. Please try again.")
	case err != nil:
		setFlash(c, "error", "Sorry, your message could not be sent. Please try again later.")
	default:
		setFlash(c, "success", "Thank you for your message! I'll get back to you soon.")
	}
	c.Redirect(http.StatusSeeOther, "/#contact")
}
