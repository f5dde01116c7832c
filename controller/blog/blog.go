package blog

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/middleware"
	"personalhub/model"
	"personalhub/services"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func BlogController(router *gin.Engine, deps *common.Deps) {
	api := router.Group("/api")
	admin := []gin.HandlerFunc{middleware.AccessTokenMiddleware(deps.Tokens), middleware.AdminMiddleware()}

	api.GET("/blog", func(c *gin.Context) {
		ListPosts(c, deps)
	})
	api.GET("/blog/:slug", func(c *gin.Context) {
		GetPost(c, deps)
	})
	api.POST("/blog", append(admin, func(c *gin.Context) {
		SavePost(c, deps, nil)
	})...)
	api.PUT("/blog/:slug", append(admin, func(c *gin.Context) {
		post, err := postBySlug(deps.DB.WithContext(c.Request.Context()), c.Param("slug"), false)
		if err != nil {
			common.Fail(c, err)
			return
		}
		SavePost(c, deps, post)
	})...)
	api.DELETE("/blog/:slug", append(admin, func(c *gin.Context) {
		DeletePost(c, deps)
	})...)

	snippets := &common.Resource[model.CodeSnippet, dto.SnippetRequest]{
		DB:    deps.DB,
		Name:  "Snippet",
		Order: "created_at DESC",
		Filter: func(c *gin.Context, q *gorm.DB) *gorm.DB {
			if lang := c.Query("language"); lang != "" {
				q = q.Where("language = ?", lang)
			}
			return q
		},
		Check: func(_ *gin.Context, db *gorm.DB, _ uint, s *model.CodeSnippet) error {
			if s.PostID == nil {
				return nil
			}
			var count int64
			if err := db.Model(&model.BlogPost{}).Where("id = ?", *s.PostID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("%w: post %d does not exist", services.ErrInvalidInput, *s.PostID)
			}
			return nil
		},
	}
	snippets.Register(api, "/snippets", admin...)

	TutorialController(api, deps, admin)
}

// PublishedPosts lists published posts, featured first then newest. q matches title or content.
func PublishedPosts(db *gorm.DB, category, q string) ([]model.BlogPost, error) {
	query := db.Where("published_date IS NOT NULL")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + q + "%"
		query = query.Where("(title LIKE ? OR content LIKE ?)", like, like)
	}
	posts := []model.BlogPost{}
	err := query.Order("featured DESC, published_date DESC").Find(&posts).Error
	return posts, err
}

func postBySlug(db *gorm.DB, s string, publishedOnly bool) (*model.BlogPost, error) {
	q := db.Preload("Snippets").Where("slug = ?", s)
	if publishedOnly {
		q = q.Where("published_date IS NOT NULL")
	}
	var post model.BlogPost
	if err := q.First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// PublishedPost finds a published post with its snippets.
func PublishedPost(db *gorm.DB, s string) (*model.BlogPost, error) {
	return postBySlug(db, s, true)
}

func ListPosts(c *gin.Context, deps *common.Deps) {
	posts, err := PublishedPosts(deps.DB.WithContext(c.Request.Context()), c.Query("category"), c.Query("q"))
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func GetPost(c *gin.Context, deps *common.Deps) {
	post, err := PublishedPost(deps.DB.WithContext(c.Request.Context()), c.Param("slug"))
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// SavePost creates a post when post is nil. The slug comes from the request or the
// title; a slug already used by another post answers 409.
func SavePost(c *gin.Context, deps *common.Deps, post *model.BlogPost) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	var req dto.BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BadRequest(c, err)
		return
	}
	created := post == nil
	if created {
		post = &model.BlogPost{}
		post.SetOwner(userID)
	}
	req.Apply(post, time.Now().UTC())

	source := req.Slug
	if source == "" && created {
		source = req.Title
	}
	if source != "" {
		post.Slug = slug.Make(source)
		if post.Slug == "" {
			common.Fail(c, fmt.Errorf("%w: title produces an empty slug", services.ErrInvalidInput))
			return
		}
	}

	db := deps.DB.WithContext(c.Request.Context())
	var err error
	if created {
		err = db.Omit("Snippets").Create(post).Error
	} else {
		err = db.Omit("Snippets").Save(post).Error
	}
	if err != nil {
		common.Fail(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, post)
}

func DeletePost(c *gin.Context, deps *common.Deps) {
	db := deps.DB.WithContext(c.Request.Context())
	post, err := postBySlug(db, c.Param("slug"), false)
	if err != nil {
		common.Fail(c, err)
		return
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&model.CodeSnippet{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.BlogPost{}, post.ID).Error
	})
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
