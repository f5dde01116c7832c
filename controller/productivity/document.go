package productivity

import (
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func DocumentController(api *gin.RouterGroup, deps *common.Deps) {
	documents := &common.Resource[model.Document, dto.DocumentForm]{
		DB:    deps.DB,
		Name:  "Document",
		Owned: true,
		Order: "created_at DESC",
		Filter: func(c *gin.Context, q *gorm.DB) *gorm.DB {
			if cat := c.Query("category"); cat != "" {
				q = q.Where("category = ?", cat)
			}
			return q
		},
	}
	api.GET("/documents", func(c *gin.Context) {
		q, _, ok := documents.Query(c)
		if !ok {
			return
		}
		items := []model.Document{}
		if err := documents.Filter(c, q).Order(documents.Order).Find(&items).Error; err != nil {
			common.Fail(c, err)
			return
		}
		for i := range items {
			items[i].FileURL = deps.Store.URL(items[i].File)
		}
		c.JSON(http.StatusOK, items)
	})
	api.GET("/documents/:id", func(c *gin.Context) {
		doc, _, ok := documents.Load(c)
		if !ok {
			return
		}
		doc.FileURL = deps.Store.URL(doc.File)
		c.JSON(http.StatusOK, doc)
	})
	api.POST("/documents", func(c *gin.Context) {
		UploadDocument(c, deps)
	})
	api.PUT("/documents/:id", documents.Update)
	api.DELETE("/documents/:id", func(c *gin.Context) {
		doc, _, ok := documents.Load(c)
		if !ok {
			return
		}
		documents.Delete(c)
		if c.Writer.Status() == http.StatusOK {
			if err := deps.Store.Delete(c.Request.Context(), doc.File); err != nil {
				logrus.WithError(err).WithField("file", doc.File).Warn("document blob left behind")
			}
		}
	})
}

// UploadDocument stores the multipart "file" and records it with its form fields.
func UploadDocument(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	var form dto.DocumentForm
	if err := c.ShouldBind(&form); err != nil {
		common.BadRequest(c, err)
		return
	}
	name, ok := common.SaveUpload(c, deps, "file", "documents", true)
	if !ok {
		return
	}
	doc := model.Document{File: name}
	doc.SetOwner(userID)
	_ = form.Apply(&doc)
	if err := deps.DB.WithContext(c.Request.Context()).Create(&doc).Error; err != nil {
		common.Fail(c, err)
		return
	}
	doc.FileURL = deps.Store.URL(doc.File)
	c.JSON(http.StatusCreated, doc)
}
