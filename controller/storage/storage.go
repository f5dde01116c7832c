package storage

import (
	"net/http"
	"path"
	"strings"

	"personalhub/controller/common"
	"personalhub/middleware"

	"github.com/gin-gonic/gin"
)

func StorageController(router *gin.Engine, deps *common.Deps) {
	routes := router.Group("/api/admin/storage", middleware.AccessTokenMiddleware(deps.Tokens), middleware.AdminMiddleware())
	{
		routes.GET("", func(c *gin.Context) {
			ListBlobs(c, deps)
		})
		routes.POST("/static", func(c *gin.Context) {
			UploadStatic(c, deps)
		})
		routes.DELETE("/*name", func(c *gin.Context) {
			DeleteBlob(c, deps)
		})
	}
}

type blob struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListBlobs lists stored files under ?prefix=, media files by default.
func ListBlobs(c *gin.Context, deps *common.Deps) {
	prefix := c.DefaultQuery("prefix", deps.MediaPrefix)
	names, err := deps.Store.List(c.Request.Context(), prefix)
	if err != nil {
		common.Fail(c, err)
		return
	}
	blobs := make([]blob, 0, len(names))
	for _, n := range names {
		blobs = append(blobs, blob{Name: n, URL: deps.Store.URL(n)})
	}
	c.JSON(http.StatusOK, gin.H{"prefix": prefix, "files": blobs})
}

// UploadStatic stores a site asset under the static prefix, keeping any sub folder given in ?dir=.
func UploadStatic(c *gin.Context, deps *common.Deps) {
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

	name := path.Join(deps.StaticPrefix, strings.Trim(c.Query("dir"), "/"), path.Base(fh.Filename))
	stored, err := deps.Store.Save(c.Request.Context(), name, f)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, blob{Name: stored, URL: deps.Store.URL(stored)})
}

func DeleteBlob(c *gin.Context, deps *common.Deps) {
	name := strings.TrimPrefix(c.Param("name"), "/")
	if err := deps.Store.Delete(c.Request.Context(), name); err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted", "name": name})
}
