package assistant

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"personalhub/controller/common"
	"personalhub/model"
	"personalhub/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

const maxPDFSize = 20 << 20

func PDFController(api *gin.RouterGroup, deps *common.Deps) {
	api.GET("/pdf", func(c *gin.Context) {
		userID, ok := common.CurrentUser(c)
		if !ok {
			return
		}
		items := []model.PDFAnalysis{}
		if err := deps.DB.WithContext(c.Request.Context()).Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error; err != nil {
			common.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	})
	api.GET("/pdf/:id", func(c *gin.Context) {
		analysis, ok := loadAnalysis(c, deps)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"analysis": analysis, "file_url": deps.Store.URL(analysis.File)})
	})
	api.DELETE("/pdf/:id", func(c *gin.Context) {
		analysis, ok := loadAnalysis(c, deps)
		if !ok {
			return
		}
		if err := deps.DB.WithContext(c.Request.Context()).Delete(analysis).Error; err != nil {
			common.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "PDF analysis deleted"})
	})
	api.POST("/pdf/analyze", func(c *gin.Context) {
		AnalyzePDF(c, deps)
	})
}

func loadAnalysis(c *gin.Context, deps *common.Deps) (*model.PDFAnalysis, bool) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return nil, false
	}
	id, ok := common.ParamID(c, "id")
	if !ok {
		return nil, false
	}
	var analysis model.PDFAnalysis
	if err := deps.DB.WithContext(c.Request.Context()).Where("id = ? AND user_id = ?", id, userID).First(&analysis).Error; err != nil {
		common.Fail(c, err)
		return nil, false
	}
	return &analysis, true
}

// AnalyzePDF stores the uploaded PDF, extracts its text and records the AI summary.
func AnalyzePDF(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "File 'file' is required"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are supported"})
		return
	}
	if fh.Size > maxPDFSize {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File is too large"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		common.BadRequest(c, err)
		return
	}
	content, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		common.BadRequest(c, err)
		return
	}

	text, err := services.ExtractText(content)
	if err != nil {
		common.Fail(c, err)
		return
	}
	summary, err := deps.AI.Summarize(c.Request.Context(), text)
	if err != nil {
		common.Fail(c, err)
		return
	}

	ctx := c.Request.Context()
	name, err := deps.Store.Save(ctx, services.MediaName(deps.MediaPrefix, "pdfs", fh.Filename), bytes.NewReader(content))
	if err != nil {
		common.Fail(c, err)
		return
	}
	analysis := model.PDFAnalysis{
		File:             name,
		OriginalFilename: fh.Filename,
		Summary:          summary.Summary,
		KeyPoints:        datatypes.JSONSlice[string](summary.KeyPoints),
	}
	analysis.SetOwner(userID)
	if err := deps.DB.WithContext(ctx).Create(&analysis).Error; err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"analysis": analysis, "file_url": deps.Store.URL(name)})
}
