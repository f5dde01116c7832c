package assistant

import (
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/model"
	"personalhub/services"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
	"gorm.io/gorm"
)

func TemplateController(api *gin.RouterGroup, deps *common.Deps) {
	templates := &common.Resource[model.PromptTemplate, dto.PromptTemplateRequest]{
		DB:    deps.DB,
		Name:  "Template",
		Owned: true,
		Order: "category, name",
		Filter: func(c *gin.Context, q *gorm.DB) *gorm.DB {
			if cat := c.Query("category"); cat != "" {
				q = q.Where("category = ?", cat)
			}
			return q
		},
	}
	templates.Register(api, "/templates")
	api.POST("/templates/:id/render", func(c *gin.Context) {
		tpl, _, ok := templates.Load(c)
		if !ok {
			return
		}
		RenderTemplate(c, deps, tpl)
	})
}

// RenderTemplate fills the template's variables and, with send set, asks the model.
func RenderTemplate(c *gin.Context, deps *common.Deps, tpl *model.PromptTemplate) {
	var req dto.RenderTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BadRequest(c, err)
		return
	}
	prompt := services.RenderTemplate(tpl.TemplateText, req.Variables)
	if !req.Send {
		c.JSON(http.StatusOK, gin.H{"prompt": prompt})
		return
	}
	response, err := deps.AI.Complete(c.Request.Context(), []services.ChatMessage{
		{Role: openai.ChatMessageRoleSystem, Content: services.SystemPrompt(tpl.Category)},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, "", 0, 0)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": prompt, "response": response})
}
