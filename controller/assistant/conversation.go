package assistant

import (
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/middleware"
	"personalhub/model"
	"personalhub/services"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func AssistantController(router *gin.Engine, deps *common.Deps) {
	api := router.Group("/api", middleware.AccessTokenMiddleware(deps.Tokens))

	conversations := &common.Resource[model.Conversation, dto.ConversationRequest]{
		DB:      deps.DB,
		Name:    "Conversation",
		Owned:   true,
		Order:   "updated_at DESC",
		Preload: []string{"Messages"},
		Cascade: func(tx *gorm.DB, id uint) error {
			return tx.Where("conversation_id = ?", id).Delete(&model.Message{}).Error
		},
	}
	conversations.Register(api, "/conversations")
	api.POST("/conversations/:id/messages", func(c *gin.Context) {
		conversation, _, ok := conversations.Load(c)
		if !ok {
			return
		}
		SendMessage(c, deps, conversation)
	})

	PDFController(api, deps)
	TemplateController(api, deps)
	HelperController(api, deps)
}

// SendMessage stores the user's message, sends the whole conversation to the model and
// stores the reply. When the model call fails the user's message stays saved.
func SendMessage(c *gin.Context, deps *common.Deps, conversation *model.Conversation) {
	var req dto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BadRequest(c, err)
		return
	}
	db := deps.DB.WithContext(c.Request.Context())

	userMsg := model.Message{ConversationID: conversation.ID, Role: openai.ChatMessageRoleUser, Content: req.Content}
	if err := db.Create(&userMsg).Error; err != nil {
		common.Fail(c, err)
		return
	}

	history := BuildHistory(conversation.AssistantType, append(conversation.Messages, userMsg))
	reply, err := deps.AI.Complete(c.Request.Context(), history, "", 0, 0)
	if err != nil {
		logrus.WithError(err).WithField("conversation", conversation.ID).Warn("assistant reply failed")
		common.Fail(c, err)
		return
	}

	assistantMsg := model.Message{ConversationID: conversation.ID, Role: openai.ChatMessageRoleAssistant, Content: reply}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&assistantMsg).Error; err != nil {
			return err
		}
		return tx.Model(conversation).Update("updated_at", assistantMsg.CreatedAt).Error
	})
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_message":      userMsg,
		"assistant_message": assistantMsg,
		"estimated_tokens":  services.CountMessageTokens(history),
	})
}

// BuildHistory prefixes the stored messages with the system prompt for the assistant type.
func BuildHistory(assistantType string, messages []model.Message) []services.ChatMessage {
	history := make([]services.ChatMessage, 0, len(messages)+1)
	history = append(history, services.ChatMessage{Role: openai.ChatMessageRoleSystem, Content: services.SystemPrompt(assistantType)})
	for _, m := range messages {
		history = append(history, services.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return history
}
