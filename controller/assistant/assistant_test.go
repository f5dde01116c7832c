package assistant

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"personalhub/controller/common"
	"personalhub/model"
	"personalhub/services"
	"personalhub/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModel answers every chat completion with reply and records how many
// messages each request carried.
func fakeModel(t *testing.T, reply string) (*httptest.Server, *[]int) {
	t.Helper()
	var sizes []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model    string            `json:"model"`
			Messages []json.RawMessage `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		sizes = append(sizes, len(body.Messages))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(gin.H{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"model":   body.Model,
			"choices": []gin.H{{"index": 0, "finish_reason": "stop", "message": gin.H{"role": "assistant", "content": reply}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &sizes
}

func setup(t *testing.T) (*gin.Engine, *common.Deps, *model.User, string) {
	t.Helper()
	deps := testutil.NewDeps(t)
	router := testutil.NewRouter(t)
	AssistantController(router, deps)
	user := testutil.CreateUser(t, deps.DB, "chat@example.com")
	return router, deps, user, testutil.Token(t, deps, user)
}

func TestBuildHistory(t *testing.T) {
	history := BuildHistory(model.AssistantCode, []model.Message{
		{Role: "user", Content: "why is my loop slow"},
		{Role: "assistant", Content: "show me the loop"},
	})
	require.Len(t, history, 3)
	assert.Equal(t, services.ChatMessage{Role: "system", Content: services.SystemPrompt("code")}, history[0])
	assert.Equal(t, "show me the loop", history[2].Content)

	assert.Len(t, BuildHistory("", nil), 1)
}

func TestSendMessageStoresBothSides(t *testing.T) {
	router, deps, _, token := setup(t)
	srv, sizes := fakeModel(t, "Use a map instead.")
	deps.AI = services.NewAIService(services.AIConfig{APIKey: "test", BaseURL: srv.URL + "/v1"})

	w := testutil.Do(t, router, http.MethodPost, "/api/conversations", token, gin.H{"assistant_type": "code"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var conv model.Conversation
	testutil.Decode(t, w, &conv)
	assert.Equal(t, "New Conversation", conv.Title)
	path := fmt.Sprintf("/api/conversations/%d/messages", conv.ID)

	w = testutil.Do(t, router, http.MethodPost, path, token, gin.H{"content": "lookup is O(n)"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		UserMessage      model.Message `json:"user_message"`
		AssistantMessage model.Message `json:"assistant_message"`
		EstimatedTokens  int           `json:"estimated_tokens"`
	}
	testutil.Decode(t, w, &resp)
	assert.Equal(t, "lookup is O(n)", resp.UserMessage.Content)
	assert.Equal(t, "assistant", resp.AssistantMessage.Role)
	assert.Equal(t, "Use a map instead.", resp.AssistantMessage.Content)
	assert.Positive(t, resp.EstimatedTokens)

	w = testutil.Do(t, router, http.MethodPost, path, token, gin.H{"content": "thanks"})
	require.Equal(t, http.StatusOK, w.Code)
	// system prompt plus every stored message
	assert.Equal(t, []int{2, 4}, *sizes)

	w = testutil.Do(t, router, http.MethodGet, fmt.Sprintf("/api/conversations/%d", conv.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &conv)
	assert.Len(t, conv.Messages, 4)
}

func TestSendMessageKeepsUserMessageWhenModelUnavailable(t *testing.T) {
	router, deps, user, token := setup(t)
	conv := model.Conversation{Owner: model.Owner{UserID: user.ID}, Title: "t", AssistantType: model.AssistantGeneral}
	require.NoError(t, deps.DB.Create(&conv).Error)

	w := testutil.Do(t, router, http.MethodPost, fmt.Sprintf("/api/conversations/%d/messages", conv.ID), token, gin.H{"content": "hello?"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var stored []model.Message
	require.NoError(t, deps.DB.Where("conversation_id = ?", conv.ID).Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "user", stored[0].Role)

	w = testutil.Do(t, router, http.MethodPost, fmt.Sprintf("/api/conversations/%d/messages", conv.ID), token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConversationsAreOwned(t *testing.T) {
	router, deps, user, _ := setup(t)
	conv := model.Conversation{Owner: model.Owner{UserID: user.ID}, Title: "mine", AssistantType: model.AssistantStudy}
	require.NoError(t, deps.DB.Create(&conv).Error)
	require.NoError(t, deps.DB.Create(&model.Message{ConversationID: conv.ID, Role: "user", Content: "x"}).Error)

	other := testutil.Token(t, deps, testutil.CreateUser(t, deps.DB, "other@example.com"))
	w := testutil.Do(t, router, http.MethodPost, fmt.Sprintf("/api/conversations/%d/messages", conv.ID), other, gin.H{"content": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	owner := testutil.Token(t, deps, user)
	w = testutil.Do(t, router, http.MethodDelete, fmt.Sprintf("/api/conversations/%d", conv.ID), owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var count int64
	deps.DB.Model(&model.Message{}).Where("conversation_id = ?", conv.ID).Count(&count)
	assert.Zero(t, count)
}

func TestRenderTemplate(t *testing.T) {
	router, _, _, token := setup(t)
	w := testutil.Do(t, router, http.MethodPost, "/api/templates", token, gin.H{
		"name": "Explain", "category": "study", "template_text": "Explain {topic} to a {level} student",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var tpl model.PromptTemplate
	testutil.Decode(t, w, &tpl)

	w = testutil.Do(t, router, http.MethodPost, fmt.Sprintf("/api/templates/%d/render", tpl.ID), token, gin.H{
		"variables": gin.H{"topic": "recursion"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var out map[string]string
	testutil.Decode(t, w, &out)
	assert.Equal(t, "Explain recursion to a {level} student", out["prompt"])
	assert.NotContains(t, out, "response")

	w = testutil.Do(t, router, http.MethodPost, fmt.Sprintf("/api/templates/%d/render", tpl.ID), token, gin.H{"send": true})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
