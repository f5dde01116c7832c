package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/model"
	"personalhub/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// NewDeps wires every service against a fresh database. The AI client has no key,
// captcha checks are disabled and mail is captured instead of sent.
func NewDeps(t testing.TB) *common.Deps {
	t.Helper()
	db := NewTestDB(t)
	store, err := services.NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)

	hub := services.NewNotificationHub()
	mailer := services.NewEmailService(services.EmailConfig{
		Host: "smtp.test", Port: "25", Username: "hub@test", Password: "pw", ContactTo: "owner@test",
	})
	return &common.Deps{
		DB:            db,
		Tokens:        services.NewTokenService(db, services.TokenConfig{AccessSecret: "a", RefreshSecret: "r"}),
		Users:         services.NewUserService(db),
		Streaks:       services.NewStreakService(db),
		Notifications: services.NewNotificationService(db, hub),
		Hub:           hub,
		AI:            services.NewAIService(services.AIConfig{}),
		Store:         store,
		Mailer:        mailer,
		Captcha:       services.NewCaptchaService(services.CaptchaConfig{}),
		MediaPrefix:   "media",
		StaticPrefix:  "static",
	}
}

// NewRouter returns a test-mode engine with the custom validators registered.
func NewRouter(t testing.TB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, dto.RegisterValidators())
	return gin.New()
}

// Token issues an access token for user.
func Token(t testing.TB, deps *common.Deps, user *model.User) string {
	t.Helper()
	pair, err := deps.Tokens.Issue(context.Background(), user)
	require.NoError(t, err)
	return pair.AccessToken
}

// Admin creates a user with the admin role.
func Admin(t testing.TB, deps *common.Deps, email string) *model.User {
	t.Helper()
	user := CreateUser(t, deps.DB, email)
	require.NoError(t, deps.DB.Model(user).Update("role", model.RoleAdmin).Error)
	user.Role = model.RoleAdmin
	return user
}

// Do sends body as JSON (nil for none) with an optional bearer token.
func Do(t testing.TB, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// Upload posts a multipart form with one file under field plus any extra values.
func Upload(t testing.TB, h http.Handler, path, token, field, filename string, content []byte, values map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// Decode unmarshals the recorded JSON body into v.
func Decode(t testing.TB, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
