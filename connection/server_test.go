package connection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"personalhub/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouterWiring(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testutil.NewDeps(t)
	router := NewRouter(deps, ServerConfig{CORSOrigins: []string{"*"}})

	w := testutil.Do(t, router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Api is running!")

	w = testutil.Do(t, router, http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := testutil.Token(t, deps, testutil.CreateUser(t, deps.DB, "wired@example.com"))
	w = testutil.Do(t, router, http.MethodGet, "/api/tasks", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(t, router, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	name, err := deps.Store.Save(context.Background(), "media/hello.txt", strings.NewReader("hi"))
	require.NoError(t, err)
	w = testutil.Do(t, router, http.MethodGet, deps.Store.URL(name), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hi", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStartServerRequiresSecrets(t *testing.T) {
	err := StartServer(&Config{})
	assert.ErrorContains(t, err, "jwt.access_secret")
}

func TestNewAppAndClose(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
		Storage:  StorageConfig{Backend: "local", LocalDir: t.TempDir(), BaseURL: "/media", MediaPrefix: "media"},
		JWT:      JWTConfig{AccessSecret: "a", RefreshSecret: "r"},
	}
	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, app.Deps)
	assert.Nil(t, app.Redis)
	assert.Equal(t, "media", app.Deps.MediaPrefix)

	sqlDB, err := app.Deps.DB.DB()
	require.NoError(t, err)
	app.Close()
	assert.Error(t, sqlDB.Ping())
}

func TestNewAppRejectsUnknownBackends(t *testing.T) {
	_, err := NewApp(context.Background(), &Config{Database: DatabaseConfig{Driver: "postgres"}})
	assert.ErrorContains(t, err, "unsupported database driver")

	_, err = NewApp(context.Background(), &Config{
		Database: DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
		Storage:  StorageConfig{Backend: "s3"},
	})
	assert.ErrorContains(t, err, "unsupported storage backend")
}
