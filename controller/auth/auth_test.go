package auth

import (
	"net/http"
	"testing"

	"personalhub/model"
	"personalhub/services"
	"personalhub/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signinResponse struct {
	Token services.TokenPair `json:"token"`
	User  struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	deps := testutil.NewDeps(t)
	router := testutil.NewRouter(t)
	SignInController(router, deps)
	SignUpController(router, deps)
	TokenController(router, deps)
	return router
}

func TestSignupSigninRefresh(t *testing.T) {
	router := newAuthRouter(t)

	w := testutil.Do(t, router, http.MethodPost, "/auth/signup", "", gin.H{"name": "Owner", "email": "owner@example.com", "password": "password1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.Do(t, router, http.MethodPost, "/auth/signup", "", gin.H{"name": "Copy", "email": "OWNER@example.com", "password": "password1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = testutil.Do(t, router, http.MethodPost, "/auth/signup", "", gin.H{"name": "Short", "email": "short@example.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var availability struct {
		Available bool `json:"available"`
	}
	testutil.Decode(t, testutil.Do(t, router, http.MethodPost, "/auth/email", "", gin.H{"email": "owner@example.com"}), &availability)
	assert.False(t, availability.Available)

	w = testutil.Do(t, router, http.MethodPost, "/auth/signin", "", gin.H{"email": "owner@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.Do(t, router, http.MethodPost, "/auth/signin", "", gin.H{"email": "owner@example.com", "password": "password1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var signin signinResponse
	testutil.Decode(t, w, &signin)
	assert.Equal(t, model.RoleAdmin, signin.User.Role)
	require.NotEmpty(t, signin.Token.RefreshToken)

	assert.Equal(t, http.StatusUnauthorized, testutil.Do(t, router, http.MethodPost, "/auth/refresh", "", nil).Code)

	w = testutil.Do(t, router, http.MethodPost, "/auth/refresh", signin.Token.RefreshToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var refreshed signinResponse
	testutil.Decode(t, w, &refreshed)
	assert.NotEmpty(t, refreshed.Token.AccessToken)

	w = testutil.Do(t, router, http.MethodPost, "/auth/refresh", signin.Token.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	require.Equal(t, http.StatusOK, testutil.Do(t, router, http.MethodPost, "/auth/signout", refreshed.Token.AccessToken, nil).Code)
	w = testutil.Do(t, router, http.MethodPost, "/auth/refresh", refreshed.Token.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
