package auth

import (
	"net/http"

	"personalhub/controller/common"
	"personalhub/middleware"

	"github.com/gin-gonic/gin"
)

func TokenController(router *gin.Engine, deps *common.Deps) {
	router.POST("/auth/refresh", middleware.RefreshTokenMiddleware(), func(c *gin.Context) {
		Refresh(c, deps)
	})
	router.POST("/auth/signout", middleware.AccessTokenMiddleware(deps.Tokens), func(c *gin.Context) {
		Signout(c, deps)
	})
}

func Refresh(c *gin.Context, deps *common.Deps) {
	tokens, err := deps.Tokens.Rotate(c.Request.Context(), c.GetString("refreshToken"))
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token refreshed", "token": tokens})
}

func Signout(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	if err := deps.Tokens.Revoke(c.Request.Context(), userID); err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
