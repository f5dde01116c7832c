package auth

import (
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"

	"github.com/gin-gonic/gin"
)

func SignInController(router *gin.Engine, deps *common.Deps) {
	router.POST("/auth/signin", func(c *gin.Context) {
		Signin(c, deps)
	})
}

func Signin(c *gin.Context, deps *common.Deps) {
	var request dto.SigninRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := deps.Users.Authenticate(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		common.Fail(c, err)
		return
	}

	tokens, err := deps.Tokens.Issue(c.Request.Context(), user)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login Successfully",
		"token":   tokens,
		"user":    dto.NewUserResponse(user),
	})
}
