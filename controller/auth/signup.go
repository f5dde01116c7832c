package auth

import (
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"

	"github.com/gin-gonic/gin"
)

func SignUpController(router *gin.Engine, deps *common.Deps) {
	router.POST("/auth/signup", func(c *gin.Context) {
		Signup(c, deps)
	})
	router.POST("/auth/email", func(c *gin.Context) {
		EmailAvailable(c, deps)
	})
}

func Signup(c *gin.Context, deps *common.Deps) {
	var request dto.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := deps.Users.Register(c.Request.Context(), request.Name, request.Email, request.Password)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    dto.NewUserResponse(user),
	})
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// EmailAvailable reports whether an address can still be used to sign up.
func EmailAvailable(c *gin.Context, deps *common.Deps) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	exists, err := deps.Users.UserExist(c.Request.Context(), req.Email)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": req.Email, "available": !exists})
}
