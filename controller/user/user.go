package user

import (
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/middleware"
	"personalhub/services"

	"github.com/gin-gonic/gin"
)

func UserController(router *gin.Engine, deps *common.Deps) {
	routes := router.Group("/user", middleware.AccessTokenMiddleware(deps.Tokens))
	{
		routes.GET("/profile", func(c *gin.Context) {
			GetProfileUser(c, deps)
		})
		routes.PUT("/profile", func(c *gin.Context) {
			UpdateProfileUser(c, deps)
		})
		routes.DELETE("/account", func(c *gin.Context) {
			DeleteUser(c, deps)
		})
	}
}

func GetProfileUser(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	user, err := deps.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func UpdateProfileUser(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := deps.Users.Update(c.Request.Context(), userID, services.ProfileUpdate{
		Name:           req.Name,
		Password:       req.Password,
		Profile:        req.Profile,
		TelegramChatID: req.TelegramChatID,
		UnlinkTelegram: req.UnlinkTelegram,
	})
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": dto.NewUserResponse(user)})
}

func DeleteUser(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	if err := deps.Users.Delete(c.Request.Context(), userID); err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
