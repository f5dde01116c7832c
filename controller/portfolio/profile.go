package portfolio

import (
	"errors"
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/middleware"
	"personalhub/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type profileResponse struct {
	*model.Profile
	PhotoURL string `json:"photo_url,omitempty"`
	CVURL    string `json:"cv_url,omitempty"`
}

func withProfileURLs(deps *common.Deps, p *model.Profile) *profileResponse {
	if p == nil {
		return nil
	}
	return &profileResponse{Profile: p, PhotoURL: deps.Store.URL(p.Photo), CVURL: deps.Store.URL(p.CVFile)}
}

func ProfileController(api *gin.RouterGroup, deps *common.Deps) {
	routes := api.Group("/profile", middleware.AccessTokenMiddleware(deps.Tokens))
	{
		routes.GET("", func(c *gin.Context) {
			GetProfile(c, deps)
		})
		routes.PUT("", func(c *gin.Context) {
			UpdateProfile(c, deps)
		})
		routes.POST("/photo", func(c *gin.Context) {
			UploadProfileFile(c, deps, "photo", "profile", "photo")
		})
		routes.POST("/cv", func(c *gin.Context) {
			UploadProfileFile(c, deps, "cv", "cv", "cv_file")
		})
	}
}

// profileFor returns the user's profile, creating an empty one on first access.
func profileFor(db *gorm.DB, userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	profile = model.Profile{UserID: userID}
	if err := db.Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// created concurrently
			err = db.Where("user_id = ?", userID).First(&profile).Error
		}
		if err != nil {
			return nil, err
		}
	}
	return &profile, nil
}

func GetProfile(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	profile, err := profileFor(deps.DB.WithContext(c.Request.Context()), userID)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, withProfileURLs(deps, profile))
}

func UpdateProfile(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BadRequest(c, err)
		return
	}
	db := deps.DB.WithContext(c.Request.Context())
	profile, err := profileFor(db, userID)
	if err != nil {
		common.Fail(c, err)
		return
	}
	req.Apply(profile)
	if err := db.Save(profile).Error; err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, withProfileURLs(deps, profile))
}

// UploadProfileFile stores the multipart "file" and points column at it.
func UploadProfileFile(c *gin.Context, deps *common.Deps, kind, folder, column string) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	db := deps.DB.WithContext(c.Request.Context())
	profile, err := profileFor(db, userID)
	if err != nil {
		common.Fail(c, err)
		return
	}
	name, ok := common.SaveUpload(c, deps, "file", folder, true)
	if !ok {
		return
	}
	if err := db.Model(profile).Update(column, name).Error; err != nil {
		common.Fail(c, err)
		return
	}
	if column == "photo" {
		profile.Photo = name
	} else {
		profile.CVFile = name
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile " + kind + " updated", "profile": withProfileURLs(deps, profile)})
}
