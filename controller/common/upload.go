package common

import (
	"net/http"

	"personalhub/services"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 20 << 20

// SaveUpload stores the multipart file under field in folder and returns the stored name.
// A missing file answers 400; required=false turns that into ("", true).
func SaveUpload(c *gin.Context, deps *Deps, field, folder string, required bool) (string, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		if !required {
			return "", true
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "File '" + field + "' is required"})
		return "", false
	}
	if fh.Size > maxUploadSize {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File is too large"})
		return "", false
	}
	f, err := fh.Open()
	if err != nil {
		BadRequest(c, err)
		return "", false
	}
	defer f.Close()

	name, err := deps.Store.Save(c.Request.Context(), services.MediaName(deps.MediaPrefix, folder, fh.Filename), f)
	if err != nil {
		Fail(c, err)
		return "", false
	}
	return name, true
}
