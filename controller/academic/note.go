package academic

import (
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func courseFilter(c *gin.Context, q *gorm.DB) *gorm.DB {
	if course := c.Query("course"); course != "" {
		q = q.Where("course_id = ?", course)
	}
	return q
}

func NoteController(api *gin.RouterGroup, deps *common.Deps) {
	notes := &common.Resource[model.Note, dto.NoteRequest]{
		DB:     deps.DB,
		Name:   "Note",
		Owned:  true,
		Order:  "created_at DESC",
		Filter: courseFilter,
		Check: func(_ *gin.Context, db *gorm.DB, userID uint, n *model.Note) error {
			return common.OwnedParent(db, &model.Course{}, n.CourseID, userID)
		},
	}
	notes.Register(api, "/notes")
	api.POST("/notes/:id/file", func(c *gin.Context) {
		note, _, ok := notes.Load(c)
		if !ok {
			return
		}
		AttachNoteFile(c, deps, note)
	})
}

// AttachNoteFile uploads the multipart "file" and links it to the note.
func AttachNoteFile(c *gin.Context, deps *common.Deps, note *model.Note) {
	name, ok := common.SaveUpload(c, deps, "file", "notes", true)
	if !ok {
		return
	}
	if err := deps.DB.WithContext(c.Request.Context()).Model(note).Update("file", name).Error; err != nil {
		common.Fail(c, err)
		return
	}
	note.File = name
	c.JSON(http.StatusOK, gin.H{"note": note, "file_url": deps.Store.URL(name)})
}
