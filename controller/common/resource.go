package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Applier copies a validated request onto a model.
type Applier[M any] interface {
	Apply(m *M) error
}

type owned interface {
	SetOwner(userID uint)
}

// Resource serves list, get, create, update and delete for one model. With Owned set,
// every query is limited to the caller's rows and other users' rows answer 404.
type Resource[M any, R Applier[M]] struct {
	DB    *gorm.DB
	Name  string
	Owned bool
	Order string
	// Filter narrows list queries, usually from query parameters.
	Filter func(c *gin.Context, q *gorm.DB) *gorm.DB
	// Preload names associations loaded on get.
	Preload []string
	// Check runs before create and update, e.g. to verify a parent row belongs to the user.
	Check func(c *gin.Context, db *gorm.DB, userID uint, m *M) error
	// Cascade removes dependent rows in the same transaction as the delete.
	Cascade func(tx *gorm.DB, id uint) error
	// ReadOnly columns are never written by update; other endpoints own them.
	ReadOnly []string
}

func (r *Resource[M, R]) Register(group gin.IRoutes, path string, writeGuards ...gin.HandlerFunc) {
	r.RegisterRead(group, path)
	r.RegisterWrite(group, path, writeGuards...)
}

func (r *Resource[M, R]) RegisterRead(group gin.IRoutes, path string) {
	group.GET(path, r.List)
	group.GET(path+"/:id", r.Get)
}

func (r *Resource[M, R]) RegisterWrite(group gin.IRoutes, path string, guards ...gin.HandlerFunc) {
	group.POST(path, append(guards, r.Create)...)
	group.PUT(path+"/:id", append(guards, r.Update)...)
	group.DELETE(path+"/:id", append(guards, r.Delete)...)
}

func (r *Resource[M, R]) scope(c *gin.Context, q *gorm.DB) (*gorm.DB, uint, bool) {
	if !r.Owned {
		return q, 0, true
	}
	userID, ok := CurrentUser(c)
	if !ok {
		return nil, 0, false
	}
	return q.Where("user_id = ?", userID), userID, true
}

// Query returns the caller-scoped base query, for handlers built on top of a Resource.
func (r *Resource[M, R]) Query(c *gin.Context) (*gorm.DB, uint, bool) {
	return r.scope(c, r.DB.WithContext(c.Request.Context()).Model(new(M)))
}

func (r *Resource[M, R]) List(c *gin.Context) {
	q, _, ok := r.Query(c)
	if !ok {
		return
	}
	if r.Filter != nil {
		q = r.Filter(c, q)
	}
	if r.Order != "" {
		q = q.Order(r.Order)
	}
	items := []M{}
	if err := q.Find(&items).Error; err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Load fetches one row by the :id parameter within the caller's scope.
func (r *Resource[M, R]) Load(c *gin.Context) (*M, uint, bool) {
	id, ok := ParamID(c, "id")
	if !ok {
		return nil, 0, false
	}
	q, userID, ok := r.Query(c)
	if !ok {
		return nil, 0, false
	}
	for _, p := range r.Preload {
		q = q.Preload(p)
	}
	var m M
	if err := q.Where("id = ?", id).First(&m).Error; err != nil {
		Fail(c, err)
		return nil, 0, false
	}
	return &m, userID, true
}

func (r *Resource[M, R]) Get(c *gin.Context) {
	m, _, ok := r.Load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, m)
}

func (r *Resource[M, R]) Create(c *gin.Context) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}
	var m M
	if err := req.Apply(&m); err != nil {
		Fail(c, err)
		return
	}
	var userID uint
	if r.Owned {
		var ok bool
		if userID, ok = CurrentUser(c); !ok {
			return
		}
		if o, ok := any(&m).(owned); ok {
			o.SetOwner(userID)
		}
	}
	db := r.DB.WithContext(c.Request.Context())
	if r.Check != nil {
		if err := r.Check(c, db, userID, &m); err != nil {
			Fail(c, err)
			return
		}
	}
	if err := db.Create(&m).Error; err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, &m)
}

func (r *Resource[M, R]) Update(c *gin.Context) {
	m, userID, ok := r.Load(c)
	if !ok {
		return
	}
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}
	if err := req.Apply(m); err != nil {
		Fail(c, err)
		return
	}
	db := r.DB.WithContext(c.Request.Context())
	if r.Check != nil {
		if err := r.Check(c, db, userID, m); err != nil {
			Fail(c, err)
			return
		}
	}
	if err := db.Omit(append([]string{clause.Associations}, r.ReadOnly...)...).Save(m).Error; err != nil {
		Fail(c, err)
		return
	}
	if len(r.ReadOnly) > 0 {
		// answer with the stored values of the columns left alone
		if err := db.First(m).Error; err != nil {
			Fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, m)
}

func (r *Resource[M, R]) Delete(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var userID uint
	if r.Owned {
		if userID, ok = CurrentUser(c); !ok {
			return
		}
	}
	var affected int64
	err := r.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id = ?", id)
		if r.Owned {
			q = q.Where("user_id = ?", userID)
		}
		res := q.Delete(new(M))
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 || r.Cascade == nil {
			return nil
		}
		return r.Cascade(tx, id)
	})
	if err != nil {
		Fail(c, err)
		return
	}
	if affected == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": r.Name + " not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": r.Name + " deleted"})
}

// OwnedParent verifies that row id of model belongs to userID.
func OwnedParent(db *gorm.DB, model interface{}, id, userID uint) error {
	var count int64
	if err := db.Model(model).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
