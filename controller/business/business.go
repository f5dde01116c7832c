package business

import (
	"net/http"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/middleware"
	"personalhub/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func BusinessController(router *gin.Engine, deps *common.Deps) {
	api := router.Group("/api", middleware.AccessTokenMiddleware(deps.Tokens))

	ideas := &common.Resource[model.BusinessIdea, dto.IdeaRequest]{
		DB:      deps.DB,
		Name:    "Idea",
		Owned:   true,
		Order:   "created_at DESC",
		Preload: []string{"Plan"},
		Filter: func(c *gin.Context, q *gorm.DB) *gorm.DB {
			if status := c.Query("status"); status != "" {
				q = q.Where("status = ?", status)
			}
			return q
		},
		Cascade: func(tx *gorm.DB, id uint) error {
			if err := tx.Where("idea_id = ?", id).Delete(&model.MarketResearch{}).Error; err != nil {
				return err
			}
			return tx.Where("idea_id = ?", id).Delete(&model.BusinessPlan{}).Error
		},
	}
	ideas.Register(api, "/ideas")

	research := &common.Resource[model.MarketResearch, dto.ResearchRequest]{
		DB:    deps.DB,
		Name:  "Market research",
		Owned: true,
		Order: "date DESC",
		Filter: func(c *gin.Context, q *gorm.DB) *gorm.DB {
			if idea := c.Query("idea"); idea != "" {
				q = q.Where("idea_id = ?", idea)
			}
			return q
		},
		Check: func(_ *gin.Context, db *gorm.DB, userID uint, r *model.MarketResearch) error {
			return common.OwnedParent(db, &model.BusinessIdea{}, r.IdeaID, userID)
		},
	}
	research.Register(api, "/research")

	records := &common.Resource[model.ImportExportRecord, dto.ImportExportRequest]{
		DB:    deps.DB,
		Name:  "Record",
		Owned: true,
		Order: "date DESC, id DESC",
		Filter: func(c *gin.Context, q *gorm.DB) *gorm.DB {
			if t := c.Query("type"); t != "" {
				q = q.Where("type = ?", t)
			}
			return q
		},
	}
	records.Register(api, "/import-export")

	api.GET("/ideas/:id/plan", func(c *gin.Context) {
		GetPlan(c, deps)
	})
	api.PUT("/ideas/:id/plan", func(c *gin.Context) {
		SavePlan(c, deps)
	})
	api.GET("/ideas/:id/projections", func(c *gin.Context) {
		Projections(c, deps)
	})
	api.GET("/business/dashboard", func(c *gin.Context) {
		Dashboard(c, deps)
	})
}

func ownedIdea(c *gin.Context, deps *common.Deps) (*model.BusinessIdea, bool) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return nil, false
	}
	id, ok := common.ParamID(c, "id")
	if !ok {
		return nil, false
	}
	var idea model.BusinessIdea
	err := deps.DB.WithContext(c.Request.Context()).
		Preload("Plan").
		Where("id = ? AND user_id = ?", id, userID).
		First(&idea).Error
	if err != nil {
		common.Fail(c, err)
		return nil, false
	}
	return &idea, true
}

func GetPlan(c *gin.Context, deps *common.Deps) {
	idea, ok := ownedIdea(c, deps)
	if !ok {
		return
	}
	if idea.Plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business plan not found"})
		return
	}
	c.JSON(http.StatusOK, idea.Plan)
}

// SavePlan creates or replaces the idea's single business plan.
func SavePlan(c *gin.Context, deps *common.Deps) {
	idea, ok := ownedIdea(c, deps)
	if !ok {
		return
	}
	var req dto.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.BadRequest(c, err)
		return
	}
	plan := idea.Plan
	created := plan == nil
	if created {
		plan = &model.BusinessPlan{IdeaID: idea.ID}
		plan.SetOwner(idea.UserID)
	}
	req.Apply(plan)

	db := deps.DB.WithContext(c.Request.Context())
	var err error
	if created {
		err = db.Create(plan).Error
	} else {
		err = db.Save(plan).Error
	}
	if err != nil {
		common.Fail(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, plan)
}

type YearResult struct {
	Year             int     `json:"year"`
	Revenue          float64 `json:"revenue"`
	Expenses         float64 `json:"expenses"`
	Profit           float64 `json:"profit"`
	CumulativeProfit float64 `json:"cumulative_profit"`
}

// ProjectYears derives yearly profit and running profit, starting from minus the startup cost.
func ProjectYears(fd model.FinancialData) []YearResult {
	results := make([]YearResult, 0, len(fd.Projections))
	cumulative := -fd.StartupCost
	for _, p := range fd.Projections {
		profit := p.Revenue - p.Expenses
		cumulative += profit
		results = append(results, YearResult{
			Year:             p.Year,
			Revenue:          p.Revenue,
			Expenses:         p.Expenses,
			Profit:           profit,
			CumulativeProfit: cumulative,
		})
	}
	return results
}

func Projections(c *gin.Context, deps *common.Deps) {
	idea, ok := ownedIdea(c, deps)
	if !ok {
		return
	}
	if idea.Plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business plan not found"})
		return
	}
	fd := idea.Plan.FinancialData.Data()
	c.JSON(http.StatusOK, gin.H{
		"idea":           idea.Title,
		"startup_cost":   fd.StartupCost,
		"monthly_profit": fd.MonthlyRevenue - fd.MonthlyExpenses,
		"yearly_results": ProjectYears(fd),
	})
}

func Dashboard(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	db := deps.DB.WithContext(c.Request.Context())

	var ideas []model.BusinessIdea
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&ideas).Error; err != nil {
		common.Fail(c, err)
		return
	}
	byStatus := map[string]int{}
	for _, s := range model.IdeaStatuses {
		byStatus[s] = 0
	}
	for _, idea := range ideas {
		byStatus[idea.Status]++
	}
	recent := ideas
	if len(recent) > 5 {
		recent = recent[:5]
	}
	if recent == nil {
		recent = []model.BusinessIdea{}
	}

	var totals []struct {
		Type  string
		Count int64
		Value float64
	}
	err := db.Model(&model.ImportExportRecord{}).
		Select("type, COUNT(*) AS count, COALESCE(SUM(value), 0) AS value").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&totals).Error
	if err != nil {
		common.Fail(c, err)
		return
	}
	trade := gin.H{"import_count": int64(0), "import_value": 0.0, "export_count": int64(0), "export_value": 0.0}
	for _, t := range totals {
		trade[t.Type+"_count"] = t.Count
		trade[t.Type+"_value"] = t.Value
	}

	c.JSON(http.StatusOK, gin.H{
		"total_ideas":     len(ideas),
		"ideas_by_status": byStatus,
		"recent_ideas":    recent,
		"import_export":   trade,
	})
}
