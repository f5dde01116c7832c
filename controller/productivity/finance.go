package productivity

import (
	"fmt"
	"net/http"
	"time"

	"personalhub/controller/common"
	"personalhub/dto"
	"personalhub/model"
	"personalhub/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func transactionResource(deps *common.Deps) *common.Resource[model.Transaction, dto.TransactionRequest] {
	return &common.Resource[model.Transaction, dto.TransactionRequest]{
		DB:    deps.DB,
		Name:  "Transaction",
		Owned: true,
		Order: "date DESC, id DESC",
		Filter: func(c *gin.Context, q *gorm.DB) *gorm.DB {
			if t := c.Query("type"); t != "" {
				q = q.Where("type = ?", t)
			}
			if cat := c.Query("category"); cat != "" {
				q = q.Where("category = ?", cat)
			}
			return q
		},
	}
}

func FinanceController(api *gin.RouterGroup, deps *common.Deps) {
	api.GET("/transactions/export", func(c *gin.Context) {
		ExportTransactions(c, deps)
	})
	transactionResource(deps).Register(api, "/transactions")
	DocumentController(api, deps)
	api.GET("/finance/dashboard", func(c *gin.Context) {
		FinanceDashboard(c, deps)
	})
}

type categoryTotal struct {
	Type     string  `json:"type"`
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type monthTotal struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// SummarizeTransactions folds transactions into totals, per-category sums and per-month sums.
func SummarizeTransactions(txs []model.Transaction) (income, expenses float64, categories []categoryTotal, months []monthTotal) {
	catIndex := map[string]int{}
	monthIndex := map[string]int{}
	categories = []categoryTotal{}
	months = []monthTotal{}

	for _, t := range txs {
		key := t.Type + "/" + t.Category
		i, ok := catIndex[key]
		if !ok {
			i = len(categories)
			catIndex[key] = i
			categories = append(categories, categoryTotal{Type: t.Type, Category: t.Category})
		}
		categories[i].Total += t.Amount

		month := t.Date.Format("2006-01")
		j, ok := monthIndex[month]
		if !ok {
			j = len(months)
			monthIndex[month] = j
			months = append(months, monthTotal{Month: month})
		}
		switch t.Type {
		case model.TransactionIncome:
			income += t.Amount
			months[j].Income += t.Amount
		case model.TransactionExpense:
			expenses += t.Amount
			months[j].Expenses += t.Amount
		}
	}
	return income, expenses, categories, months
}

func FinanceDashboard(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	var txs []model.Transaction
	if err := deps.DB.WithContext(c.Request.Context()).Where("user_id = ?", userID).Order("date, id").Find(&txs).Error; err != nil {
		common.Fail(c, err)
		return
	}
	income, expenses, categories, months := SummarizeTransactions(txs)

	recent := make([]model.Transaction, 0, 10)
	for i := len(txs) - 1; i >= 0 && len(recent) < 10; i-- {
		recent = append(recent, txs[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"total_income":        income,
		"total_expenses":      expenses,
		"balance":             income - expenses,
		"by_category":         categories,
		"by_month":            months,
		"recent_transactions": recent,
	})
}

// ExportTransactions streams the caller's transactions as an xlsx workbook.
func ExportTransactions(c *gin.Context, deps *common.Deps) {
	userID, ok := common.CurrentUser(c)
	if !ok {
		return
	}
	var txs []model.Transaction
	if err := deps.DB.WithContext(c.Request.Context()).Where("user_id = ?", userID).Order("date, id").Find(&txs).Error; err != nil {
		common.Fail(c, err)
		return
	}
	content, err := services.WriteTransactionsSheet(txs)
	if err != nil {
		common.Fail(c, err)
		return
	}
	logrus.WithFields(logrus.Fields{"user": userID, "rows": len(txs)}).Info("transactions exported")
	filename := fmt.Sprintf("transactions_%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, content)
}
