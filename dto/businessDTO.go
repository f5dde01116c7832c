package dto

import (
	"strings"

	"personalhub/model"
	"personalhub/services"

	"gorm.io/datatypes"
)

type IdeaRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Status      string `json:"status" binding:"omitempty,oneof=idea researching planning active paused abandoned"`
	MarketSize  string `json:"market_size"`
	Competitors string `json:"competitors"`
}

func (r IdeaRequest) Apply(m *model.BusinessIdea) error {
	m.Title = strings.TrimSpace(r.Title)
	m.Description = r.Description
	m.Status = orDefault(r.Status, m.Status, "idea")
	m.MarketSize = r.MarketSize
	m.Competitors = r.Competitors
	return nil
}

type ResearchRequest struct {
	IdeaID   uint   `json:"idea_id" binding:"required"`
	Findings string `json:"findings" binding:"required"`
	Sources  string `json:"sources"`
	Date     string `json:"date" binding:"omitempty,ymd"`
}

func (r ResearchRequest) Apply(m *model.MarketResearch) error {
	date, err := services.ParseDateOrToday(r.Date)
	if err != nil {
		return err
	}
	m.IdeaID = r.IdeaID
	m.Findings = r.Findings
	m.Sources = r.Sources
	m.Date = date
	return nil
}

type ProjectionRequest struct {
	Year     int     `json:"year" binding:"required,min=1"`
	Revenue  float64 `json:"revenue" binding:"min=0"`
	Expenses float64 `json:"expenses" binding:"min=0"`
}

type FinancialDataRequest struct {
	StartupCost     float64             `json:"startup_cost" binding:"min=0"`
	MonthlyRevenue  float64             `json:"monthly_revenue" binding:"min=0"`
	MonthlyExpenses float64             `json:"monthly_expenses" binding:"min=0"`
	Projections     []ProjectionRequest `json:"projections" binding:"dive"`
}

type PlanRequest struct {
	ExecutiveSummary string               `json:"executive_summary" binding:"required"`
	FinancialData    FinancialDataRequest `json:"financial_data"`
}

func (r PlanRequest) Apply(m *model.BusinessPlan) {
	fd := model.FinancialData{
		StartupCost:     r.FinancialData.StartupCost,
		MonthlyRevenue:  r.FinancialData.MonthlyRevenue,
		MonthlyExpenses: r.FinancialData.MonthlyExpenses,
	}
	for _, p := range r.FinancialData.Projections {
		fd.Projections = append(fd.Projections, model.YearProjection(p))
	}
	m.ExecutiveSummary = r.ExecutiveSummary
	m.FinancialData = datatypes.NewJSONType(fd)
}

type ImportExportRequest struct {
	Product     string  `json:"product" binding:"required,max=255"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	Value       float64 `json:"value" binding:"min=0"`
	Country     string  `json:"country" binding:"required,max=100"`
	Date        string  `json:"date" binding:"omitempty,ymd"`
	Type        string  `json:"type" binding:"required,oneof=import export"`
	Description string  `json:"description"`
}

func (r ImportExportRequest) Apply(m *model.ImportExportRecord) error {
	date, err := services.ParseDateOrToday(r.Date)
	if err != nil {
		return err
	}
	m.Product = strings.TrimSpace(r.Product)
	m.Quantity = r.Quantity
	m.Value = r.Value
	m.Country = r.Country
	m.Date = date
	m.Type = r.Type
	m.Description = r.Description
	return nil
}
