package model

import (
	"time"

	"gorm.io/datatypes"
)

var IdeaStatuses = []string{"idea", "researching", "planning", "active", "paused", "abandoned"}

type BusinessIdea struct {
	Base
	Owner
	Title       string        `gorm:"size:255;not null" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Status      string        `gorm:"size:20;not null;default:idea;index" json:"status"`
	MarketSize  string        `gorm:"type:text" json:"market_size"`
	Competitors string        `gorm:"type:text" json:"competitors"`
	Plan        *BusinessPlan `gorm:"foreignKey:IdeaID;constraint:OnDelete:CASCADE" json:"plan,omitempty"`
}

type MarketResearch struct {
	Base
	Owner
	IdeaID   uint      `gorm:"not null;index" json:"idea_id"`
	Findings string    `gorm:"type:text;not null" json:"findings"`
	Sources  string    `gorm:"type:text" json:"sources"`
	Date     time.Time `gorm:"type:date;not null" json:"date"`
}

type YearProjection struct {
	Year     int     `json:"year"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

type FinancialData struct {
	StartupCost     float64          `json:"startup_cost"`
	MonthlyRevenue  float64          `json:"monthly_revenue"`
	MonthlyExpenses float64          `json:"monthly_expenses"`
	Projections     []YearProjection `json:"projections,omitempty"`
}

// BusinessPlan is one-to-one with its idea.
type BusinessPlan struct {
	Base
	Owner
	IdeaID           uint                              `gorm:"not null;uniqueIndex" json:"idea_id"`
	ExecutiveSummary string                            `gorm:"type:text;not null" json:"executive_summary"`
	FinancialData    datatypes.JSONType[FinancialData] `json:"financial_data"`
}

type ImportExportRecord struct {
	Base
	Owner
	Product     string    `gorm:"size:255;not null" json:"product"`
	Quantity    float64   `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Value       float64   `gorm:"type:decimal(12,2);not null" json:"value"`
	Country     string    `gorm:"size:100;not null" json:"country"`
	Date        time.Time `gorm:"type:date;not null" json:"date"`
	Type        string    `gorm:"size:20;not null;index" json:"type"`
	Description string    `gorm:"type:text" json:"description"`
}
