package models

import "github.com/shopspring/decimal"

// Stock represents a tradable instrument in the catalog.
//
// Symbol is not unique at this layer: duplicate listings are allowed in the
// catalog, and only the portfolio layer enforces per-user uniqueness.
type Stock struct {
	Base
	Symbol      string          `gorm:"size:5;not null;index" json:"symbol"`
	CompanyName string          `gorm:"not null" json:"company_name"`
	Purchase    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"purchase"`
	LastDiv     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"last_div"`
	Industry    string          `gorm:"size:20" json:"industry"`
	MarketCap   int64           `gorm:"type:bigint;not null" json:"market_cap"`

	Comments []Comment `gorm:"foreignKey:StockID" json:"comments,omitempty"`
}
