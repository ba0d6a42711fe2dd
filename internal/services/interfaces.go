package services

import (
	"github.com/shopspring/decimal"

	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
)

// StockQuery holds the filter, sort, and page parameters for listing stocks.
// Filters are substring matches, applied case-insensitively. SortBy is a
// closed set of field names ("symbol", "company_name"); anything else is
// rejected as invalid input rather than silently ignored.
type StockQuery struct {
	Symbol      string `form:"symbol"`
	CompanyName string `form:"company_name"`
	SortBy      string `form:"sort_by" binding:"omitempty,sort_field"`
	Descending  bool   `form:"descending"`
	pagination.PageRequest
}

// StockInput carries the writable fields of a stock for create and update.
type StockInput struct {
	Symbol      string
	CompanyName string
	Purchase    decimal.Decimal
	LastDiv     decimal.Decimal
	Industry    string
	MarketCap   int64
}

// StockServicer defines the contract for the stock catalog.
type StockServicer interface {
	ListStocks(query StockQuery) (*pagination.PageResponse[models.Stock], error)
	GetStockByID(id uint) (*models.Stock, error)
	GetStockBySymbol(symbol string) (*models.Stock, error)
	CreateStock(input StockInput) (*models.Stock, error)
	UpdateStock(id uint, input StockInput) (*models.Stock, error)
	DeleteStock(id uint) (*models.Stock, error)
}

// CommentServicer defines the contract for comment-related business logic.
type CommentServicer interface {
	ListComments() ([]models.Comment, error)
	GetCommentByID(id uint) (*models.Comment, error)
	CreateComment(stockID *uint, title, content string) (*models.Comment, error)
	UpdateComment(id uint, title, content string) (*models.Comment, error)
	DeleteComment(id uint) (*models.Comment, error)
}

// PortfolioServicer defines the contract for the user-to-stock holdings.
// Caller identity is always passed in explicitly as userID.
type PortfolioServicer interface {
	GetUserPortfolio(userID uint) ([]models.Stock, error)
	AddToPortfolio(userID uint, symbol string) (*models.Portfolio, error)
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}
