package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
)

// stockSortColumns maps the allowed sort field names to their columns.
// Field selection is a closed enumeration: unknown names are invalid input.
var stockSortColumns = map[string]string{
	"symbol":       "symbol",
	"company_name": "company_name",
}

var (
	maxLastDiv   = decimal.NewFromInt(100)
	minLastDiv   = decimal.NewFromFloat(0.01)
	maxPurchase  = decimal.NewFromInt(1_000_000_000)
	maxMarketCap = int64(5_000_000_000)
)

// stockService handles the stock catalog business logic.
type stockService struct {
	db *gorm.DB
}

// NewStockService creates a new StockServicer.
func NewStockService(db *gorm.DB) StockServicer {
	return &stockService{db: db}
}

// ListStocks returns a page of the catalog for the given query. Filters are
// applied first, then ordering, then pagination, so repeated calls against an
// unchanged store are stable. A page past the end is empty, never an error.
func (s *stockService) ListStocks(query StockQuery) (*pagination.PageResponse[models.Stock], error) {
	query.Defaults()

	order, err := stockOrderClause(query)
	if err != nil {
		return nil, err
	}

	base := s.db.Model(&models.Stock{})
	if sym := strings.TrimSpace(query.Symbol); sym != "" {
		base = base.Where("LOWER(symbol) LIKE ?", "%"+strings.ToLower(sym)+"%")
	}
	if name := strings.TrimSpace(query.CompanyName); name != "" {
		base = base.Where("LOWER(company_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var stocks []models.Stock
	if err := base.Preload("Comments").Order(order).
		Scopes(pagination.Paginate(query.PageRequest)).Find(&stocks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(stocks, query.Page, query.PageSize, totalItems)
	return &result, nil
}

// stockOrderClause builds the ORDER BY clause for a query. The direction flag
// flips between ascending and descending; a secondary order on id keeps
// pagination stable across rows with equal sort keys.
func stockOrderClause(query StockQuery) (string, error) {
	if query.SortBy == "" {
		return "id ASC", nil
	}
	column, ok := stockSortColumns[strings.ToLower(query.SortBy)]
	if !ok {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown sort field: "+query.SortBy)
	}
	direction := "ASC"
	if query.Descending {
		direction = "DESC"
	}
	return column + " " + direction + ", id ASC", nil
}

// GetStockByID returns a stock with its comments.
func (s *stockService) GetStockByID(id uint) (*models.Stock, error) {
	var stock models.Stock
	if err := s.db.Preload("Comments").First(&stock, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStockNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stock, nil
}

// GetStockBySymbol returns the first stock whose symbol matches,
// case-insensitively.
func (s *stockService) GetStockBySymbol(symbol string) (*models.Stock, error) {
	var stock models.Stock
	err := s.db.Where("LOWER(symbol) = ?", strings.ToLower(strings.TrimSpace(symbol))).
		First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStockNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stock, nil
}

// CreateStock creates a new catalog entry. Duplicate symbols are allowed at
// this layer; only the portfolio enforces per-user uniqueness.
func (s *stockService) CreateStock(input StockInput) (*models.Stock, error) {
	if err := validateStockInput(input); err != nil {
		return nil, err
	}

	stock := &models.Stock{
		Symbol:      input.Symbol,
		CompanyName: input.CompanyName,
		Purchase:    input.Purchase,
		LastDiv:     input.LastDiv,
		Industry:    input.Industry,
		MarketCap:   input.MarketCap,
	}
	if err := s.db.Create(stock).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return stock, nil
}

// UpdateStock replaces all writable fields of an existing stock.
func (s *stockService) UpdateStock(id uint, input StockInput) (*models.Stock, error) {
	if err := validateStockInput(input); err != nil {
		return nil, err
	}

	var stock models.Stock
	if err := s.db.First(&stock, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStockNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stock.Symbol = input.Symbol
	stock.CompanyName = input.CompanyName
	stock.Purchase = input.Purchase
	stock.LastDiv = input.LastDiv
	stock.Industry = input.Industry
	stock.MarketCap = input.MarketCap

	if err := s.db.Save(&stock).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stock, nil
}

// DeleteStock removes a stock and returns the prior value. Deletion is
// refused while comments or portfolio holdings still reference the stock.
func (s *stockService) DeleteStock(id uint) (*models.Stock, error) {
	var stock models.Stock

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&stock, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrStockNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var dependents int64
		if err := tx.Model(&models.Comment{}).Where("stock_id = ?", id).Count(&dependents).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if dependents > 0 {
			return apperrors.ErrStockInUse
		}
		if err := tx.Model(&models.Portfolio{}).Where("stock_id = ?", id).Count(&dependents).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if dependents > 0 {
			return apperrors.ErrStockInUse
		}

		if err := tx.Delete(&models.Stock{}, id).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// validateStockInput enforces the catalog field invariants.
func validateStockInput(input StockInput) error {
	symbol := strings.TrimSpace(input.Symbol)
	if symbol == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol is required")
	}
	if len(symbol) > 5 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol cannot exceed 5 characters")
	}
	if strings.TrimSpace(input.CompanyName) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Company name is required")
	}
	if !input.Purchase.IsPositive() || input.Purchase.GreaterThan(maxPurchase) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Purchase price must be between 0 and 1000000000")
	}
	if input.LastDiv.LessThan(minLastDiv) || input.LastDiv.GreaterThan(maxLastDiv) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Last dividend must be between 0.01 and 100")
	}
	if len(input.Industry) > 20 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Industry cannot exceed 20 characters")
	}
	if input.MarketCap < 1 || input.MarketCap > maxMarketCap {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Market cap must be between 1 and 5000000000")
	}
	return nil
}
