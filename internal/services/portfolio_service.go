package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
)

// portfolioService manages the user-to-stock holdings.
type portfolioService struct {
	db     *gorm.DB
	stocks StockServicer
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, stocks StockServicer) PortfolioServicer {
	return &portfolioService{db: db, stocks: stocks}
}

// GetUserPortfolio returns the stocks a user holds, materialized as full
// stock projections through the join rather than the join records themselves.
func (s *portfolioService) GetUserPortfolio(userID uint) ([]models.Stock, error) {
	var stocks []models.Stock
	err := s.db.Model(&models.Stock{}).
		Joins("JOIN portfolios ON portfolios.stock_id = stocks.id").
		Where("portfolios.user_id = ?", userID).
		Order("stocks.symbol ASC, stocks.id ASC").
		Find(&stocks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if stocks == nil {
		stocks = []models.Stock{}
	}
	return stocks, nil
}

// AddToPortfolio links a stock, resolved by symbol, to the user's holdings.
// The duplicate pre-check gives a friendly error on the common path; the
// composite primary key on (user_id, stock_id) closes the check-then-insert
// race, and a constraint violation from a concurrent add maps to the same
// conflict error.
func (s *portfolioService) AddToPortfolio(userID uint, symbol string) (*models.Portfolio, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol is required")
	}

	stock, err := s.stocks.GetStockBySymbol(symbol)
	if err != nil {
		return nil, err
	}

	held, err := s.GetUserPortfolio(userID)
	if err != nil {
		return nil, err
	}
	for _, h := range held {
		if strings.EqualFold(h.Symbol, symbol) {
			return nil, apperrors.ErrStockAlreadyHeld
		}
	}

	holding := &models.Portfolio{
		UserID:  userID,
		StockID: stock.ID,
	}
	if err := s.db.Create(holding).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrStockAlreadyHeld
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holding, nil
}

// isUniqueConstraintError checks if a GORM error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
