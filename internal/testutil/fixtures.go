package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"stockfolio/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := nextID()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: fmt.Sprintf("user%d", n),
		Email:    fmt.Sprintf("user%d@test.com", n),
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestStock creates a stock with a generated symbol and sane defaults.
func CreateTestStock(t *testing.T, db *gorm.DB) *models.Stock {
	t.Helper()
	n := nextID()
	return CreateTestStockWithParams(t, db, fmt.Sprintf("TST%d", n%100), fmt.Sprintf("Test Company %d", n))
}

// CreateTestStockWithParams creates a stock with the given symbol and company name.
func CreateTestStockWithParams(t *testing.T, db *gorm.DB, symbol, companyName string) *models.Stock {
	t.Helper()

	stock := &models.Stock{
		Symbol:      symbol,
		CompanyName: companyName,
		Purchase:    decimal.NewFromFloat(150.25),
		LastDiv:     decimal.NewFromFloat(0.96),
		Industry:    "Technology",
		MarketCap:   1_000_000_000,
	}
	if err := db.Create(stock).Error; err != nil {
		t.Fatalf("failed to create test stock: %v", err)
	}
	return stock
}

// CreateTestComment creates a comment attached to the given stock.
func CreateTestComment(t *testing.T, db *gorm.DB, stockID uint) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		Title:   fmt.Sprintf("Test Comment %d", nextID()),
		Content: "Looks like a solid long-term hold.",
		StockID: &stockID,
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}

// CreateTestHolding links a stock to a user's portfolio directly.
func CreateTestHolding(t *testing.T, db *gorm.DB, userID, stockID uint) *models.Portfolio {
	t.Helper()

	holding := &models.Portfolio{UserID: userID, StockID: stockID}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}
