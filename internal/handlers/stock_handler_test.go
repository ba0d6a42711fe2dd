package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
	"stockfolio/internal/services"
)

// --- mock stock service ---

type mockStockService struct {
	listStocksFn       func(query services.StockQuery) (*pagination.PageResponse[models.Stock], error)
	getStockByIDFn     func(id uint) (*models.Stock, error)
	getStockBySymbolFn func(symbol string) (*models.Stock, error)
	createStockFn      func(input services.StockInput) (*models.Stock, error)
	updateStockFn      func(id uint, input services.StockInput) (*models.Stock, error)
	deleteStockFn      func(id uint) (*models.Stock, error)
}

func (m *mockStockService) ListStocks(query services.StockQuery) (*pagination.PageResponse[models.Stock], error) {
	if m.listStocksFn != nil {
		return m.listStocksFn(query)
	}
	resp := pagination.NewPageResponse([]models.Stock{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockStockService) GetStockByID(id uint) (*models.Stock, error) {
	if m.getStockByIDFn != nil {
		return m.getStockByIDFn(id)
	}
	return &models.Stock{}, nil
}

func (m *mockStockService) GetStockBySymbol(symbol string) (*models.Stock, error) {
	if m.getStockBySymbolFn != nil {
		return m.getStockBySymbolFn(symbol)
	}
	return &models.Stock{}, nil
}

func (m *mockStockService) CreateStock(input services.StockInput) (*models.Stock, error) {
	if m.createStockFn != nil {
		return m.createStockFn(input)
	}
	return &models.Stock{}, nil
}

func (m *mockStockService) UpdateStock(id uint, input services.StockInput) (*models.Stock, error) {
	if m.updateStockFn != nil {
		return m.updateStockFn(id, input)
	}
	return &models.Stock{}, nil
}

func (m *mockStockService) DeleteStock(id uint) (*models.Stock, error) {
	if m.deleteStockFn != nil {
		return m.deleteStockFn(id)
	}
	return &models.Stock{}, nil
}

// verify interface compliance
var _ services.StockServicer = (*mockStockService)(nil)

func setupStockRouter(handler *StockHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/stocks", handler.ListStocks)
	auth.GET("/stocks/:id", handler.GetStock)
	auth.POST("/stocks", handler.CreateStock)
	auth.PUT("/stocks/:id", handler.UpdateStock)
	auth.DELETE("/stocks/:id", handler.DeleteStock)
	return r
}

func TestStockHandler_ListStocks(t *testing.T) {
	t.Run("binds query parameters", func(t *testing.T) {
		var captured services.StockQuery
		stockSvc := &mockStockService{
			listStocksFn: func(query services.StockQuery) (*pagination.PageResponse[models.Stock], error) {
				captured = query
				resp := pagination.NewPageResponse([]models.Stock{}, query.Page, query.PageSize, 0)
				return &resp, nil
			},
		}
		handler := NewStockHandler(stockSvc)
		r := setupStockRouter(handler)

		rec := doRequest(r, "GET", "/stocks?symbol=aa&company_name=apple&sort_by=symbol&descending=true&page=2&page_size=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Symbol != "aa" || captured.CompanyName != "apple" {
			t.Errorf("filters not bound: %+v", captured)
		}
		if captured.SortBy != "symbol" || !captured.Descending {
			t.Errorf("sort not bound: %+v", captured)
		}
		if captured.Page != 2 || captured.PageSize != 10 {
			t.Errorf("pagination not bound: %+v", captured)
		}
	})

	t.Run("returns 400 on unknown sort field", func(t *testing.T) {
		handler := NewStockHandler(&mockStockService{})
		r := setupStockRouter(handler)

		rec := doRequest(r, "GET", "/stocks?sort_by=market_cap", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on oversized page_size", func(t *testing.T) {
		handler := NewStockHandler(&mockStockService{})
		r := setupStockRouter(handler)

		rec := doRequest(r, "GET", "/stocks?page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestStockHandler_CreateStock(t *testing.T) {
	t.Run("returns 201 and converts money fields", func(t *testing.T) {
		var captured services.StockInput
		stockSvc := &mockStockService{
			createStockFn: func(input services.StockInput) (*models.Stock, error) {
				captured = input
				return &models.Stock{
					Base:        models.Base{ID: 1},
					Symbol:      input.Symbol,
					CompanyName: input.CompanyName,
					Purchase:    input.Purchase,
					LastDiv:     input.LastDiv,
					Industry:    input.Industry,
					MarketCap:   input.MarketCap,
				}, nil
			},
		}
		handler := NewStockHandler(stockSvc)
		r := setupStockRouter(handler)

		rec := doRequest(r, "POST", "/stocks",
			`{"symbol":"AAPL","company_name":"Apple Inc","purchase":150.25,"last_div":1.5,"industry":"Technology","market_cap":2000000000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !captured.Purchase.Equal(decimal.NewFromFloat(150.25)) {
			t.Errorf("expected purchase 150.25, got %s", captured.Purchase)
		}
		result := parseJSON(t, rec)
		stock := result["stock"].(map[string]interface{})
		if stock["symbol"] != "AAPL" {
			t.Errorf("expected symbol AAPL, got %v", stock["symbol"])
		}
	})

	t.Run("returns 400 on non-ticker symbol", func(t *testing.T) {
		handler := NewStockHandler(&mockStockService{})
		r := setupStockRouter(handler)

		rec := doRequest(r, "POST", "/stocks",
			`{"symbol":"123$","company_name":"X Corp","purchase":1,"last_div":1,"market_cap":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestStockHandler_GetStock(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		stockSvc := &mockStockService{
			getStockByIDFn: func(id uint) (*models.Stock, error) {
				return nil, apperrors.ErrStockNotFound
			},
		}
		handler := NewStockHandler(stockSvc)
		r := setupStockRouter(handler)

		rec := doRequest(r, "GET", "/stocks/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "STOCK_NOT_FOUND")
	})

	t.Run("returns 400 on non-numeric id", func(t *testing.T) {
		handler := NewStockHandler(&mockStockService{})
		r := setupStockRouter(handler)

		rec := doRequest(r, "GET", "/stocks/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestStockHandler_DeleteStock(t *testing.T) {
	t.Run("returns 409 when referenced", func(t *testing.T) {
		stockSvc := &mockStockService{
			deleteStockFn: func(id uint) (*models.Stock, error) {
				return nil, apperrors.ErrStockInUse
			},
		}
		handler := NewStockHandler(stockSvc)
		r := setupStockRouter(handler)

		rec := doRequest(r, "DELETE", "/stocks/1", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "STOCK_IN_USE")
	})

	t.Run("returns the deleted record", func(t *testing.T) {
		stockSvc := &mockStockService{
			deleteStockFn: func(id uint) (*models.Stock, error) {
				return &models.Stock{Base: models.Base{ID: id}, Symbol: "AAPL"}, nil
			},
		}
		handler := NewStockHandler(stockSvc)
		r := setupStockRouter(handler)

		rec := doRequest(r, "DELETE", "/stocks/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		stock := result["stock"].(map[string]interface{})
		if stock["symbol"] != "AAPL" {
			t.Errorf("expected deleted stock returned, got %v", stock)
		}
	})
}
