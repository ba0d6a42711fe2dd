package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/services"
)

// StockHandler handles stock catalog requests.
type StockHandler struct {
	stockService services.StockServicer
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService services.StockServicer) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// StockRequest represents the request payload for creating or updating a stock.
type StockRequest struct {
	Symbol      string  `json:"symbol" binding:"required,ticker"`
	CompanyName string  `json:"company_name" binding:"required,max=200"`
	Purchase    float64 `json:"purchase" binding:"required,gt=0,lte=1000000000"`
	LastDiv     float64 `json:"last_div" binding:"required,gte=0.01,lte=100"`
	Industry    string  `json:"industry" binding:"max=20"`
	MarketCap   int64   `json:"market_cap" binding:"required,gte=1,lte=5000000000"`
}

func (r StockRequest) toInput() services.StockInput {
	return services.StockInput{
		Symbol:      r.Symbol,
		CompanyName: r.CompanyName,
		Purchase:    decimal.NewFromFloat(r.Purchase),
		LastDiv:     decimal.NewFromFloat(r.LastDiv),
		Industry:    r.Industry,
		MarketCap:   r.MarketCap,
	}
}

// ListStocks handles listing the catalog with filter, sort, and page parameters.
// @Summary     List stocks
// @Description Get a paginated list of stocks, filtered and sorted
// @Tags        stocks
// @Produce     json
// @Security    BearerAuth
// @Param       symbol       query string false "Substring filter on symbol (case-insensitive)"
// @Param       company_name query string false "Substring filter on company name (case-insensitive)"
// @Param       sort_by      query string false "Sort field: symbol or company_name"
// @Param       descending   query bool   false "Reverse the sort order"
// @Param       page         query int    false "Page number (default 1)"
// @Param       page_size    query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Stock] "Paginated stocks"
// @Failure     400 {object} ErrorResponse "Invalid query"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /stocks [get]
func (h *StockHandler) ListStocks(c *gin.Context) {
	var query services.StockQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.stockService.ListStocks(query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStock handles retrieving a specific stock.
// @Summary     Get stock by ID
// @Description Get a specific stock with its comments
// @Tags        stocks
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Stock ID"
// @Success     200 {object} models.Stock "Stock details"
// @Failure     400 {object} ErrorResponse "Invalid stock ID"
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Router      /stocks/{id} [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	stock, err := h.stockService.GetStockByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

// CreateStock handles creating a new catalog entry.
// @Summary     Create stock
// @Description Add a stock to the catalog
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body StockRequest true "Stock details"
// @Success     201 {object} models.Stock "Stock created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /stocks [post]
func (h *StockHandler) CreateStock(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	stock, err := h.stockService.CreateStock(req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"stock": stock})
}

// UpdateStock handles replacing all writable fields of a stock.
// @Summary     Update stock
// @Description Update a stock's fields
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int          true "Stock ID"
// @Param       request body StockRequest true "Stock details"
// @Success     200 {object} models.Stock "Stock updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Router      /stocks/{id} [put]
func (h *StockHandler) UpdateStock(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	stock, err := h.stockService.UpdateStock(id, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

// DeleteStock handles removing a stock and returns the deleted record.
// @Summary     Delete stock
// @Description Delete a stock that has no comments or holdings
// @Tags        stocks
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Stock ID"
// @Success     200 {object} models.Stock "Deleted stock"
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Failure     409 {object} ErrorResponse "Stock still referenced"
// @Router      /stocks/{id} [delete]
func (h *StockHandler) DeleteStock(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	stock, err := h.stockService.DeleteStock(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock": stock})
}
