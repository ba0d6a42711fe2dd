package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/services"
)

// PortfolioHandler handles portfolio requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// AddPortfolioRequest represents the payload for adding a stock to the portfolio.
type AddPortfolioRequest struct {
	Symbol string `json:"symbol" binding:"required,ticker"`
}

// GetUserPortfolio handles retrieving the caller's holdings.
// @Summary     Get portfolio
// @Description Get the authenticated user's holdings as full stock records
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]models.Stock "User's stocks"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetUserPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stocks, err := h.portfolioService.GetUserPortfolio(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": stocks})
}

// AddToPortfolio handles adding a stock, by symbol, to the caller's holdings.
// @Summary     Add to portfolio
// @Description Add a stock to the authenticated user's portfolio by symbol
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddPortfolioRequest true "Stock symbol"
// @Success     201 {object} models.Portfolio "Holding created"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Failure     409 {object} ErrorResponse "Stock already held"
// @Router      /portfolio [post]
func (h *PortfolioHandler) AddToPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.portfolioService.AddToPortfolio(userID, req.Symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"holding": holding})
}
