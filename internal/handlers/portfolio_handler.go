package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gemtrade/internal/services"
)

// PortfolioHandler handles portfolio and holding reads.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
	currency         string
}

// NewPortfolioHandler creates a new PortfolioHandler. currency is used for
// display strings only.
func NewPortfolioHandler(portfolioService services.PortfolioServicer, currency string) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, currency: currency}
}

// CreatePortfolioRequest represents the request payload for opening a portfolio.
type CreatePortfolioRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// ValueResponse is the mark-to-market value of a portfolio.
type ValueResponse struct {
	UserID  string `json:"user_id"`
	Value   string `json:"value"`
	Display string `json:"display"`
}

// CreatePortfolio handles opening a user's portfolio.
// @Summary     Create portfolio
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Param       request body CreatePortfolioRequest true "Owner"
// @Success     201 {object} models.Portfolio "Portfolio created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     409 {object} ErrorResponse "Portfolio already exists"
// @Router      /portfolios [post]
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(c.Request.Context(), req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"portfolio": portfolio})
}

// GetPortfolio handles retrieving a portfolio with its holdings.
// @Summary     Get portfolio
// @Tags        portfolios
// @Produce     json
// @Param       user_id path string true "User ID"
// @Success     200 {object} models.Portfolio "Portfolio"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{user_id} [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// ListHoldings handles listing a portfolio's holdings.
// @Summary     List holdings
// @Tags        portfolios
// @Produce     json
// @Param       user_id path string true "User ID"
// @Success     200 {object} map[string][]models.Holding "Holdings"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{user_id}/holdings [get]
func (h *PortfolioHandler) ListHoldings(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdings, err := h.portfolioService.ListHoldings(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holdings": holdings})
}

// GetHolding handles retrieving a single holding.
// @Summary     Get holding
// @Tags        portfolios
// @Produce     json
// @Param       user_id  path string true "User ID"
// @Param       asset_id path string true "Asset ID"
// @Success     200 {object} models.Holding "Holding"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Router      /portfolios/{user_id}/holdings/{asset_id} [get]
func (h *PortfolioHandler) GetHolding(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	assetID, err := parsePathID(c, "asset_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	holding, err := h.portfolioService.GetHolding(c.Request.Context(), userID, assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// GetValue handles valuing a portfolio at current prices.
// @Summary     Portfolio value
// @Tags        portfolios
// @Produce     json
// @Param       user_id path string true "User ID"
// @Success     200 {object} ValueResponse "Value"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /portfolios/{user_id}/value [get]
func (h *PortfolioHandler) GetValue(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	value, err := h.portfolioService.Value(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ValueResponse{
		UserID:  userID,
		Value:   value.String(),
		Display: formatAmount(value, h.currency),
	})
}
