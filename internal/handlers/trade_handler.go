package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gemtrade/internal/pagination"
	"gemtrade/internal/services"
)

// TradeHandler handles trade settlement requests.
type TradeHandler struct {
	tradeService services.TradeServicer
	currency     string
}

// NewTradeHandler creates a new TradeHandler. currency is used for the
// confirmation message only.
func NewTradeHandler(tradeService services.TradeServicer, currency string) *TradeHandler {
	return &TradeHandler{tradeService: tradeService, currency: currency}
}

// BuyRequest represents the request payload for a purchase.
type BuyRequest struct {
	AssetID  string           `json:"asset_id" binding:"required,uuid"`
	Quantity int64            `json:"quantity" binding:"required,gt=0"`
	Price    *decimal.Decimal `json:"price,omitempty" binding:"omitempty,gte=0" swaggertype:"string"`
}

// SellRequest represents the request payload for a sale.
type SellRequest struct {
	AssetID  string `json:"asset_id" binding:"required,uuid"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
}

// TradeResponse is returned for a settled trade.
type TradeResponse struct {
	Message string `json:"message"`
	*services.TradeResult
}

// Buy handles a purchase.
// @Summary     Buy
// @Description Debit the wallet and add to the holding atomically. Price defaults to the asset's current price.
// @Tags        trades
// @Accept      json
// @Produce     json
// @Param       user_id path string     true "User ID"
// @Param       request body BuyRequest true "Order"
// @Success     200 {object} TradeResponse "Trade settled"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User, asset or portfolio not found"
// @Failure     422 {object} ErrorResponse "Insufficient funds"
// @Failure     429 {object} ErrorResponse "Rate limited"
// @Failure     503 {object} ErrorResponse "Transient store failure"
// @Router      /trades/{user_id}/buy [post]
func (h *TradeHandler) Buy(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.tradeService.ExecuteBuy(c.Request.Context(), userID, req.AssetID, req.Quantity, req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}

	t := result.Trade
	c.JSON(http.StatusOK, TradeResponse{
		Message:     buyMessage(t.Quantity, t.AssetName, t.Price, t.Total, h.currency),
		TradeResult: result,
	})
}

// Sell handles a sale at the asset's current price.
// @Summary     Sell
// @Description Remove from the holding and credit the wallet atomically.
// @Tags        trades
// @Accept      json
// @Produce     json
// @Param       user_id path string      true "User ID"
// @Param       request body SellRequest true "Order"
// @Success     200 {object} TradeResponse "Trade settled"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     422 {object} ErrorResponse "Insufficient quantity"
// @Failure     429 {object} ErrorResponse "Rate limited"
// @Failure     503 {object} ErrorResponse "Transient store failure"
// @Router      /trades/{user_id}/sell [post]
func (h *TradeHandler) Sell(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.tradeService.ExecuteSell(c.Request.Context(), userID, req.AssetID, req.Quantity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	t := result.Trade
	c.JSON(http.StatusOK, TradeResponse{
		Message:     sellMessage(t.Quantity, t.AssetName, t.Price, t.Total, h.currency),
		TradeResult: result,
	})
}

// ListTrades handles listing a user's trade journal.
// @Summary     List trades
// @Tags        trades
// @Produce     json
// @Param       id        path  string true  "User ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Trade] "Paginated trades"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id}/trades [get]
func (h *TradeHandler) ListTrades(c *gin.Context) {
	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.tradeService.ListTrades(c.Request.Context(), userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
