package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gemtrade/internal/models"
	"gemtrade/internal/pagination"
	"gemtrade/internal/services"
)

// UserHandler handles user and wallet requests.
type UserHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer, auditService services.AuditServicer) *UserHandler {
	return &UserHandler{userService: userService, auditService: auditService}
}

// CreateUserRequest represents the request payload for creating a user.
type CreateUserRequest struct {
	Username       string          `json:"username" binding:"required,username"`
	OpeningBalance decimal.Decimal `json:"opening_balance" binding:"gte=0" swaggertype:"string" example:"1000.00"`
}

// AmountRequest represents a deposit or withdrawal.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"gt=0" swaggertype:"string" example:"250.00"`
}

// CreateUser handles user creation.
// @Summary     Create user
// @Description Create a trader with an optional opening balance
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body CreateUserRequest true "User details"
// @Success     201 {object} models.User "User created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate username"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Username, req.OpeningBalance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GetUser handles retrieving a user.
// @Summary     Get user
// @Description Get a trader's wallet, gem count and rank
// @Tags        users
// @Produce     json
// @Param       id path string true "User ID"
// @Success     200 {object} models.User "User"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListUsers handles listing users.
// @Summary     List users
// @Tags        users
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.User] "Paginated users"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.userService.ListUsers(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Deposit handles crediting cash to a wallet.
// @Summary     Deposit
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id      path string        true "User ID"
// @Param       request body AmountRequest true "Amount"
// @Success     200 {object} models.User "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id}/deposit [post]
func (h *UserHandler) Deposit(c *gin.Context) {
	h.moveFunds(c, "DEPOSIT", h.userService.Deposit)
}

// Withdraw handles debiting cash from a wallet.
// @Summary     Withdraw
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id      path string        true "User ID"
// @Param       request body AmountRequest true "Amount"
// @Success     200 {object} models.User "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     422 {object} ErrorResponse "Insufficient funds"
// @Router      /users/{id}/withdraw [post]
func (h *UserHandler) Withdraw(c *gin.Context) {
	h.moveFunds(c, "WITHDRAW", h.userService.Withdraw)
}

func (h *UserHandler) moveFunds(c *gin.Context, action string, fn func(context.Context, string, decimal.Decimal) (*models.User, error)) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := fn(c.Request.Context(), id, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), auditEntry(c, id, action, "user", id,
		map[string]any{"amount": req.Amount.String(), "balance": user.Balance.String()}))

	c.JSON(http.StatusOK, gin.H{"user": user})
}
