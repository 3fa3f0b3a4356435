package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "gemtrade/internal/errors"
	"gemtrade/internal/models"
	"gemtrade/internal/pagination"
)

func setupUserRouter(handler *UserHandler) *gin.Engine {
	r := gin.New()
	r.POST("/users", handler.CreateUser)
	r.GET("/users", handler.ListUsers)
	r.GET("/users/:id", handler.GetUser)
	r.POST("/users/:id/deposit", handler.Deposit)
	r.POST("/users/:id/withdraw", handler.Withdraw)
	return r
}

func TestUserHandler_CreateUser(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockUserService{
			createUserFn: func(_ context.Context, username string, balance decimal.Decimal) (*models.User, error) {
				if !balance.Equal(decimal.RequireFromString("100.5")) {
					t.Errorf("expected opening balance 100.5, got %s", balance)
				}
				return &models.User{Base: models.Base{ID: testUserID}, Username: username, Balance: balance}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/users", `{"username":"alice","opening_balance":"100.5"}`)
		assertStatus(t, rec, http.StatusCreated)
		user := parseJSON(t, rec)["user"].(map[string]any)
		if user["username"] != "alice" || user["balance"] != "100.5" {
			t.Errorf("unexpected user %v", user)
		}
	})

	t.Run("accepts numeric balance", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}, &mockAuditService{}))
		rec := doRequest(r, http.MethodPost, "/users", `{"username":"alice","opening_balance":25}`)
		assertStatus(t, rec, http.StatusCreated)
	})

	t.Run("returns 400 for invalid username", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}, &mockAuditService{}))
		rec := doRequest(r, http.MethodPost, "/users", `{"username":"a b"}`)
		assertStatus(t, rec, http.StatusBadRequest)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 for negative balance", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}, &mockAuditService{}))
		rec := doRequest(r, http.MethodPost, "/users", `{"username":"alice","opening_balance":"-1"}`)
		assertStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("returns 409 on duplicate", func(t *testing.T) {
		svc := &mockUserService{
			createUserFn: func(context.Context, string, decimal.Decimal) (*models.User, error) {
				return nil, apperrors.ErrDuplicateUsername
			},
		}
		r := setupUserRouter(NewUserHandler(svc, &mockAuditService{}))
		rec := doRequest(r, http.MethodPost, "/users", `{"username":"alice"}`)
		assertStatus(t, rec, http.StatusConflict)
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_USERNAME")
	})
}

func TestUserHandler_GetUser(t *testing.T) {
	t.Run("returns 200", func(t *testing.T) {
		svc := &mockUserService{
			getUserFn: func(_ context.Context, id string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: id}, Username: "alice"}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc, &mockAuditService{}))
		rec := doRequest(r, http.MethodGet, "/users/"+testUserID, "")
		assertStatus(t, rec, http.StatusOK)
	})

	t.Run("returns 400 for malformed id", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}, &mockAuditService{}))
		rec := doRequest(r, http.MethodGet, "/users/42", "")
		assertStatus(t, rec, http.StatusBadRequest)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockUserService{
			getUserFn: func(context.Context, string) (*models.User, error) { return nil, apperrors.ErrUserNotFound },
		}
		r := setupUserRouter(NewUserHandler(svc, &mockAuditService{}))
		rec := doRequest(r, http.MethodGet, "/users/"+testUserID, "")
		assertStatus(t, rec, http.StatusNotFound)
		assertErrorCode(t, parseJSON(t, rec), "USER_NOT_FOUND")
	})
}

func TestUserHandler_ListUsers(t *testing.T) {
	t.Run("passes page request", func(t *testing.T) {
		svc := &mockUserService{
			listUsersFn: func(_ context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
				if page.Page != 2 || page.PageSize != 5 {
					t.Errorf("unexpected page %+v", page)
				}
				resp := pagination.NewPageResponse([]models.User{}, 2, 5, 0)
				return &resp, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc, &mockAuditService{}))
		rec := doRequest(r, http.MethodGet, "/users?page=2&page_size=5", "")
		assertStatus(t, rec, http.StatusOK)
	})

	t.Run("returns 400 for oversized page", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}, &mockAuditService{}))
		rec := doRequest(r, http.MethodGet, "/users?page_size=500", "")
		assertStatus(t, rec, http.StatusBadRequest)
	})
}

func TestUserHandler_Funds(t *testing.T) {
	t.Run("deposit audits and returns 200", func(t *testing.T) {
		audit := &mockAuditService{}
		svc := &mockUserService{
			depositFn: func(_ context.Context, id string, amount decimal.Decimal) (*models.User, error) {
				return &models.User{Base: models.Base{ID: id}, Balance: amount}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc, audit))
		rec := doRequest(r, http.MethodPost, "/users/"+testUserID+"/deposit", `{"amount":"20"}`)
		assertStatus(t, rec, http.StatusOK)
		if len(audit.actions) != 1 || audit.actions[0] != "DEPOSIT" {
			t.Errorf("expected DEPOSIT audit entry, got %v", audit.actions)
		}
	})

	t.Run("returns 400 for zero amount", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}, &mockAuditService{}))
		rec := doRequest(r, http.MethodPost, "/users/"+testUserID+"/deposit", `{"amount":"0"}`)
		assertStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("withdraw returns 422 on insufficient funds", func(t *testing.T) {
		audit := &mockAuditService{}
		svc := &mockUserService{
			withdrawFn: func(context.Context, string, decimal.Decimal) (*models.User, error) {
				return nil, apperrors.ErrInsufficientFunds
			},
		}
		r := setupUserRouter(NewUserHandler(svc, audit))
		rec := doRequest(r, http.MethodPost, "/users/"+testUserID+"/withdraw", `{"amount":"20"}`)
		assertStatus(t, rec, http.StatusUnprocessableEntity)
		assertErrorCode(t, parseJSON(t, rec), "INSUFFICIENT_FUNDS")
		if len(audit.actions) != 0 {
			t.Errorf("expected no audit entry on failure, got %v", audit.actions)
		}
	})
}
