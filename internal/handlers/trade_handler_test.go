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
	"gemtrade/internal/services"
)

func setupTradeRouter(handler *TradeHandler) *gin.Engine {
	r := gin.New()
	r.POST("/trades/:user_id/buy", handler.Buy)
	r.POST("/trades/:user_id/sell", handler.Sell)
	r.GET("/users/:id/trades", handler.ListTrades)
	return r
}

func settled(side models.TradeSide, qty int64, price, total string) *services.TradeResult {
	return &services.TradeResult{
		Trade: &models.Trade{
			UserID:    testUserID,
			AssetID:   testAssetID,
			AssetName: "Gold",
			Side:      side,
			Quantity:  qty,
			Price:     decimal.RequireFromString(price),
			Total:     decimal.RequireFromString(total),
		},
		Holding: &models.Holding{AssetID: testAssetID, Name: "Gold", Quantity: qty},
		User:    &models.User{Base: models.Base{ID: testUserID}},
	}
}

func TestTradeHandler_Buy(t *testing.T) {
	t.Run("returns 200 with confirmation", func(t *testing.T) {
		svc := &mockTradeService{
			executeBuyFn: func(_ context.Context, userID, assetID string, qty int64, price *decimal.Decimal) (*services.TradeResult, error) {
				if userID != testUserID || assetID != testAssetID || qty != 10 || price != nil {
					t.Errorf("unexpected args %s %s %d %v", userID, assetID, qty, price)
				}
				return settled(models.TradeSideBuy, 10, "50", "500"), nil
			},
		}
		r := setupTradeRouter(NewTradeHandler(svc, "USD"))
		rec := doRequest(r, http.MethodPost, "/trades/"+testUserID+"/buy",
			`{"asset_id":"`+testAssetID+`","quantity":10}`)
		assertStatus(t, rec, http.StatusOK)

		body := parseJSON(t, rec)
		want := "Successfully purchased 10 units of 'Gold' at $50.00 per unit, for a total value of $500.00."
		if body["message"] != want {
			t.Errorf("expected message %q, got %q", want, body["message"])
		}
		for _, key := range []string{"trade", "holding", "user"} {
			if _, ok := body[key]; !ok {
				t.Errorf("expected %q in response", key)
			}
		}
	})

	t.Run("passes explicit price", func(t *testing.T) {
		svc := &mockTradeService{
			executeBuyFn: func(_ context.Context, _, _ string, qty int64, price *decimal.Decimal) (*services.TradeResult, error) {
				if price == nil || !price.Equal(decimal.RequireFromString("12.5")) {
					t.Errorf("expected price 12.5, got %v", price)
				}
				return settled(models.TradeSideBuy, qty, "12.5", "25"), nil
			},
		}
		r := setupTradeRouter(NewTradeHandler(svc, "USD"))
		rec := doRequest(r, http.MethodPost, "/trades/"+testUserID+"/buy",
			`{"asset_id":"`+testAssetID+`","quantity":2,"price":"12.5"}`)
		assertStatus(t, rec, http.StatusOK)
	})

	t.Run("returns 400 for zero quantity", func(t *testing.T) {
		r := setupTradeRouter(NewTradeHandler(&mockTradeService{}, "USD"))
		rec := doRequest(r, http.MethodPost, "/trades/"+testUserID+"/buy",
			`{"asset_id":"`+testAssetID+`","quantity":0}`)
		assertStatus(t, rec, http.StatusBadRequest)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 for negative price", func(t *testing.T) {
		r := setupTradeRouter(NewTradeHandler(&mockTradeService{}, "USD"))
		rec := doRequest(r, http.MethodPost, "/trades/"+testUserID+"/buy",
			`{"asset_id":"`+testAssetID+`","quantity":1,"price":"-5"}`)
		assertStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("returns 422 on insufficient funds", func(t *testing.T) {
		svc := &mockTradeService{
			executeBuyFn: func(context.Context, string, string, int64, *decimal.Decimal) (*services.TradeResult, error) {
				return nil, apperrors.ErrInsufficientFunds
			},
		}
		r := setupTradeRouter(NewTradeHandler(svc, "USD"))
		rec := doRequest(r, http.MethodPost, "/trades/"+testUserID+"/buy",
			`{"asset_id":"`+testAssetID+`","quantity":1}`)
		assertStatus(t, rec, http.StatusUnprocessableEntity)
		assertErrorCode(t, parseJSON(t, rec), "INSUFFICIENT_FUNDS")
	})

	t.Run("returns 503 with retry hint on transient failure", func(t *testing.T) {
		svc := &mockTradeService{
			executeBuyFn: func(context.Context, string, string, int64, *decimal.Decimal) (*services.TradeResult, error) {
				return nil, apperrors.ErrTransientStore
			},
		}
		r := setupTradeRouter(NewTradeHandler(svc, "USD"))
		rec := doRequest(r, http.MethodPost, "/trades/"+testUserID+"/buy",
			`{"asset_id":"`+testAssetID+`","quantity":1}`)
		assertStatus(t, rec, http.StatusServiceUnavailable)
		if rec.Header().Get("Retry-After") == "" {
			t.Error("expected Retry-After header")
		}
	})
}

func TestTradeHandler_Sell(t *testing.T) {
	t.Run("returns 200 with confirmation", func(t *testing.T) {
		svc := &mockTradeService{
			executeSellFn: func(_ context.Context, _, _ string, qty int64) (*services.TradeResult, error) {
				return settled(models.TradeSideSell, qty, "60", "240"), nil
			},
		}
		r := setupTradeRouter(NewTradeHandler(svc, "USD"))
		rec := doRequest(r, http.MethodPost, "/trades/"+testUserID+"/sell",
			`{"asset_id":"`+testAssetID+`","quantity":4}`)
		assertStatus(t, rec, http.StatusOK)

		want := "Successfully sold 4 units of 'Gold' at $60.00 per unit, for a total value of $240.00."
		if msg := parseJSON(t, rec)["message"]; msg != want {
			t.Errorf("expected message %q, got %q", want, msg)
		}
	})

	t.Run("returns 422 on oversell", func(t *testing.T) {
		svc := &mockTradeService{
			executeSellFn: func(context.Context, string, string, int64) (*services.TradeResult, error) {
				return nil, apperrors.ErrInsufficientQuantity
			},
		}
		r := setupTradeRouter(NewTradeHandler(svc, "USD"))
		rec := doRequest(r, http.MethodPost, "/trades/"+testUserID+"/sell",
			`{"asset_id":"`+testAssetID+`","quantity":4}`)
		assertStatus(t, rec, http.StatusUnprocessableEntity)
		assertErrorCode(t, parseJSON(t, rec), "INSUFFICIENT_QUANTITY")
	})

	t.Run("returns 400 for bad user id", func(t *testing.T) {
		r := setupTradeRouter(NewTradeHandler(&mockTradeService{}, "USD"))
		rec := doRequest(r, http.MethodPost, "/trades/bob/sell",
			`{"asset_id":"`+testAssetID+`","quantity":4}`)
		assertStatus(t, rec, http.StatusBadRequest)
	})
}

func TestTradeHandler_ListTrades(t *testing.T) {
	svc := &mockTradeService{
		listTradesFn: func(_ context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
			if userID != testUserID {
				t.Errorf("expected user %s, got %s", testUserID, userID)
			}
			resp := pagination.NewPageResponse([]models.Trade{{AssetName: "Gold"}}, 1, 20, 1)
			return &resp, nil
		},
	}
	r := setupTradeRouter(NewTradeHandler(svc, "USD"))
	rec := doRequest(r, http.MethodGet, "/users/"+testUserID+"/trades", "")
	assertStatus(t, rec, http.StatusOK)

	body := parseJSON(t, rec)
	if body["total_items"].(float64) != 1 {
		t.Errorf("expected 1 trade, got %v", body["total_items"])
	}
}
