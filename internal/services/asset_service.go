package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "gemtrade/internal/errors"
	"gemtrade/internal/models"
	"gemtrade/internal/pagination"
	"gemtrade/internal/store"
)

// assetService handles asset administration.
type assetService struct {
	store store.Store
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(s store.Store) AssetServicer {
	return &assetService{store: s}
}

func (s *assetService) CreateAsset(ctx context.Context, name string, price decimal.Decimal) (*models.Asset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset name is required")
	}
	if price.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price cannot be negative")
	}
	if err := checkScale(price, "Price"); err != nil {
		return nil, err
	}

	asset := &models.Asset{Name: name, Price: price}
	if err := s.store.CreateAsset(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *assetService) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	return s.store.GetAsset(ctx, id)
}

func (s *assetService) ListAssets(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error) {
	page.Defaults()

	assets, total, err := s.store.ListAssets(ctx, page)
	if err != nil {
		return nil, err
	}
	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, total)
	return &result, nil
}

// UpdateAsset applies the non-nil fields.
func (s *assetService) UpdateAsset(ctx context.Context, id string, name *string, price *decimal.Decimal) (*models.Asset, error) {
	asset, err := s.store.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset name is required")
		}
		asset.Name = trimmed
	}
	if price != nil {
		if price.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price cannot be negative")
		}
		if err := checkScale(*price, "Price"); err != nil {
			return nil, err
		}
		asset.Price = *price
	}

	if err := s.store.SaveAsset(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// DeleteAsset removes an asset that no portfolio holds.
func (s *assetService) DeleteAsset(ctx context.Context, id string) error {
	return s.store.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.store.GetAsset(ctx, id); err != nil {
			return err
		}
		held, err := s.store.CountHoldingsForAsset(ctx, id)
		if err != nil {
			return err
		}
		if held > 0 {
			return apperrors.ErrAssetInUse
		}
		return s.store.DeleteAsset(ctx, id)
	})
}
