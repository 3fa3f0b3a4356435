package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gemtrade/internal/pagination"
	"gemtrade/internal/services"
)

// AssetHandler handles asset administration requests.
type AssetHandler struct {
	assetService services.AssetServicer
	auditService services.AuditServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer, auditService services.AuditServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService, auditService: auditService}
}

// CreateAssetRequest represents the request payload for creating an asset.
type CreateAssetRequest struct {
	Name  string          `json:"name" binding:"required,min=1,max=200"`
	Price decimal.Decimal `json:"price" binding:"gte=0" swaggertype:"string" example:"50.00"`
}

// UpdateAssetRequest represents a partial asset update.
type UpdateAssetRequest struct {
	Name  *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Price *decimal.Decimal `json:"price" binding:"omitempty,gte=0" swaggertype:"string"`
}

// CreateAsset handles asset creation.
// @Summary     Create asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} models.Asset "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate asset"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), req.Name, req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), auditEntry(c, "", "CREATE_ASSET", "asset", asset.ID,
		map[string]any{"name": asset.Name, "price": asset.Price.String()}))

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// GetAsset handles retrieving an asset.
// @Summary     Get asset
// @Tags        assets
// @Produce     json
// @Param       id path string true "Asset ID"
// @Success     200 {object} models.Asset "Asset"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAsset(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// ListAssets handles listing assets.
// @Summary     List assets
// @Tags        assets
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Asset] "Paginated assets"
// @Router      /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.assetService.ListAssets(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateAsset handles renaming or repricing an asset.
// @Summary     Update asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       id      path string             true "Asset ID"
// @Param       request body UpdateAssetRequest true "Fields to change"
// @Success     200 {object} models.Asset "Updated asset"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     409 {object} ErrorResponse "Duplicate asset"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), id, req.Name, req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), auditEntry(c, "", "UPDATE_ASSET", "asset", asset.ID,
		map[string]any{"name": asset.Name, "price": asset.Price.String()}))

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset handles removing an asset no portfolio holds.
// @Summary     Delete asset
// @Tags        assets
// @Produce     json
// @Param       id path string true "Asset ID"
// @Success     200 {object} map[string]string "Asset deleted"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     409 {object} ErrorResponse "Asset in use"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteAsset(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), auditEntry(c, "", "DELETE_ASSET", "asset", id, nil))

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}
