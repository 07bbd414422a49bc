package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/efranca/tradecore/internal/domain"
	"github.com/efranca/tradecore/internal/service"
)

// AssetHandler handles HTTP requests for asset endpoints.
type AssetHandler struct {
	assetSvc *service.AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetSvc *service.AssetService) *AssetHandler {
	return &AssetHandler{assetSvc: assetSvc}
}

// balanceResponse is the JSON body for balance queries and recharges.
type balanceResponse struct {
	AssetType string          `json:"assetType"`
	Available decimal.Decimal `json:"available"`
	Locked    decimal.Decimal `json:"locked"`
}

// GetBalance handles GET /api/asset/get?type=.
func (h *AssetHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	assetType := r.URL.Query().Get("type")
	if assetType == "" {
		WriteError(w, http.StatusBadRequest, "validation_error", "type is required")
		return
	}

	b, err := h.assetSvc.GetBalance(accountID(r), domain.AssetType(assetType))
	if err != nil {
		mapError(w, err)
		return
	}
	WriteData(w, http.StatusOK, buildBalanceResponse(b))
}

// Recharge handles GET /api/asset/recharge?type=&amount=.
func (h *AssetHandler) Recharge(w http.ResponseWriter, r *http.Request) {
	assetType := r.URL.Query().Get("type")
	if assetType == "" {
		WriteError(w, http.StatusBadRequest, "validation_error", "type is required")
		return
	}
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "amount must be a decimal number")
		return
	}

	b, err := h.assetSvc.Recharge(accountID(r), domain.AssetType(assetType), amount)
	if err != nil {
		mapError(w, err)
		return
	}
	WriteData(w, http.StatusOK, buildBalanceResponse(b))
}

func buildBalanceResponse(b *service.AssetBalance) balanceResponse {
	return balanceResponse{
		AssetType: string(b.AssetType),
		Available: b.Available,
		Locked:    b.Locked,
	}
}
