package handler

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/efranca/tradecore/internal/engine"
	"github.com/efranca/tradecore/internal/service"
)

// QuotationHandler handles HTTP requests for market depth and trade history.
type QuotationHandler struct {
	quoteSvc *service.QuotationService
}

// NewQuotationHandler creates a new QuotationHandler.
func NewQuotationHandler(quoteSvc *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quoteSvc: quoteSvc}
}

type priceLevelResponse struct {
	Price      decimal.Decimal `json:"price"`
	Amount     decimal.Decimal `json:"amount"`
	OrderCount int             `json:"orderCount"`
}

type depthResponse struct {
	Pair string               `json:"pair"`
	Bids []priceLevelResponse `json:"bids"`
	Asks []priceLevelResponse `json:"asks"`
}

type tradeHistoryResponse struct {
	TradeID    string          `json:"tradeId"`
	Price      decimal.Decimal `json:"price"`
	Amount     decimal.Decimal `json:"amount"`
	Seq        uint64          `json:"seq"`
	ExecutedAt string          `json:"executedAt"`
}

// Depth handles GET /api/quotation/depth?pair=&limit=.
func (h *QuotationHandler) Depth(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)
	depth, err := h.quoteSvc.Depth(r.URL.Query().Get("pair"), limit)
	if err != nil {
		mapError(w, err)
		return
	}
	WriteData(w, http.StatusOK, depthResponse{
		Pair: depth.Pair.ID,
		Bids: buildLevels(depth.Bids),
		Asks: buildLevels(depth.Asks),
	})
}

// History handles GET /api/trade/history?pair=&limit=.
func (h *QuotationHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)
	trades, err := h.quoteSvc.History(r.URL.Query().Get("pair"), limit)
	if err != nil {
		mapError(w, err)
		return
	}
	result := make([]tradeHistoryResponse, len(trades))
	for i, t := range trades {
		result[i] = tradeHistoryResponse{
			TradeID:    t.TradeID,
			Price:      t.Price,
			Amount:     t.Amount,
			Seq:        t.Seq,
			ExecutedAt: t.ExecutedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	WriteData(w, http.StatusOK, result)
}

func buildLevels(levels []engine.PriceLevel) []priceLevelResponse {
	result := make([]priceLevelResponse, len(levels))
	for i, l := range levels {
		result[i] = priceLevelResponse{
			Price:      l.Price,
			Amount:     l.TotalAmount,
			OrderCount: l.OrderCount,
		}
	}
	return result
}

func parseLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return limit
}
