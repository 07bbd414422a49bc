package handler

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/efranca/tradecore/internal/domain"
	"github.com/efranca/tradecore/internal/service"
)

// OrderHandler handles HTTP requests for order placement and lifecycle
// queries.
type OrderHandler struct {
	orderSvc *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// orderResponse is the JSON body for a single order. finishedAmount mirrors
// the order's cumulative fill.
type orderResponse struct {
	ID             string          `json:"id"`
	Pair           string          `json:"pair"`
	Side           string          `json:"side"`
	Price          decimal.Decimal `json:"price"`
	Amount         decimal.Decimal `json:"amount"`
	FinishedAmount decimal.Decimal `json:"finishedAmount"`
	Status         string          `json:"status"`
	CreatedAt      string          `json:"createdAt"`
}

// Buy handles GET /api/trade/buy?price=&amount=[&pair=].
func (h *OrderHandler) Buy(w http.ResponseWriter, r *http.Request) {
	h.place(w, r, domain.SideBuy)
}

// Sell handles GET /api/trade/sell?price=&amount=[&pair=].
func (h *OrderHandler) Sell(w http.ResponseWriter, r *http.Request) {
	h.place(w, r, domain.SideSell)
}

// place runs a placement synchronously: the response already reflects every
// fill from the sweep.
func (h *OrderHandler) place(w http.ResponseWriter, r *http.Request, side domain.Side) {
	price, err := decimal.NewFromString(r.URL.Query().Get("price"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "price must be a decimal number")
		return
	}
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "amount must be a decimal number")
		return
	}

	order, _, err := h.orderSvc.PlaceOrder(service.PlaceOrderRequest{
		AccountID: accountID(r),
		PairID:    r.URL.Query().Get("pair"),
		Side:      side,
		Price:     price,
		Amount:    amount,
	})
	if err != nil {
		mapError(w, err)
		return
	}
	WriteData(w, http.StatusOK, buildOrderResponse(order))
}

// GetOrder handles GET /api/order/get?order_id=.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("order_id")
	if orderID == "" {
		WriteError(w, http.StatusBadRequest, "validation_error", "order_id is required")
		return
	}

	order, err := h.orderSvc.GetOrder(accountID(r), orderID)
	if err != nil {
		mapError(w, err)
		return
	}
	WriteData(w, http.StatusOK, buildOrderResponse(order))
}

// CancelOrder handles GET /api/order/cancel?order_id=.
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("order_id")
	if orderID == "" {
		WriteError(w, http.StatusBadRequest, "validation_error", "order_id is required")
		return
	}

	order, err := h.orderSvc.CancelOrder(accountID(r), orderID)
	if err != nil {
		mapError(w, err)
		return
	}
	WriteData(w, http.StatusOK, buildOrderResponse(order))
}

// ListOrders handles GET /api/order/list[?status=].
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var status *domain.OrderStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.OrderStatus(s)
		switch st {
		case domain.OrderStatusOpen, domain.OrderStatusPartiallyFilled,
			domain.OrderStatusFilled, domain.OrderStatusCancelled:
			status = &st
		default:
			WriteError(w, http.StatusBadRequest, "validation_error", "unknown status")
			return
		}
	}

	orders := h.orderSvc.ListOrders(accountID(r), status)
	result := make([]orderResponse, len(orders))
	for i, o := range orders {
		result[i] = buildOrderResponse(o)
	}
	WriteData(w, http.StatusOK, result)
}

func buildOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:             o.OrderID,
		Pair:           o.Pair.ID,
		Side:           string(o.Side),
		Price:          o.Price,
		Amount:         o.Amount,
		FinishedAmount: o.FilledAmount,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// mapError maps domain errors to HTTP responses.
func mapError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidAsset):
		WriteError(w, http.StatusBadRequest, "invalid_asset", err.Error())
	case errors.Is(err, domain.ErrInvalidPair):
		WriteError(w, http.StatusBadRequest, "invalid_pair", err.Error())
	case errors.Is(err, domain.ErrInsufficientBalance):
		WriteError(w, http.StatusConflict, "insufficient_balance", err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		WriteError(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, domain.ErrOrderNotCancellable):
		WriteError(w, http.StatusConflict, "order_not_cancellable", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
