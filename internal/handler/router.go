package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/efranca/tradecore/internal/service"
)

// NewRouter creates a chi router with all routes registered, request
// logging, and the account-auth boundary on the /api subtree.
func NewRouter(
	assetSvc *service.AssetService,
	orderSvc *service.OrderService,
	quoteSvc *service.QuotationService,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	r.Use(requestLogging(logger))

	assetH := NewAssetHandler(assetSvc)
	orderH := NewOrderHandler(orderSvc)
	quoteH := NewQuotationHandler(quoteSvc)

	// Health check, outside the auth boundary.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(requireAccount)

		// Asset routes.
		r.Get("/asset/get", assetH.GetBalance)
		r.Get("/asset/recharge", assetH.Recharge)

		// Trade routes.
		r.Get("/trade/buy", orderH.Buy)
		r.Get("/trade/sell", orderH.Sell)
		r.Get("/trade/history", quoteH.History)

		// Order routes.
		r.Get("/order/get", orderH.GetOrder)
		r.Get("/order/cancel", orderH.CancelOrder)
		r.Get("/order/list", orderH.ListOrders)

		// Quotation routes.
		r.Get("/quotation/depth", quoteH.Depth)
	})

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
