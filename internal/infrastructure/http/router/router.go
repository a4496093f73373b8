package router

import (
	"net/http"

	"transaction-risk-engine/internal/interfaces/http/handler"
	"transaction-risk-engine/internal/pkg/metrics"
)

// Router is the service's HTTP surface. It wraps a ServeMux so cross-cutting
// response headers are applied in one place.
type Router struct {
	mux *http.ServeMux
}

// New registers all routes.
func New(
	purchases *handler.PurchaseHandler,
	risks *handler.RiskHandler,
	health *handler.HealthHandler,
) *Router {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/purchases", purchases.CreatePurchase)
	mux.HandleFunc("GET /api/v1/purchases/{id}", purchases.GetPurchase)

	mux.HandleFunc("POST /api/v1/risk/analyze", risks.AnalyzePurchase)
	mux.HandleFunc("POST /api/v1/risk/analyze/batch", risks.BatchAnalyze)
	mux.HandleFunc("GET /api/v1/risk/verdicts/{id}", risks.GetVerdict)
	mux.HandleFunc("GET /api/v1/users/{id}/verdicts", risks.ListUserVerdicts)

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /live", health.Live)
	mux.Handle("GET /metrics", metrics.Handler())

	return &Router{mux: mux}
}

// ServeHTTP applies CORS headers and dispatches to the mux.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	rt.mux.ServeHTTP(w, r)
}
