package handler

import (
	"context"
	"net/http"
	"time"

	"transaction-risk-engine/internal/domain/risk"
)

// HealthChecker is anything with a pingable connection.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes. Dependency checkers
// may be nil when the corresponding backend is not configured.
type HealthHandler struct {
	engine   *risk.DecisionEngine
	redis    HealthChecker
	database HealthChecker
}

func NewHealthHandler(engine *risk.DecisionEngine, redis, database HealthChecker) *HealthHandler {
	return &HealthHandler{engine: engine, redis: redis, database: database}
}

// Health reports overall health with per-dependency status.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := map[string]string{
		"engine": "ready",
	}

	if !h.engine.Ready() {
		deps["engine"] = "not ready"
		status = http.StatusServiceUnavailable
	}
	deps["redis"] = h.check(ctx, h.redis)
	deps["database"] = h.check(ctx, h.database)

	writeJSON(w, status, map[string]any{
		"status":       statusWord(status),
		"dependencies": deps,
	})
}

// Ready reports whether the service can take decision traffic. The engine
// must be trained; storage backends are allowed to be degraded.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.engine.Ready() {
		writeError(w, http.StatusServiceUnavailable, "decision engine is not ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Live is the liveness probe.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (h *HealthHandler) check(ctx context.Context, dep HealthChecker) string {
	if dep == nil {
		return "disabled"
	}
	if err := dep.Ping(ctx); err != nil {
		return "unreachable"
	}
	return "up"
}

func statusWord(status int) string {
	if status == http.StatusOK {
		return "healthy"
	}
	return "degraded"
}
