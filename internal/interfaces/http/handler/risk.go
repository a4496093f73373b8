package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"transaction-risk-engine/internal/application/dto"
	apprisk "transaction-risk-engine/internal/application/risk"
	"transaction-risk-engine/internal/domain/risk"
)

// maxBatchSize caps a single batch analysis request.
const maxBatchSize = 100

const (
	defaultVerdictPageSize = 20
	maxVerdictPageSize     = 100
)

// RiskHandler serves the standalone risk analysis endpoints.
type RiskHandler struct {
	analyzer *apprisk.AnalyzePurchaseUseCase
	logger   *zap.Logger
}

func NewRiskHandler(analyzer *apprisk.AnalyzePurchaseUseCase, logger *zap.Logger) *RiskHandler {
	return &RiskHandler{analyzer: analyzer, logger: logger}
}

// AnalyzePurchase runs a risk decision for a purchase without recording it.
func (h *RiskHandler) AnalyzePurchase(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	verdict, err := h.analyzer.Execute(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("risk analysis failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to analyze purchase")
		return
	}

	writeJSON(w, http.StatusOK, verdict)
}

// BatchAnalyze runs risk decisions for up to maxBatchSize purchases.
func (h *RiskHandler) BatchAnalyze(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Purchases) == 0 {
		writeError(w, http.StatusBadRequest, "batch is empty")
		return
	}
	if len(req.Purchases) > maxBatchSize {
		writeError(w, http.StatusBadRequest, "batch exceeds 100 purchases")
		return
	}

	resp, err := h.analyzer.ExecuteBatch(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("batch analysis failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to analyze batch")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetVerdict returns a stored verdict by id.
func (h *RiskHandler) GetVerdict(w http.ResponseWriter, r *http.Request) {
	if !h.analyzer.VerdictsEnabled() {
		writeError(w, http.StatusServiceUnavailable, "verdict storage is not configured")
		return
	}

	verdict, err := h.analyzer.GetVerdict(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, risk.ErrVerdictNotFound) {
			writeError(w, http.StatusNotFound, "verdict not found")
			return
		}
		h.logger.Error("verdict lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load verdict")
		return
	}

	writeJSON(w, http.StatusOK, verdict)
}

// ListUserVerdicts returns a page of a user's verdicts, newest first.
func (h *RiskHandler) ListUserVerdicts(w http.ResponseWriter, r *http.Request) {
	if !h.analyzer.VerdictsEnabled() {
		writeError(w, http.StatusServiceUnavailable, "verdict storage is not configured")
		return
	}

	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	limit := queryInt(r, "limit", defaultVerdictPageSize)
	if limit <= 0 || limit > maxVerdictPageSize {
		limit = defaultVerdictPageSize
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	verdicts, err := h.analyzer.ListUserVerdicts(r.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("verdict listing failed", zap.Int64("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list verdicts")
		return
	}

	writeJSON(w, http.StatusOK, verdicts)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
