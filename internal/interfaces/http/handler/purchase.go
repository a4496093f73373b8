package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"transaction-risk-engine/internal/application/dto"
	apppurchase "transaction-risk-engine/internal/application/purchase"
	"transaction-risk-engine/internal/domain/purchase"
)

// PurchaseHandler serves the purchase processing endpoints.
type PurchaseHandler struct {
	processor *apppurchase.ProcessPurchaseUseCase
	logger    *zap.Logger
}

func NewPurchaseHandler(processor *apppurchase.ProcessPurchaseUseCase, logger *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{processor: processor, logger: logger}
}

// CreatePurchase processes a purchase and returns it with its verdict.
func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.processor.Execute(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("purchase processing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to process purchase")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// GetPurchase returns a processed purchase by id.
func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}

	p, err := h.processor.GetPurchase(r.Context(), id)
	if err != nil {
		if errors.Is(err, purchase.ErrPurchaseNotFound) {
			writeError(w, http.StatusNotFound, "purchase not found")
			return
		}
		h.logger.Error("purchase lookup failed", zap.Int64("purchase_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load purchase")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func isValidationError(err error) bool {
	return errors.Is(err, purchase.ErrMissingUserID) ||
		errors.Is(err, purchase.ErrNegativeAmount) ||
		errors.Is(err, purchase.ErrMissingMerchant) ||
		errors.Is(err, purchase.ErrMissingTimestamp)
}
