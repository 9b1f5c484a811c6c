package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/iho/banking/internal/adapter/http/dto"
	"github.com/iho/banking/internal/usecase"
)

// Reconciler defines the behavior needed by ReconciliationHandler.
type Reconciler interface {
	Reconcile(ctx context.Context) (*usecase.ReconciliationResult, error)
}

// ReconciliationHandler checks the account's derived views against its log.
type ReconciliationHandler struct {
	reconciler Reconciler
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciler Reconciler) *ReconciliationHandler {
	return &ReconciliationHandler{reconciler: reconciler}
}

// CheckConsistency checks if the ledger is consistent.
func (h *ReconciliationHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	result, err := h.reconciler.Reconcile(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrInconsistentLedger) && result != nil {
			resp := dto.ReconciliationFromUseCase(result)
			resp.Message = err.Error()
			writeJSON(w, http.StatusConflict, resp)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(result))
}
