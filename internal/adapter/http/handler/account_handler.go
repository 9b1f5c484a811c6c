package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/banking/internal/adapter/http/dto"
	"github.com/iho/banking/internal/domain"
	"github.com/iho/banking/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	Deposit(ctx context.Context, amount decimal.Decimal) (*usecase.OperationResult, error)
	Withdraw(ctx context.Context, amount decimal.Decimal) (*usecase.OperationResult, error)
	Balance(ctx context.Context) (decimal.Decimal, error)
	Statement(ctx context.Context) (*domain.Statement, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) (*usecase.TransactionPage, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Deposit credits the account.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.operate(w, r, "failed to deposit", h.accountUC.Deposit)
}

// Withdraw debits the account.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.operate(w, r, "failed to withdraw", h.accountUC.Withdraw)
}

func (h *AccountHandler) operate(
	w http.ResponseWriter,
	r *http.Request,
	failure string,
	op func(context.Context, decimal.Decimal) (*usecase.OperationResult, error),
) {
	var req dto.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := op(r.Context(), req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), failure, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.OperationFromUseCase(result))
}

// Balance returns the current balance.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.accountUC.Balance(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// Statement returns a freshly built statement.
func (h *AccountHandler) Statement(w http.ResponseWriter, r *http.Request) {
	st, err := h.accountUC.Statement(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(st))
}

// ListTransactions lists the transaction log.
// The use case clamps limit and offset; the response echoes what it applied.
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	page, err := h.accountUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		Limit:  parseIntQuery(r, "limit", 0),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(page.Transactions),
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
}
