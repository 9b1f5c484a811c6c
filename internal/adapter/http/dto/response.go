package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/banking/internal/domain"
	"github.com/iho/banking/internal/usecase"
)

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID        string          `json:"id"`
	Kind      domain.Kind     `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		Kind:      t.Kind,
		Amount:    t.Amount,
		Timestamp: t.Timestamp,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []domain.Transaction) []TransactionResponse {
	result := make([]TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// OperationResponse is returned by deposit and withdrawal.
type OperationResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Balance     decimal.Decimal     `json:"balance"`
}

// OperationFromUseCase converts a use case result to a response.
func OperationFromUseCase(r *usecase.OperationResult) *OperationResponse {
	return &OperationResponse{
		Transaction: TransactionFromDomain(r.Transaction),
		Balance:     r.Balance,
	}
}

// BalanceResponse represents the current balance.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// StatementLineResponse represents one statement line.
type StatementLineResponse struct {
	Timestamp time.Time       `json:"timestamp"`
	Kind      domain.Kind     `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
}

// StatementResponse represents a statement in API responses.
type StatementResponse struct {
	CreatedAt      time.Time               `json:"created_at"`
	Lines          []StatementLineResponse `json:"lines"`
	ClosingBalance decimal.Decimal         `json:"closing_balance"`
	TotalCredits   decimal.Decimal         `json:"total_credits"`
	TotalDebits    decimal.Decimal         `json:"total_debits"`
}

// StatementFromDomain converts a domain statement to a response.
func StatementFromDomain(s *domain.Statement) *StatementResponse {
	lines := make([]StatementLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = StatementLineResponse{
			Timestamp: l.Timestamp,
			Kind:      l.Kind,
			Amount:    l.Amount,
			Balance:   l.Balance,
		}
	}

	credits, debits := s.Totals()

	return &StatementResponse{
		CreatedAt:      s.CreatedAt,
		Lines:          lines,
		ClosingBalance: s.ClosingBalance(),
		TotalCredits:   credits,
		TotalDebits:    debits,
	}
}

// ToDomain converts the response back into a statement, for API clients.
func (s *StatementResponse) ToDomain() *domain.Statement {
	lines := make([]domain.StatementLine, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = domain.StatementLine{
			Timestamp: l.Timestamp,
			Kind:      l.Kind,
			Amount:    l.Amount,
			Balance:   l.Balance,
		}
	}
	return &domain.Statement{CreatedAt: s.CreatedAt, Lines: lines}
}

// ListTransactionsResponse represents a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// ReconciliationResponse reports a reconciliation run.
type ReconciliationResponse struct {
	Status            string          `json:"status"`
	Consistent        bool            `json:"consistent"`
	Transactions      int             `json:"transactions"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	LastChecked       time.Time       `json:"last_checked"`
	Message           string          `json:"message,omitempty"`
}

// ReconciliationFromUseCase converts a reconciliation result to a response.
func ReconciliationFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResponse {
	status := "inconsistent"
	if r.IsReconciled {
		status = "consistent"
	}
	return &ReconciliationResponse{
		Status:            status,
		Consistent:        r.IsReconciled,
		Transactions:      r.Transactions,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		LastChecked:       r.LastChecked,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
