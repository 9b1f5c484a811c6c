package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/banking/internal/domain"
	"github.com/iho/banking/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	ledger  Ledger
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
// m may be nil, in which case nothing is recorded.
func NewAccountUseCase(ledger Ledger, m *metrics.Metrics, logger zerolog.Logger) *AccountUseCase {
	return &AccountUseCase{
		ledger:  ledger,
		metrics: m,
		logger:  logger,
	}
}

// OperationResult is the outcome of an accepted deposit or withdrawal.
type OperationResult struct {
	Transaction domain.Transaction
	Balance     decimal.Decimal
}

// ListTransactionsInput represents input for listing transactions.
// Values out of range are clamped.
type ListTransactionsInput struct {
	Limit  int
	Offset int
}

// TransactionPage is one page of the log with the bounds actually applied.
type TransactionPage struct {
	Transactions []domain.Transaction
	Limit        int
	Offset       int
}

// Deposit credits the account.
func (uc *AccountUseCase) Deposit(ctx context.Context, amount decimal.Decimal) (*OperationResult, error) {
	return uc.apply(ctx, domain.Credit, amount)
}

// Withdraw debits the account.
func (uc *AccountUseCase) Withdraw(ctx context.Context, amount decimal.Decimal) (*OperationResult, error) {
	return uc.apply(ctx, domain.Debit, amount)
}

// Balance returns the current balance.
func (uc *AccountUseCase) Balance(ctx context.Context) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	return uc.ledger.Balance(), nil
}

// Statement builds a fresh statement.
func (uc *AccountUseCase) Statement(ctx context.Context) (*domain.Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st := uc.ledger.Statement()
	if uc.metrics != nil {
		uc.metrics.Statements.Inc()
	}
	uc.logger.Debug().Int("lines", len(st.Lines)).Msg("statement built")

	return st, nil
}

// ListTransactions returns a page of the transaction log in chronological order.
func (uc *AccountUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) (*TransactionPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	page := &TransactionPage{Transactions: []domain.Transaction{}, Limit: limit, Offset: offset}

	txs := uc.ledger.Transactions()
	if offset >= len(txs) {
		return page, nil
	}
	end := offset + limit
	if end > len(txs) {
		end = len(txs)
	}

	page.Transactions = txs[offset:end]
	return page, nil
}

func (uc *AccountUseCase) apply(ctx context.Context, kind domain.Kind, amount decimal.Decimal) (*OperationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	op := operationName(kind)

	tx, balance, err := uc.ledger.Apply(kind, amount)
	if err != nil {
		uc.recordDecline(op, err)
		uc.logger.Warn().
			Err(err).
			Str("operation", op).
			Str("amount", amount.String()).
			Msg("operation declined")
		return nil, err
	}

	if uc.metrics != nil {
		if kind == domain.Credit {
			uc.metrics.Deposits.Inc()
		} else {
			uc.metrics.Withdrawals.Inc()
		}
		uc.metrics.Balance.Set(balance.InexactFloat64())
		uc.metrics.OperationAmount.WithLabelValues(op).Observe(amount.InexactFloat64())
	}

	uc.logger.Debug().
		Str("operation", op).
		Str("transaction_id", tx.ID).
		Str("amount", amount.String()).
		Str("balance", balance.String()).
		Msg("operation accepted")

	return &OperationResult{Transaction: tx, Balance: balance}, nil
}

func (uc *AccountUseCase) recordDecline(op string, err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.Declined.WithLabelValues(op, declineReason(err)).Inc()
}

func operationName(kind domain.Kind) string {
	if kind == domain.Debit {
		return "withdraw"
	}
	return "deposit"
}

func declineReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	default:
		return "other"
	}
}
