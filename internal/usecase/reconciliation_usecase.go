package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/banking/internal/domain"
)

var (
	// ErrInconsistentLedger is returned when the statement does not agree with the log.
	ErrInconsistentLedger = errors.New("ledger is inconsistent")
)

// ReconciliationUseCase checks that the derived views agree with the transaction log.
type ReconciliationUseCase struct {
	ledger Ledger
	now    func() time.Time
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(ledger Ledger) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		ledger: ledger,
		now:    time.Now,
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	Transactions      int
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	LastChecked       time.Time
}

// Reconcile replays the log, compares it with a fresh statement and with the
// reported balance, and checks the non-negative and ordering invariants.
// A failed check returns the result together with ErrInconsistentLedger.
// Writes landing between the reads can show up as a difference.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context) (*ReconciliationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	txs := uc.ledger.Transactions()
	st := uc.ledger.Statement()
	recorded := uc.ledger.Balance()

	calculated := domain.Fold(txs)
	result := &ReconciliationResult{
		Transactions:      len(txs),
		RecordedBalance:   recorded,
		CalculatedBalance: calculated,
		Difference:        recorded.Sub(calculated),
		LastChecked:       uc.now().UTC(),
	}

	if err := checkLines(txs, st); err != nil {
		return result, err
	}
	if !result.Difference.IsZero() {
		return result, fmt.Errorf("%w: balance %s, log folds to %s", ErrInconsistentLedger, recorded, calculated)
	}

	result.IsReconciled = true
	return result, nil
}

func checkLines(txs []domain.Transaction, st *domain.Statement) error {
	// the log may have grown between the two reads; only compare the common prefix
	if len(st.Lines) < len(txs) {
		txs = txs[:len(st.Lines)]
	}

	running := decimal.Zero
	for i, tx := range txs {
		line := st.Lines[i]
		running = running.Add(tx.Signed())

		if running.IsNegative() {
			return fmt.Errorf("%w: balance negative after transaction %d", ErrInconsistentLedger, i+1)
		}
		if i > 0 && tx.Timestamp.Before(txs[i-1].Timestamp) {
			return fmt.Errorf("%w: transaction %d out of order", ErrInconsistentLedger, i+1)
		}
		if line.Kind != tx.Kind || !line.Amount.Equal(tx.Amount) || !line.Timestamp.Equal(tx.Timestamp) {
			return fmt.Errorf("%w: statement line %d does not match transaction", ErrInconsistentLedger, i+1)
		}
		if !line.Balance.Equal(running) {
			return fmt.Errorf("%w: statement line %d balance %s, want %s", ErrInconsistentLedger, i+1, line.Balance, running)
		}
	}

	return nil
}
