package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine is one transaction together with the balance right after it.
type StatementLine struct {
	Timestamp time.Time
	Kind      Kind
	Amount    decimal.Decimal
	Balance   decimal.Decimal
}

// Statement is a read-only snapshot of an account's history.
type Statement struct {
	CreatedAt time.Time
	Lines     []StatementLine
}

// BuildStatement folds txs from the start, recording the running balance.
func BuildStatement(createdAt time.Time, txs []Transaction) *Statement {
	lines := make([]StatementLine, 0, len(txs))
	running := decimal.Zero
	for _, tx := range txs {
		running = running.Add(tx.Signed())
		lines = append(lines, StatementLine{
			Timestamp: tx.Timestamp,
			Kind:      tx.Kind,
			Amount:    tx.Amount,
			Balance:   running,
		})
	}

	return &Statement{
		CreatedAt: createdAt,
		Lines:     lines,
	}
}

// ClosingBalance returns the balance after the last line, or zero.
func (s *Statement) ClosingBalance() decimal.Decimal {
	if len(s.Lines) == 0 {
		return decimal.Zero
	}
	return s.Lines[len(s.Lines)-1].Balance
}

// Totals returns the sum of credits and the sum of debits.
func (s *Statement) Totals() (credits, debits decimal.Decimal) {
	credits, debits = decimal.Zero, decimal.Zero
	for _, l := range s.Lines {
		switch l.Kind {
		case Credit:
			credits = credits.Add(l.Amount)
		case Debit:
			debits = debits.Add(l.Amount)
		}
	}
	return credits, debits
}
