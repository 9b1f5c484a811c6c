package domain

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Account is a single ledger account backed by an append-only transaction log.
// The balance is never stored; every read folds the log.
// All methods are safe for concurrent use.
type Account struct {
	mu    sync.Mutex
	log   []Transaction
	now   func() time.Time
	newID func() string
}

// Option configures an Account.
type Option func(*Account)

// WithClock sets the time source used to stamp transactions and statements.
func WithClock(now func() time.Time) Option {
	return func(a *Account) {
		if now != nil {
			a.now = now
		}
	}
}

// WithIDGenerator sets the function that assigns transaction IDs.
func WithIDGenerator(newID func() string) Option {
	return func(a *Account) {
		if newID != nil {
			a.newID = newID
		}
	}
}

// NewAccount creates an empty account with a zero balance.
func NewAccount(opts ...Option) *Account {
	a := &Account{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Deposit appends a credit and returns the new balance.
func (a *Account) Deposit(amount decimal.Decimal) (decimal.Decimal, error) {
	_, balance, err := a.Apply(Credit, amount)
	return balance, err
}

// Withdraw appends a debit and returns the new balance.
// It fails with ErrInsufficientBalance, leaving the log untouched, when the
// debit would take the balance below zero.
func (a *Account) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	_, balance, err := a.Apply(Debit, amount)
	return balance, err
}

// Apply records a transaction of the given kind and returns it together with
// the balance after it. The overdraft check and the append happen under one
// lock. A declined debit returns the unchanged current balance.
func (a *Account) Apply(kind Kind, amount decimal.Decimal) (Transaction, decimal.Decimal, error) {
	if kind != Credit && kind != Debit {
		return Transaction{}, decimal.Zero, fmt.Errorf("unknown transaction kind %d", uint8(kind))
	}
	if err := ValidateAmount(amount); err != nil {
		return Transaction{}, decimal.Zero, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	balance := a.balanceLocked()
	next := balance.Add(amount)
	if kind == Debit {
		next = balance.Sub(amount)
		if next.IsNegative() {
			return Transaction{}, balance, ErrInsufficientBalance
		}
	}

	return a.appendLocked(kind, amount), next, nil
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.balanceLocked()
}

// Len returns the number of recorded transactions.
func (a *Account) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.log)
}

// Transactions returns a copy of the log in chronological order.
func (a *Account) Transactions() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Transaction, len(a.log))
	copy(out, a.log)
	return out
}

// Statement replays the log into a new statement.
func (a *Account) Statement() *Statement {
	a.mu.Lock()
	defer a.mu.Unlock()

	return BuildStatement(a.now(), a.log)
}

func (a *Account) appendLocked(kind Kind, amount decimal.Decimal) Transaction {
	ts := a.now()
	if n := len(a.log); n > 0 && ts.Before(a.log[n-1].Timestamp) {
		// clock went backwards; keep the log ordered
		ts = a.log[n-1].Timestamp
	}

	id := strconv.Itoa(len(a.log) + 1)
	if a.newID != nil {
		id = a.newID()
	}

	tx := Transaction{
		ID:        id,
		Timestamp: ts,
		Kind:      kind,
		Amount:    amount,
	}
	a.log = append(a.log, tx)

	return tx
}

func (a *Account) balanceLocked() decimal.Decimal {
	return Fold(a.log)
}

// Fold returns the balance after applying every transaction in order.
func Fold(txs []Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range txs {
		balance = balance.Add(tx.Signed())
	}
	return balance
}
