package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/banking/internal/domain"
)

// Ledger is the account the use cases operate on. *domain.Account implements it.
type Ledger interface {
	Apply(kind domain.Kind, amount decimal.Decimal) (domain.Transaction, decimal.Decimal, error)
	Balance() decimal.Decimal
	Statement() *domain.Statement
	Transactions() []domain.Transaction
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key so a failed request can be retried with it.
	Release(ctx context.Context, key string) error
}
