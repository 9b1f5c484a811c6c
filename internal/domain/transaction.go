package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the direction of a transaction.
type Kind uint8

const (
	// Credit increases the balance (deposit).
	Credit Kind = iota + 1
	// Debit decreases the balance (withdrawal).
	Debit
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Credit:
		return "credit"
	case Debit:
		return "debit"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Credit, Debit:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("unknown transaction kind %d", uint8(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "credit":
		*k = Credit
	case "debit":
		*k = Debit
	default:
		return fmt.Errorf("unknown transaction kind %q", string(text))
	}
	return nil
}

// Transaction is an immutable record in the account log.
type Transaction struct {
	Timestamp time.Time
	ID        string
	Kind      Kind
	Amount    decimal.Decimal
}

// Signed returns the amount with the sign of its effect on the balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}
