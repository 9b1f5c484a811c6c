package dto

import (
	"github.com/shopspring/decimal"
)

// AmountRequest is the body of a deposit or withdrawal.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
