package domain

import "errors"

var (
	// Account errors
	ErrInsufficientBalance = errors.New("operation declined: unsufficient balance")

	// Amount errors
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrMalformedAmount = errors.New("unable to parse the amount")
)
