// Package teller runs the interactive line-oriented banking session.
package teller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/banking/internal/domain"
	"github.com/iho/banking/internal/usecase"
)

const (
	createdMessage = "Bank Account created."
	typePrompt     = "Please enter transaction type(1: Deposit, 2: Withdrawal, 3: Print Statement): "
	amountPrompt   = "Enter amount: "
	unknownInput   = "unable to understand input"
)

// Service is what the session needs from the account.
type Service interface {
	Deposit(ctx context.Context, amount decimal.Decimal) (*usecase.OperationResult, error)
	Withdraw(ctx context.Context, amount decimal.Decimal) (*usecase.OperationResult, error)
	Statement(ctx context.Context) (*domain.Statement, error)
}

// Session reads commands from in and writes the transcript to out and errOut.
type Session struct {
	svc    Service
	in     *bufio.Scanner
	out    io.Writer
	errOut io.Writer
}

// NewSession creates a new Session.
func NewSession(svc Service, in io.Reader, out, errOut io.Writer) *Session {
	return &Session{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		errOut: errOut,
	}
}

// Run prints the greeting and processes commands until the session ends.
//
// A declined withdrawal or an unknown command is reported on errOut and ends
// the session with a nil error. A malformed or non-positive amount ends it with
// an error. End of input ends it cleanly.
func (s *Session) Run(ctx context.Context) error {
	if _, err := fmt.Fprintln(s.out, createdMessage); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, ok, err := s.solicit(typePrompt)
		if err != nil || !ok {
			return err
		}

		switch cmd {
		case "1":
			done, err := s.operate(ctx, s.svc.Deposit)
			if done || err != nil {
				return err
			}
		case "2":
			done, err := s.operate(ctx, s.svc.Withdraw)
			if done || err != nil {
				return err
			}
		case "3":
			st, err := s.svc.Statement(ctx)
			if err != nil {
				return fmt.Errorf("build statement: %w", err)
			}
			if err := WriteStatement(s.out, st); err != nil {
				return err
			}
		default:
			_, err := fmt.Fprintln(s.errOut, unknownInput)
			return err
		}
	}
}

// operate asks for an amount and applies op. done reports that the session
// is over without an error.
func (s *Session) operate(
	ctx context.Context,
	op func(context.Context, decimal.Decimal) (*usecase.OperationResult, error),
) (done bool, err error) {
	line, ok, err := s.solicit(amountPrompt)
	if err != nil || !ok {
		return true, err
	}

	amount, err := domain.ParseAmount(line)
	if err != nil {
		return true, err
	}

	if _, err := op(ctx, amount); err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			_, werr := fmt.Fprintln(s.errOut, err)
			return true, werr
		}
		return true, err
	}

	return false, nil
}

// solicit prints prompt and reads one trimmed line. ok is false at end of input.
func (s *Session) solicit(prompt string) (line string, ok bool, err error) {
	if _, err := io.WriteString(s.out, prompt); err != nil {
		return "", false, err
	}

	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", false, fmt.Errorf("read input: %w", err)
		}
		return "", false, nil
	}

	return strings.TrimSpace(s.in.Text()), true, nil
}
