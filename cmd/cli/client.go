package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/iho/banking/internal/adapter/http/dto"
	"github.com/iho/banking/internal/adapter/http/middleware"
	"github.com/iho/banking/internal/adapter/teller"
	"github.com/iho/banking/internal/domain"
)

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *client) printBalance(ctx context.Context, w io.Writer) error {
	var resp dto.BalanceResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/account/balance", nil, "", &resp); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, domain.FormatAmount(resp.Balance))
	return err
}

func (c *client) printStatement(ctx context.Context, w io.Writer) error {
	var resp dto.StatementResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/account/statement", nil, "", &resp); err != nil {
		return err
	}

	return teller.WriteStatement(w, resp.ToDomain())
}

// operate posts an amount with a fresh idempotency key.
func (c *client) operate(ctx context.Context, w io.Writer, path, rawAmount string) error {
	amount, err := domain.ParseAmount(rawAmount)
	if err != nil {
		return err
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}

	body, err := json.Marshal(dto.AmountRequest{Amount: amount})
	if err != nil {
		return err
	}

	var resp dto.OperationResponse
	if err := c.do(ctx, http.MethodPost, path, body, ulid.Make().String(), &resp); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s %s accepted, balance %s\n",
		resp.Transaction.Kind, domain.FormatAmount(resp.Transaction.Amount), domain.FormatAmount(resp.Balance))
	return err
}

func (c *client) do(ctx context.Context, method, path string, body []byte, idempotencyKey string, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set(middleware.IdempotencyKeyHeader, idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s (status %d)", apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, truncate(string(data), 200))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
