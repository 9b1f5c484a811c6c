package main

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/banking/internal/adapter/http"
	"github.com/iho/banking/internal/adapter/http/handler"
	"github.com/iho/banking/internal/adapter/repository/memory"
	"github.com/iho/banking/internal/domain"
	"github.com/iho/banking/internal/usecase"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	account := domain.NewAccount()
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(usecase.NewAccountUseCase(account, nil, zerolog.Nop())),
		HealthHandler:    handler.NewHealthHandler(nil),
		IdempotencyStore: memory.NewIdempotencyStore(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}
}

func TestInteractiveSession(t *testing.T) {
	out, errOut, err := runCLI(t, "1\n100\n2\n30\n3\n")
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr %q", errOut)
	}
	if !strings.HasPrefix(out, "Bank Account created.\n") {
		t.Fatalf("missing greeting in %q", out)
	}
	if !strings.Contains(out, "|   100.00   | 100.00 ") || !strings.Contains(out, "|   30.00   | 70.00 ") {
		t.Fatalf("statement rows missing from %q", out)
	}
}

func TestInteractiveSessionMalformedAmount(t *testing.T) {
	_, _, err := runCLI(t, "1\nabc\n")
	if err == nil || !strings.Contains(err.Error(), "unable to parse the amount") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestInteractiveSessionDeclined(t *testing.T) {
	_, errOut, err := runCLI(t, "2\n5\n")
	if err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	if errOut != "operation declined: unsufficient balance\n" {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

func TestRemoteCommands(t *testing.T) {
	srv := newTestServer(t)

	out, _, err := runCLI(t, "", "remote", "--url", srv.URL, "deposit", "50.5")
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if out != "credit 50.50 accepted, balance 50.50\n" {
		t.Fatalf("unexpected deposit output %q", out)
	}

	_, _, err = runCLI(t, "", "remote", "--url", srv.URL, "withdraw", "100")
	if err == nil || !strings.Contains(err.Error(), "unsufficient balance") || !strings.Contains(err.Error(), "422") {
		t.Fatalf("expected declined withdrawal, got %v", err)
	}

	out, _, err = runCLI(t, "", "remote", "--url", srv.URL, "balance")
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if out != "50.50\n" {
		t.Fatalf("unexpected balance %q", out)
	}

	out, _, err = runCLI(t, "", "remote", "--url", srv.URL, "statement")
	if err != nil {
		t.Fatalf("statement failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 || !strings.HasSuffix(lines[2], "|   50.50   | 50.50 ") {
		t.Fatalf("unexpected statement %q", out)
	}
}

func TestRemoteRejectsInvalidAmountLocally(t *testing.T) {
	for _, amount := range []string{"0", "-1", "x"} {
		if _, _, err := runCLI(t, "", "remote", "--url", "http://127.0.0.1:1", "deposit", amount); err == nil {
			t.Fatalf("expected %q to be rejected", amount)
		}
	}
}
