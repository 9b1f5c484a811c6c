package teller

import (
	"bufio"
	"fmt"
	"io"

	"github.com/iho/banking/internal/domain"
)

const (
	statementHeader    = "|DATE                 | AMOUNT  | BALANCE|"
	statementSeparator = "|---------------------|---------|--------|"
	timestampLayout    = "2006-01-02 15:04:05"
)

// WriteStatement renders st as the fixed-width statement table.
func WriteStatement(w io.Writer, st *domain.Statement) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, statementHeader)
	fmt.Fprintln(bw, statementSeparator)
	for _, line := range st.Lines {
		fmt.Fprintf(bw, " %s  |   %s   | %s \n",
			line.Timestamp.Format(timestampLayout),
			domain.FormatAmount(line.Amount),
			domain.FormatAmount(line.Balance),
		)
	}

	return bw.Flush()
}
