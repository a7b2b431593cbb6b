// Package export renders a filtered transaction list as a CSV report.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/finwise/internal/record"
)

var header = strings.Join([]string{"ID", "Type", "Category", "Amount", "Date", "Description"}, ",")

// Report builds the CSV document. Rows are plain comma joins; only the
// description is quoted, with embedded quotes doubled, because it is the one
// free-text field. Amounts keep their decimal string form.
func Report(txs []record.Transaction) string {
	lines := make([]string, 0, len(txs)+1)
	lines = append(lines, header)

	for _, t := range txs {
		lines = append(lines, strings.Join([]string{
			t.ID,
			string(t.Kind),
			t.Category,
			t.Amount.String(),
			t.OccurredAt.Format(time.DateOnly),
			`"` + strings.ReplaceAll(t.Description, `"`, `""`) + `"`,
		}, ","))
	}

	return strings.Join(lines, "\n")
}

// Filename names the downloaded report after the day it was generated.
func Filename(now time.Time) string {
	return fmt.Sprintf("financial_report_%s.csv", now.Format(time.DateOnly))
}
