// Package export serializes financial reports for download and for the
// spreadsheet sink.
package export

import (
	"bytes"
	"fmt"

	"fintrack/internal/core"
)

// Download metadata for the CSV export.
const (
	ReportFilename    = "financial_report.csv"
	ReportContentType = "text/csv"
)

// ReportCSV renders the report as a CSV byte stream.
//
// Layout: header row, one totals row with empty category/amount columns, then
// one row per category total with empty income/expense columns. Category rows
// follow the report's first-seen grouping order.
func ReportCSV(r *core.Report) []byte {
	var buf bytes.Buffer
	buf.WriteString("Total Income,Total Expenses,Category,Amount\n")
	fmt.Fprintf(&buf, "%s,%s,,\n", r.TotalIncome.Format(), r.TotalExpenses.Format())
	for _, cat := range r.CategoryOrder {
		fmt.Fprintf(&buf, ",,%s,%s\n", cat, r.CategoryTotals[cat].Format())
	}
	return buf.Bytes()
}
