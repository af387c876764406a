package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// WriteBalancesCSV writes one line per employee per leave type.
func WriteBalancesCSV(w io.Writer, rows []BalanceRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"employee", "department", "leave type", "allowed", "taken", "remaining"}); err != nil {
		return err
	}
	for _, row := range rows {
		for _, balance := range row.LeaveBalances {
			record := []string{
				row.Name,
				row.Department,
				balance.LeaveTypeName,
				fmt.Sprintf("%d", balance.TotalAllowed),
				fmt.Sprintf("%d", balance.TotalTaken),
				fmt.Sprintf("%d", balance.TotalRemaining),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// BalancesPDF renders the balance report as a printable summary.
func BalancesPDF(rows []BalanceRow, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Leave Balance Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02")))
	pdf.Ln(10)

	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("%s (%s)", row.Name, row.Department))
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		for _, balance := range row.LeaveBalances {
			pdf.Cell(0, 6, fmt.Sprintf("  %s: %d taken of %d, %d remaining",
				balance.LeaveTypeName, balance.TotalTaken, balance.TotalAllowed, balance.TotalRemaining))
			pdf.Ln(6)
		}
		pdf.Cell(0, 6, fmt.Sprintf("  Total: %d taken, %d remaining", row.TotalDaysTaken, row.TotalDaysRemaining))
		pdf.Ln(9)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
