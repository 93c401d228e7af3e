// Package export writes refund reports to CSV files for spreadsheet use.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/refundesk/refundesk/pkg/domain"
)

var csvHeader = []string{"ID", "Description", "Amount", "Status", "User ID", "Created At", "Days Open"}

// RefundsCSV writes the report rows to a timestamped CSV file in dir
// and returns the file path.
func RefundsCSV(dir string, reports []domain.RefundReport) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("refunds-report-%s.csv", time.Now().Format("20060102-150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close() //nolint:errcheck // flushed and closed explicitly below

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, r := range reports {
		row := []string{
			r.ID,
			r.Description,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			string(r.Status),
			r.UserID,
			r.CreatedAt.Format(time.RFC3339),
			strconv.Itoa(r.DaysSinceCreation),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}
