package export

import (
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refundesk/refundesk/pkg/domain"
)

func TestRefundsCSV(t *testing.T) {
	reports := []domain.RefundReport{
		{
			ID:                "r1",
			Description:       "taxi to client, with \"receipt\"",
			Amount:            42.5,
			Status:            domain.RefundPending,
			UserID:            "u1",
			CreatedAt:         time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			DaysSinceCreation: 31,
		},
		{ID: "r2", Description: "lunch", Amount: 18, Status: domain.RefundApproved, UserID: "u2"},
	}

	path, err := RefundsCSV(t.TempDir(), reports)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 rows
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "taxi to client, with \"receipt\"", rows[1][1])
	assert.Equal(t, "42.50", rows[1][2])
	assert.Equal(t, "PENDING", rows[1][3])
	assert.Equal(t, "31", rows[1][6])
	assert.Equal(t, "18.00", rows[2][2])
}

func TestRefundsCSVEmptyReportStillHasHeader(t *testing.T) {
	path, err := RefundsCSV(t.TempDir(), nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ID,Description,Amount")
}
