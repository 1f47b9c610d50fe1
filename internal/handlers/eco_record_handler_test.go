package handlers

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecometrics/internal/models"
)

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 6, 1, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "ecometrics_export_20240601_140509.csv", exportFilename("", now))
	assert.Equal(t, "report.csv", exportFilename("report", now))
	assert.Equal(t, "report.csv", exportFilename("report.csv", now))
	assert.Equal(t, "a_b.csv", exportFilename("a/b", now))
}

func TestRenderCSV(t *testing.T) {
	records := []models.EcoRecord{
		{
			Date:             time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			PowerConsumption: 100,
			DrinkingWater:    30,
			IrrigationWater:  20,
			ElectricityPrice: 25,
			Creator:          &models.User{Username: "@alice"},
		},
	}

	body, err := renderCSV(records, false)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"2024-01-01", "100", "30", "20", "25", "2", "2500", "@alice", ""}, rows[1])
}

func TestRenderCSVWithBOM(t *testing.T) {
	body, err := renderCSV(nil, true)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(body), "Date,Power Consumption (kWh)")

	plain, err := renderCSV(nil, false)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(plain, []byte{0xEF, 0xBB, 0xBF}))
}
