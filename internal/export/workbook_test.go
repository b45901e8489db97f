package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fupdash/backend/internal/i18n"
	"github.com/fupdash/backend/internal/models"
	"github.com/fupdash/backend/internal/service"
)

var exportNow = time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)

func exportRecords() []models.ShipmentRecord {
	return []models.ShipmentRecord{
		{PO: "P1", Vessel: "MSC ANNA", BL: "B2", Status: "In transit", CargoType: "RAW", ETA: models.NumberCell(44927), Deadline: models.NumberCell(44940), FCL: models.NumberCell(2)},
		{PO: "P1", Vessel: "MSC ANNA", BL: "B1", Status: "Delivered", CargoType: "RAW", ETA: models.TextCell("tbd"), LCL: models.TextCell("1")},
	}
}

func reopen(t *testing.T, res service.Result) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, res, i18n.Default()))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWriteStandardView(t *testing.T) {
	res := service.Run(exportRecords(), service.Query{View: service.ViewVessel}, exportNow)
	f := reopen(t, res)

	assert.Equal(t, []string{SheetFiltered, SheetMainChart, SheetStatus, SheetDeadlines}, f.GetSheetList())

	rows, err := f.GetRows(SheetFiltered)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Days Remaining", rows[0][11])
	assert.Equal(t, "2023-01-01", rows[1][9])
	assert.Equal(t, "4", rows[1][11])
	assert.Equal(t, "2", rows[1][13])
	assert.Equal(t, "tbd", rows[2][9])

	main, err := f.GetRows(SheetMainChart)
	require.NoError(t, err)
	assert.Equal(t, []string{"MSC ANNA", "3", "0", "1", "0", "1"}, main[1])
}

func TestWriteDetailedView(t *testing.T) {
	res := service.Run(exportRecords(), service.Query{View: service.ViewDetailed}, exportNow)
	f := reopen(t, res)

	assert.Equal(t, []string{SheetDetailed}, f.GetSheetList())
	rows, err := f.GetRows(SheetDetailed)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Vessel", rows[0][0])
	assert.Equal(t, []string{"MSC ANNA", "RAW", "P1", "3", "", "B1", "1", "tbd", "", "Delivered"}, rows[1])
	assert.Equal(t, "B2", rows[2][5])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "dashboard_export_2024-03-09.xlsx", Filename(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)))
}
