// Package ingest turns uploaded FUP sheets (.xlsx or .csv) into shipment
// records.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fupdash/backend/internal/models"
)

const DefaultSheet = "FUP Report"

var (
	ErrSheetNotFound     = errors.New("sheet not found")
	ErrEmptySheet        = errors.New("sheet has no data rows")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// Format reports the upload format implied by filename, "" when unsupported.
func Format(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".csv":
		return FormatCSV
	default:
		return ""
	}
}

// Read dispatches on the file extension. sheet is ignored for CSV.
func Read(filename string, r io.Reader, sheet string) ([]models.ShipmentRecord, error) {
	switch Format(filename) {
	case FormatXLSX:
		return ReadWorkbook(r, sheet)
	case FormatCSV:
		return ReadCSV(r)
	default:
		return nil, fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}
}

// ReadWorkbook reads the named sheet with raw cell values, so date cells
// arrive as day serials.
func ReadWorkbook(r io.Reader, sheet string) ([]models.ShipmentRecord, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%q: %w", sheet, ErrSheetNotFound)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%q: %w", sheet, ErrEmptySheet)
	}

	index := headerIndex(rows[0])
	out := make([]models.ShipmentRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		cell := func(col string) models.Cell {
			pos, ok := index[normalizeHeader(col)]
			if !ok || pos >= len(row) {
				return models.Cell{}
			}
			return workbookCell(f, sheet, pos, rowNum, row[pos])
		}
		rec, ok := buildRecord(cell)
		if !ok {
			continue
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%q: %w", sheet, ErrEmptySheet)
	}
	return out, nil
}

// ReadCSV reads a comma separated export of the same sheet.
func ReadCSV(r io.Reader) ([]models.ShipmentRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	headers, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptySheet
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := headerIndex(headers)

	var out []models.ShipmentRecord
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row, ok := buildRecord(func(col string) models.Cell {
			return models.TextCell(getField(rec, index, col))
		})
		if !ok {
			continue
		}
		out = append(out, row)
	}
	if len(out) == 0 {
		return nil, ErrEmptySheet
	}
	return out, nil
}

// NormalizeWarehouse folds every TECON terminal variant into "TECON".
func NormalizeWarehouse(value string) string {
	if strings.Contains(strings.ToUpper(value), "TECON") {
		return "TECON"
	}
	return value
}

func buildRecord(cell func(col string) models.Cell) (models.ShipmentRecord, bool) {
	text := func(col string) string {
		return strings.TrimSpace(cell(col).String())
	}
	rec := models.ShipmentRecord{
		PO:           text(models.ColPO),
		Vessel:       text(models.ColVessel),
		Voyage:       text(models.ColVoyage),
		BL:           text(models.ColBL),
		Shipowner:    text(models.ColShipowner),
		Status:       text(models.ColStatus),
		ShipmentType: text(models.ColShipmentType),
		CargoType:    text(models.ColCargoType),
		Batch:        text(models.ColBatch),
		ETA:          cell(models.ColETA),
		Deadline:     cell(models.ColDeadline),
		Warehouse:    NormalizeWarehouse(text(models.ColWarehouse)),
		Broker:       text(models.ColBroker),
		FCL:          cell(models.ColFCL),
		LCL:          cell(models.ColLCL),
	}
	return rec, !blank(rec)
}

func blank(r models.ShipmentRecord) bool {
	for _, col := range models.Columns {
		if strings.TrimSpace(r.Field(col)) != "" {
			return false
		}
	}
	return true
}

// workbookCell keeps numeric cells as numbers and everything else as text.
func workbookCell(f *excelize.File, sheet string, col, row int, raw string) models.Cell {
	if strings.TrimSpace(raw) == "" {
		return models.Cell{}
	}
	axis, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return models.TextCell(raw)
	}
	typ, err := f.GetCellType(sheet, axis)
	if err != nil {
		return models.TextCell(raw)
	}
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return models.NumberCell(n)
		}
	}
	return models.TextCell(raw)
}

func headerIndex(headers []string) map[string]int {
	idx := map[string]int{}
	for i, h := range headers {
		key := normalizeHeader(h)
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}

func getField(rec []string, idx map[string]int, name string) string {
	pos, ok := idx[normalizeHeader(name)]
	if !ok || pos >= len(rec) {
		return ""
	}
	return rec[pos]
}

func normalizeHeader(h string) string {
	h = strings.ReplaceAll(h, "\ufeff", "")
	return strings.ToLower(strings.TrimSpace(h))
}
