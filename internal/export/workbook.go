// Package export writes a pipeline result as an .xlsx workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fupdash/backend/internal/dates"
	"github.com/fupdash/backend/internal/i18n"
	"github.com/fupdash/backend/internal/models"
	"github.com/fupdash/backend/internal/service"
)

const (
	SheetDetailed  = "Detailed View Export"
	SheetFiltered  = "Filtered Data"
	SheetMainChart = "Chart Data (Main View)"
	SheetStatus    = "Chart Data (Status)"
	SheetDeadlines = "Chart Data (Deadlines)"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var detailedHeaders = []any{
	"Vessel", "Cargo Type", "PO Number", "PO Total Qty", "Batch", "BL", "BL Qty", "ETA", "Warehouse", "Status", "Broker",
}

// Filename names an export produced at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("dashboard_export_%s.xlsx", now.Format(time.DateOnly))
}

// Workbook lays res out the way the dashboard exports it: one sheet for the
// detailed view, or the filtered rows plus chart data for the other views.
func Workbook(res service.Result, labels i18n.Labels) (*excelize.File, error) {
	f := excelize.NewFile()
	loc := res.GeneratedAt.Location()

	var err error
	if res.View == service.ViewDetailed {
		err = writeDetailed(f, res.Detailed, loc)
	} else {
		err = writeStandard(f, res, labels, loc)
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	// drop the default sheet created by NewFile
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write renders the workbook straight into w.
func Write(w io.Writer, res service.Result, labels i18n.Labels) error {
	f, err := Workbook(res, labels)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func writeDetailed(f *excelize.File, views []models.DetailedVesselView, loc *time.Location) error {
	rows := [][]any{detailedHeaders}
	for _, v := range views {
		for _, po := range v.PoGroups {
			for _, s := range po.Shipments {
				rows = append(rows, []any{
					v.VesselName,
					po.CargoType,
					po.PoNumber,
					po.Quantity,
					s.Batch,
					s.BL,
					models.ContainerCount(s.ShipmentRecord),
					dateText(s.ETA, loc),
					s.Warehouse,
					s.Status,
					s.Broker,
				})
			}
		}
	}
	return writeSheet(f, SheetDetailed, rows)
}

func writeStandard(f *excelize.File, res service.Result, labels i18n.Labels, loc *time.Location) error {
	rows := [][]any{{
		models.ColVessel, models.ColVoyage, models.ColPO, models.ColBL, models.ColShipowner, models.ColStatus,
		models.ColShipmentType, models.ColCargoType, models.ColBatch, models.ColETA,
		models.ColDeadline, labels.DaysRemaining, models.ColWarehouse, "CONTAINER QTY", models.ColBroker,
	}}
	for _, r := range res.Filtered {
		days, _ := service.ClassifyRisk(r, res.GeneratedAt)
		var remaining any = ""
		if days != nil {
			remaining = *days
		}
		rows = append(rows, []any{
			r.Vessel, r.Voyage, r.PO, r.BL, r.Shipowner, r.Status,
			r.ShipmentType, r.CargoType, r.Batch, dateText(r.ETA, loc),
			dateText(r.Deadline, loc), remaining, r.Warehouse, models.ContainerCount(r), r.Broker,
		})
	}
	if err := writeSheet(f, SheetFiltered, rows); err != nil {
		return err
	}

	if len(res.Groups) > 0 {
		main := [][]any{{"Item", "Total Containers", "High Risk", "Medium Risk", "Low Risk", "Delivered"}}
		for _, g := range res.Groups {
			main = append(main, []any{g.Name, g.TotalContainers, g.RiskCounts.High, g.RiskCounts.Medium, g.RiskCounts.Low, g.RiskCounts.None})
		}
		if err := writeSheet(f, SheetMainChart, main); err != nil {
			return err
		}
	}

	if len(res.Status) > 0 {
		status := [][]any{{models.ColStatus, "Total Containers", labels.Shipments}}
		for _, s := range res.Status {
			status = append(status, []any{s.Status, s.Containers, s.Shipments})
		}
		if err := writeSheet(f, SheetStatus, status); err != nil {
			return err
		}
	}

	if len(res.Deadlines) > 0 {
		deadlines := [][]any{{labels.DaysRemaining, labels.Shipments}}
		for _, b := range res.Deadlines {
			deadlines = append(deadlines, []any{b.Label, b.Count})
		}
		if err := writeSheet(f, SheetDeadlines, deadlines); err != nil {
			return err
		}
	}
	return nil
}

func writeSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}
	for i := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, axis, &rows[i]); err != nil {
			return fmt.Errorf("write %q row %d: %w", name, i+1, err)
		}
	}
	return nil
}

// dateText renders resolvable dates as YYYY-MM-DD and anything else verbatim.
func dateText(c models.Cell, loc *time.Location) string {
	if d, ok := dates.Parse(c, loc); ok {
		return d.Format(time.DateOnly)
	}
	return c.String()
}
