package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fupdash/backend/internal/ingest"
	"github.com/fupdash/backend/internal/service"
)

type Flags struct {
	service.QueryParams

	File     string
	Sheet    string
	Desc     bool
	Now      string
	Lang     string
	Timezone string
	Out      string
}

type FlagSet[T any] struct {
	Name  string
	Usage string
	Value T
}

type FlagMap struct {
	File     FlagSet[string]
	Sheet    FlagSet[string]
	View     FlagSet[string]
	Sort     FlagSet[string]
	Desc     FlagSet[bool]
	Now      FlagSet[string]
	Lang     FlagSet[string]
	Timezone FlagSet[string]
	Out      FlagSet[string]
}

var flagMap = FlagMap{
	File: FlagSet[string]{
		Name:  "file",
		Usage: "FUP workbook (.xlsx, .xlsm) or .csv export to read.",
	},
	Sheet: FlagSet[string]{
		Name:  "sheet",
		Usage: "Worksheet holding the shipment rows.",
		Value: ingest.DefaultSheet,
	},
	View: FlagSet[string]{
		Name:  "view",
		Usage: "Grouping: vessel, po, warehouse or detailed.",
		Value: "vessel",
	},
	Sort: FlagSet[string]{
		Name:  "sort",
		Usage: "Column to sort shipments by (default days remaining).",
	},
	Desc: FlagSet[bool]{
		Name:  "desc",
		Usage: "Sort descending.",
	},
	Now: FlagSet[string]{
		Name:  "now",
		Usage: "Evaluate deadlines as of this date (YYYY-MM-DD or RFC3339).",
	},
	Lang: FlagSet[string]{
		Name:  "lang",
		Usage: "Label language: en, pt or zh.",
		Value: "en",
	},
	Timezone: FlagSet[string]{
		Name:  "timezone",
		Usage: "IANA zone calendar dates are resolved in.",
		Value: "UTC",
	},
	Out: FlagSet[string]{
		Name:  "out",
		Usage: "Workbook path to write (default dashboard_export_<date>.xlsx).",
	},
}

func setPipelineFlags(c *cobra.Command, flgs *Flags) {
	fs := c.Flags()
	fs.StringVar(&flgs.File, flagMap.File.Name, flagMap.File.Value, flagMap.File.Usage)
	fs.StringVar(&flgs.Sheet, flagMap.Sheet.Name, flagMap.Sheet.Value, flagMap.Sheet.Usage)
	fs.StringVar(&flgs.View, flagMap.View.Name, flagMap.View.Value, flagMap.View.Usage)
	fs.StringVar(&flgs.Sort, flagMap.Sort.Name, flagMap.Sort.Value, flagMap.Sort.Usage)
	fs.BoolVar(&flgs.Desc, flagMap.Desc.Name, flagMap.Desc.Value, flagMap.Desc.Usage)
	fs.StringVar(&flgs.Now, flagMap.Now.Name, flagMap.Now.Value, flagMap.Now.Usage)
	fs.StringVar(&flgs.Lang, flagMap.Lang.Name, flagMap.Lang.Value, flagMap.Lang.Usage)
	fs.StringVar(&flgs.Timezone, flagMap.Timezone.Name, flagMap.Timezone.Value, flagMap.Timezone.Usage)

	fs.StringVar(&flgs.ArrivalFrom, "arrival-from", "", "Earliest arrival date, inclusive.")
	fs.StringVar(&flgs.ArrivalTo, "arrival-to", "", "Latest arrival date, inclusive.")
	fs.StringVar(&flgs.DeadlineFrom, "deadline-from", "", "Earliest free time deadline, inclusive.")
	fs.StringVar(&flgs.DeadlineTo, "deadline-to", "", "Latest free time deadline, inclusive.")

	fs.StringVar(&flgs.POSearch, "po-search", "", "Substring match on PO SAP.")
	fs.StringVar(&flgs.BLSearch, "bl-search", "", "Substring match on BL/AWB.")
	fs.StringVar(&flgs.BrokerSearch, "broker-search", "", "Substring match on BROKER.")
	fs.StringVar(&flgs.VesselSearch, "vessel-search", "", "Substring match on ARRIVAL VESSEL.")

	fs.StringSliceVar(&flgs.Statuses, "status", nil, "Keep only these statuses.")
	fs.StringSliceVar(&flgs.ShipmentTypes, "shipment-type", nil, "Keep only these shipment types.")
	fs.StringSliceVar(&flgs.CargoTypes, "cargo-type", nil, "Keep only these cargo types.")
	fs.StringSliceVar(&flgs.POs, "po", nil, "Keep only these POs.")
	fs.StringSliceVar(&flgs.Vessels, "vessel", nil, "Keep only these vessels.")
	fs.StringSliceVar(&flgs.Batches, "batch", nil, "Keep only these batches.")
	fs.StringSliceVar(&flgs.Brokers, "broker", nil, "Keep only these brokers.")

	_ = c.MarkFlagRequired(flagMap.File.Name)
}
