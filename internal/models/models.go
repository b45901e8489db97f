package models

import (
	"time"
)

// Column names of the shipment sheet. They double as sort keys.
const (
	ColPO           = "PO SAP"
	ColVessel       = "ARRIVAL VESSEL"
	ColVoyage       = "VOYAGE"
	ColBL           = "BL/AWB"
	ColShipowner    = "SHIPOWNER"
	ColStatus       = "STATUS"
	ColShipmentType = "SHIPMENT TYPE"
	ColCargoType    = "TYPE OF CARGO"
	ColBatch        = "BATCH CHINA"
	ColETA          = "ACTUAL ETA"
	ColDeadline     = "FREE TIME DEADLINE"
	ColWarehouse    = "BONDED WAREHOUSE"
	ColBroker       = "BROKER"
	ColFCL          = "FCL"
	ColLCL          = "LCL"
)

var Columns = []string{
	ColPO, ColVessel, ColVoyage, ColBL, ColShipowner, ColStatus, ColShipmentType,
	ColCargoType, ColBatch, ColETA, ColDeadline, ColWarehouse, ColBroker, ColFCL, ColLCL,
}

type ShipmentRecord struct {
	PO           string `json:"po_sap"`
	Vessel       string `json:"arrival_vessel"`
	Voyage       string `json:"voyage"`
	BL           string `json:"bl_awb"`
	Shipowner    string `json:"shipowner"`
	Status       string `json:"status"`
	ShipmentType string `json:"shipment_type"`
	CargoType    string `json:"type_of_cargo"`
	Batch        string `json:"batch_china"`
	ETA          Cell   `json:"actual_eta"`
	Deadline     Cell   `json:"free_time_deadline"`
	Warehouse    string `json:"bonded_warehouse"`
	Broker       string `json:"broker"`
	FCL          Cell   `json:"fcl"`
	LCL          Cell   `json:"lcl"`
}

// Field returns the stringified value of a sheet column, "" for unknown columns.
func (r ShipmentRecord) Field(col string) string {
	switch col {
	case ColPO:
		return r.PO
	case ColVessel:
		return r.Vessel
	case ColVoyage:
		return r.Voyage
	case ColBL:
		return r.BL
	case ColShipowner:
		return r.Shipowner
	case ColStatus:
		return r.Status
	case ColShipmentType:
		return r.ShipmentType
	case ColCargoType:
		return r.CargoType
	case ColBatch:
		return r.Batch
	case ColETA:
		return r.ETA.String()
	case ColDeadline:
		return r.Deadline.String()
	case ColWarehouse:
		return r.Warehouse
	case ColBroker:
		return r.Broker
	case ColFCL:
		return r.FCL.String()
	case ColLCL:
		return r.LCL.String()
	default:
		return ""
	}
}

type Risk string

const (
	RiskNone   Risk = "none"
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

type Shipment struct {
	ShipmentRecord
	DaysToDeadline *int `json:"days_to_deadline"`
	Risk           Risk `json:"risk"`
}

type RiskCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	None   int `json:"none"`
}

func (c *RiskCounts) Add(r Risk) {
	switch r {
	case RiskHigh:
		c.High++
	case RiskMedium:
		c.Medium++
	case RiskNone:
		c.None++
	default:
		c.Low++
	}
}

func (c RiskCounts) Total() int {
	return c.High + c.Medium + c.Low + c.None
}

type GroupSummary struct {
	Name            string     `json:"name"`
	Shipments       []Shipment `json:"shipments"`
	TotalContainers int        `json:"total_containers"`
	OverallRisk     Risk       `json:"overall_risk"`
	RiskCounts      RiskCounts `json:"risk_counts"`
	EarliestArrival *time.Time `json:"earliest_arrival"`
}

type PoGroup struct {
	PoNumber  string     `json:"po_number"`
	Quantity  int        `json:"quantity"`
	CargoType string     `json:"cargo_type"`
	Shipments []Shipment `json:"shipments"`
}

type DetailedVesselView struct {
	VesselName      string     `json:"vessel_name"`
	PoGroups        []PoGroup  `json:"po_groups"`
	TotalContainers int        `json:"total_containers"`
	EarliestArrival *time.Time `json:"earliest_arrival"`
}

// Dataset is one uploaded sheet. Only the raw records are kept; views are
// recomputed from them on every request.
type Dataset struct {
	ID          string           `json:"id"`
	Filename    string           `json:"filename"`
	Sheet       string           `json:"sheet"`
	Fingerprint string           `json:"fingerprint"`
	UploadedAt  time.Time        `json:"uploaded_at"`
	Records     []ShipmentRecord `json:"-"`
}
