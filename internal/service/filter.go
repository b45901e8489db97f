package service

import (
	"strings"
	"time"

	"github.com/fupdash/backend/internal/dates"
	"github.com/fupdash/backend/internal/i18n"
	"github.com/fupdash/backend/internal/models"
)

// AllOption is the facet value that disables a multi-select filter.
const AllOption = ""

type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

func (d DateRange) active() bool {
	return d.From != nil || d.To != nil
}

type Filter struct {
	Arrival  DateRange `json:"arrival"`
	Deadline DateRange `json:"deadline"`

	POSearch     string `json:"po_search,omitempty"`
	BLSearch     string `json:"bl_search,omitempty"`
	BrokerSearch string `json:"broker_search,omitempty"`
	VesselSearch string `json:"vessel_search,omitempty"`

	Statuses      []string `json:"statuses,omitempty"`
	ShipmentTypes []string `json:"shipment_types,omitempty"`
	CargoTypes    []string `json:"cargo_types,omitempty"`
	POs           []string `json:"pos,omitempty"`
	Vessels       []string `json:"vessels,omitempty"`
	Batches       []string `json:"batches,omitempty"`
	Brokers       []string `json:"brokers,omitempty"`
}

type FilterStage struct {
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}

type FilterResult struct {
	Records []models.ShipmentRecord
	Stages  []FilterStage
}

// facet pairs a multi-select column with the label used when it is blank.
type facet struct {
	name     string
	value    func(models.ShipmentRecord) string
	sentinel func(i18n.Labels) string
}

var (
	poFacet = facet{"po", func(r models.ShipmentRecord) string { return r.PO },
		func(l i18n.Labels) string { return l.NoPO }}
	vesselFacet = facet{"vessel", func(r models.ShipmentRecord) string { return r.Vessel },
		func(l i18n.Labels) string { return l.NoVessel }}
	statusFacet = facet{"status", func(r models.ShipmentRecord) string { return r.Status },
		func(l i18n.Labels) string { return l.NoStatus }}
	shipmentTypeFacet = facet{"shipment_type", func(r models.ShipmentRecord) string { return r.ShipmentType },
		func(l i18n.Labels) string { return l.NoShipmentType }}
	cargoTypeFacet = facet{"cargo_type", func(r models.ShipmentRecord) string { return r.CargoType },
		func(l i18n.Labels) string { return l.NoCargoType }}
	batchFacet = facet{"batch", func(r models.ShipmentRecord) string { return r.Batch },
		func(l i18n.Labels) string { return l.NoBatch }}
	brokerFacet = facet{"broker", func(r models.ShipmentRecord) string { return r.Broker },
		func(l i18n.Labels) string { return l.NoBroker }}
)

func (f facet) label(r models.ShipmentRecord, labels i18n.Labels) string {
	return withSentinel(f.value(r), f.sentinel(labels))
}

// ApplyFilter keeps the records matching every active facet, in input order.
// Each stage records how many records survived it.
func ApplyFilter(records []models.ShipmentRecord, f Filter, labels i18n.Labels, loc *time.Location) FilterResult {
	out := records
	result := FilterResult{}
	stage := func(name string, keep func(models.ShipmentRecord) bool) {
		out = filterRecords(out, keep)
		result.Stages = append(result.Stages, FilterStage{Name: name, Remaining: len(out)})
	}

	result.Stages = append(result.Stages, FilterStage{Name: "input", Remaining: len(records)})

	if f.Arrival.active() {
		stage("arrival_range", func(r models.ShipmentRecord) bool {
			return inRange(r.ETA, f.Arrival, loc)
		})
	}
	if f.Deadline.active() {
		stage("deadline_range", func(r models.ShipmentRecord) bool {
			return inRange(r.Deadline, f.Deadline, loc)
		})
	}
	searches := []struct {
		name  string
		term  string
		value func(models.ShipmentRecord) string
	}{
		{"po_search", f.POSearch, func(r models.ShipmentRecord) string { return r.PO }},
		{"bl_search", f.BLSearch, func(r models.ShipmentRecord) string { return r.BL }},
		{"broker_search", f.BrokerSearch, func(r models.ShipmentRecord) string { return r.Broker }},
		{"vessel_search", f.VesselSearch, func(r models.ShipmentRecord) string { return r.Vessel }},
	}
	for _, s := range searches {
		term := strings.ToLower(strings.TrimSpace(s.term))
		if term == "" {
			continue
		}
		value := s.value
		stage(s.name, func(r models.ShipmentRecord) bool {
			return strings.Contains(strings.ToLower(value(r)), term)
		})
	}
	selections := []struct {
		facet    facet
		selected []string
	}{
		{poFacet, f.POs},
		{vesselFacet, f.Vessels},
		{statusFacet, f.Statuses},
		{shipmentTypeFacet, f.ShipmentTypes},
		{cargoTypeFacet, f.CargoTypes},
		{batchFacet, f.Batches},
		{brokerFacet, f.Brokers},
	}
	for _, s := range selections {
		if !selectionActive(s.selected) {
			continue
		}
		set := make(map[string]struct{}, len(s.selected))
		for _, v := range s.selected {
			set[v] = struct{}{}
		}
		fc := s.facet
		stage(fc.name, func(r models.ShipmentRecord) bool {
			_, ok := set[fc.label(r, labels)]
			return ok
		})
	}

	result.Records = out
	return result
}

func selectionActive(selected []string) bool {
	if len(selected) == 0 {
		return false
	}
	for _, v := range selected {
		if v == AllOption {
			return false
		}
	}
	return true
}

func inRange(c models.Cell, rng DateRange, loc *time.Location) bool {
	d, ok := dates.Parse(c, loc)
	if !ok {
		return false
	}
	if rng.From != nil && d.Before(dates.Day(*rng.From, loc)) {
		return false
	}
	if rng.To != nil && d.After(dates.Day(*rng.To, loc)) {
		return false
	}
	return true
}

func withSentinel(value, sentinel string) string {
	if strings.TrimSpace(value) == "" {
		return sentinel
	}
	return value
}

func filterRecords(records []models.ShipmentRecord, keep func(models.ShipmentRecord) bool) []models.ShipmentRecord {
	out := make([]models.ShipmentRecord, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
