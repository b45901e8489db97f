package service

import (
	"fmt"
	"time"

	"github.com/fupdash/backend/internal/i18n"
)

// QueryParams is the textual form of a Query as the API and CLI receive it.
// Empty fields mean "no constraint" or the default.
type QueryParams struct {
	View      string `json:"view" validate:"omitempty,oneof=vessel po warehouse detailed"`
	Sort      string `json:"sort"`
	Direction string `json:"direction" validate:"omitempty,oneof=asc desc"`

	ArrivalFrom  string `json:"arrival_from" validate:"omitempty,datetime=2006-01-02"`
	ArrivalTo    string `json:"arrival_to" validate:"omitempty,datetime=2006-01-02"`
	DeadlineFrom string `json:"deadline_from" validate:"omitempty,datetime=2006-01-02"`
	DeadlineTo   string `json:"deadline_to" validate:"omitempty,datetime=2006-01-02"`

	POSearch     string `json:"po_search" validate:"max=200"`
	BLSearch     string `json:"bl_search" validate:"max=200"`
	BrokerSearch string `json:"broker_search" validate:"max=200"`
	VesselSearch string `json:"vessel_search" validate:"max=200"`

	Statuses      []string `json:"statuses"`
	ShipmentTypes []string `json:"shipment_types"`
	CargoTypes    []string `json:"cargo_types"`
	POs           []string `json:"pos"`
	Vessels       []string `json:"vessels"`
	Batches       []string `json:"batches"`
	Brokers       []string `json:"brokers"`
}

// Query parses p. Date bounds are calendar days (YYYY-MM-DD) in loc.
func (p QueryParams) Query(labels i18n.Labels, loc *time.Location) (Query, error) {
	if loc == nil {
		loc = time.UTC
	}
	view, err := ParseView(p.View)
	if err != nil {
		return Query{}, err
	}
	sort := DefaultSort
	if p.Sort != "" {
		if sort.Key, err = ParseSortKey(p.Sort); err != nil {
			return Query{}, err
		}
	}
	if sort.Direction, err = ParseDirection(p.Direction); err != nil {
		return Query{}, err
	}

	f := Filter{
		POSearch:      p.POSearch,
		BLSearch:      p.BLSearch,
		BrokerSearch:  p.BrokerSearch,
		VesselSearch:  p.VesselSearch,
		Statuses:      p.Statuses,
		ShipmentTypes: p.ShipmentTypes,
		CargoTypes:    p.CargoTypes,
		POs:           p.POs,
		Vessels:       p.Vessels,
		Batches:       p.Batches,
		Brokers:       p.Brokers,
	}
	bounds := []struct {
		name string
		raw  string
		dst  **time.Time
	}{
		{"arrival_from", p.ArrivalFrom, &f.Arrival.From},
		{"arrival_to", p.ArrivalTo, &f.Arrival.To},
		{"deadline_from", p.DeadlineFrom, &f.Deadline.From},
		{"deadline_to", p.DeadlineTo, &f.Deadline.To},
	}
	for _, b := range bounds {
		if b.raw == "" {
			continue
		}
		t, err := time.ParseInLocation(time.DateOnly, b.raw, loc)
		if err != nil {
			return Query{}, fmt.Errorf("%s: %w", b.name, err)
		}
		*b.dst = &t
	}
	return Query{Filter: f, View: view, Sort: sort, Labels: labels}, nil
}
