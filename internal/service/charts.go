package service

import (
	"sort"
	"time"

	"github.com/fupdash/backend/internal/i18n"
	"github.com/fupdash/backend/internal/models"
)

type StatusCount struct {
	Status     string `json:"status"`
	Shipments  int    `json:"shipments"`
	Containers int    `json:"containers"`
}

type DeadlineBin struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Facets lists the distinct values offered by each multi-select filter.
type Facets struct {
	Statuses      []string `json:"statuses"`
	ShipmentTypes []string `json:"shipment_types"`
	CargoTypes    []string `json:"cargo_types"`
	POs           []string `json:"pos"`
	Vessels       []string `json:"vessels"`
	Batches       []string `json:"batches"`
	Brokers       []string `json:"brokers"`
}

// StatusBreakdown counts shipments and containers per STATUS in order of
// first appearance.
func StatusBreakdown(records []models.ShipmentRecord, labels i18n.Labels) []StatusCount {
	index := make(map[string]int)
	out := make([]StatusCount, 0)
	for _, r := range records {
		status := statusFacet.label(r, labels)
		i, ok := index[status]
		if !ok {
			i = len(out)
			index[status] = i
			out = append(out, StatusCount{Status: status})
		}
		out[i].Shipments++
		out[i].Containers += models.ContainerCount(r)
	}
	return out
}

// DeadlineDistribution bins shipments by days remaining. Undelivered shipments
// with no resolvable deadline are left out.
func DeadlineDistribution(records []models.ShipmentRecord, labels i18n.Labels, now time.Time) []DeadlineBin {
	bins := []DeadlineBin{
		{Key: "overdue", Label: labels.BinOverdue},
		{Key: "0-7", Label: labels.Bin0To7},
		{Key: "8-15", Label: labels.Bin8To15},
		{Key: "16-30", Label: labels.Bin16To30},
		{Key: "31+", Label: labels.Bin31Plus},
		{Key: "delivered", Label: labels.Delivered},
	}
	for _, r := range records {
		days, risk := ClassifyRisk(r, now)
		switch {
		case risk == models.RiskNone:
			bins[5].Count++
		case days == nil:
		case *days < 0:
			bins[0].Count++
		case *days <= 7:
			bins[1].Count++
		case *days <= 15:
			bins[2].Count++
		case *days <= 30:
			bins[3].Count++
		default:
			bins[4].Count++
		}
	}
	return bins
}

func FacetOptions(records []models.ShipmentRecord, labels i18n.Labels) Facets {
	return Facets{
		Statuses:      distinct(records, statusFacet, labels),
		ShipmentTypes: distinct(records, shipmentTypeFacet, labels),
		CargoTypes:    distinct(records, cargoTypeFacet, labels),
		POs:           distinct(records, poFacet, labels),
		Vessels:       distinct(records, vesselFacet, labels),
		Batches:       distinct(records, batchFacet, labels),
		Brokers:       distinct(records, brokerFacet, labels),
	}
}

func distinct(records []models.ShipmentRecord, f facet, labels i18n.Labels) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		v := f.label(r, labels)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
