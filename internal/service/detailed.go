package service

import (
	"sort"
	"strings"
	"time"

	"github.com/fupdash/backend/internal/i18n"
	"github.com/fupdash/backend/internal/models"
)

// NoPONumber labels shipments without a PO inside a vessel card.
const NoPONumber = "N/A"

// BuildDetailedView nests records as vessel -> PO -> shipments.
func BuildDetailedView(records []models.ShipmentRecord, labels i18n.Labels, now time.Time) []models.DetailedVesselView {
	vesselKey := ColumnKey(func(r models.ShipmentRecord) string { return r.Vessel }, labels.NoVessel)

	index := make(map[string]int)
	var names []string
	var buckets [][]models.ShipmentRecord
	for _, r := range records {
		name := vesselKey(r)
		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			names = append(names, name)
			buckets = append(buckets, nil)
		}
		buckets[i] = append(buckets[i], r)
	}

	views := make([]models.DetailedVesselView, 0, len(buckets))
	for i, members := range buckets {
		v := models.DetailedVesselView{
			VesselName:      names[i],
			PoGroups:        buildPoGroups(members, now),
			EarliestArrival: EarliestArrival(members, now.Location()),
		}
		for _, g := range v.PoGroups {
			v.TotalContainers += g.Quantity
		}
		views = append(views, v)
	}
	sort.SliceStable(views, func(i, j int) bool {
		return arrivalLess(views[i].EarliestArrival, views[j].EarliestArrival, views[i].VesselName, views[j].VesselName)
	})
	return views
}

func buildPoGroups(records []models.ShipmentRecord, now time.Time) []models.PoGroup {
	index := make(map[string]int)
	var groups []models.PoGroup
	for _, r := range records {
		po := r.PO
		if strings.TrimSpace(po) == "" {
			po = NoPONumber
		}
		i, ok := index[po]
		if !ok {
			i = len(groups)
			index[po] = i
			groups = append(groups, models.PoGroup{PoNumber: po, CargoType: r.CargoType})
		}
		groups[i].Quantity += models.ContainerCount(r)
		groups[i].Shipments = append(groups[i].Shipments, Annotate(r, now))
	}

	for i := range groups {
		shipments := groups[i].Shipments
		sort.SliceStable(shipments, func(a, b int) bool {
			return shipments[a].BL < shipments[b].BL
		})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].CargoType != groups[j].CargoType {
			return groups[i].CargoType < groups[j].CargoType
		}
		return groups[i].PoNumber < groups[j].PoNumber
	})
	return groups
}
