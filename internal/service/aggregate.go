package service

import (
	"sort"
	"strings"
	"time"

	"github.com/fupdash/backend/internal/dates"
	"github.com/fupdash/backend/internal/i18n"
	"github.com/fupdash/backend/internal/models"
)

// KeyFunc maps a record to the name of the group it belongs to.
type KeyFunc func(models.ShipmentRecord) string

// ColumnKey upper-cases and trims value, falling back to sentinel when blank.
func ColumnKey(value func(models.ShipmentRecord) string, sentinel string) KeyFunc {
	return func(r models.ShipmentRecord) string {
		return normalizedKey(value(r), sentinel)
	}
}

// VesselKey groups by vessel and voyage as "VESSEL - VOYAGE", or just the
// vessel when the voyage is blank.
func VesselKey(sentinel string) KeyFunc {
	return func(r models.ShipmentRecord) string {
		name := normalizedKey(r.Vessel, sentinel)
		if voyage := normalizedKey(r.Voyage, ""); voyage != "" {
			return name + " - " + voyage
		}
		return name
	}
}

// GroupBy buckets records by key and summarizes each bucket. Groups are
// ordered by earliest arrival, then by name when no arrival is known.
func GroupBy(records []models.ShipmentRecord, key KeyFunc, now time.Time) []models.GroupSummary {
	index := make(map[string]int)
	buckets := make([][]models.ShipmentRecord, 0)
	names := make([]string, 0)
	for _, r := range records {
		name := key(r)
		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			buckets = append(buckets, nil)
			names = append(names, name)
		}
		buckets[i] = append(buckets[i], r)
	}

	groups := make([]models.GroupSummary, 0, len(buckets))
	for i, members := range buckets {
		groups = append(groups, summarize(names[i], members, now))
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return arrivalLess(groups[i].EarliestArrival, groups[j].EarliestArrival, groups[i].Name, groups[j].Name)
	})
	return groups
}

func ByVessel(records []models.ShipmentRecord, labels i18n.Labels, now time.Time) []models.GroupSummary {
	return GroupBy(records, VesselKey(labels.NoVessel), now)
}

func ByPO(records []models.ShipmentRecord, labels i18n.Labels, now time.Time) []models.GroupSummary {
	return GroupBy(records, ColumnKey(func(r models.ShipmentRecord) string { return r.PO }, labels.NoPO), now)
}

func ByWarehouse(records []models.ShipmentRecord, labels i18n.Labels, now time.Time) []models.GroupSummary {
	return GroupBy(records, ColumnKey(func(r models.ShipmentRecord) string { return r.Warehouse }, labels.NoWarehouse), now)
}

func summarize(name string, members []models.ShipmentRecord, now time.Time) models.GroupSummary {
	g := models.GroupSummary{
		Name:      name,
		Shipments: AnnotateAll(members, now),
	}
	for _, s := range g.Shipments {
		g.RiskCounts.Add(s.Risk)
		g.TotalContainers += models.ContainerCount(s.ShipmentRecord)
	}
	g.OverallRisk = OverallRisk(g.RiskCounts)
	g.EarliestArrival = EarliestArrival(members, now.Location())
	return g
}

// EarliestArrival is the minimum resolvable ACTUAL ETA, nil when none resolve.
func EarliestArrival(records []models.ShipmentRecord, loc *time.Location) *time.Time {
	var earliest *time.Time
	for _, r := range records {
		eta, ok := dates.Parse(r.ETA, loc)
		if !ok {
			continue
		}
		if earliest == nil || eta.Before(*earliest) {
			e := eta
			earliest = &e
		}
	}
	return earliest
}

// TotalContainers sums FCL+LCL over records without deduplicating BLs.
func TotalContainers(records []models.ShipmentRecord) int {
	total := 0
	for _, r := range records {
		total += models.ContainerCount(r)
	}
	return total
}

func arrivalLess(a, b *time.Time, nameA, nameB string) bool {
	switch {
	case a != nil && b != nil:
		return a.Before(*b)
	case a != nil:
		return true
	case b != nil:
		return false
	default:
		return strings.ToLower(nameA) < strings.ToLower(nameB)
	}
}

func normalizedKey(value, sentinel string) string {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return sentinel
	}
	return v
}
