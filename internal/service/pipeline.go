package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/fupdash/backend/internal/i18n"
	"github.com/fupdash/backend/internal/models"
)

type View string

const (
	ViewVessel    View = "vessel"
	ViewPO        View = "po"
	ViewWarehouse View = "warehouse"
	ViewDetailed  View = "detailed"
)

func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return ViewVessel, nil
	case ViewVessel, ViewPO, ViewWarehouse, ViewDetailed:
		return v, nil
	default:
		return "", fmt.Errorf("unknown view %q", s)
	}
}

type Query struct {
	Filter Filter
	View   View
	Sort   SortSpec
	Labels i18n.Labels
}

type Result struct {
	View            View                        `json:"view"`
	Filtered        []models.ShipmentRecord     `json:"filtered"`
	TotalContainers int                         `json:"total_containers"`
	Groups          []models.GroupSummary       `json:"groups"`
	Detailed        []models.DetailedVesselView `json:"detailed"`
	Status          []StatusCount               `json:"status"`
	Deadlines       []DeadlineBin               `json:"deadlines"`
	Stages          []FilterStage               `json:"stages"`
	GeneratedAt     time.Time                   `json:"generated_at"`
}

// Run filters records and builds the requested view. It reads no state
// beyond its arguments, so equal inputs give equal results.
func Run(records []models.ShipmentRecord, q Query, now time.Time) Result {
	if q.View == "" {
		q.View = ViewVessel
	}
	if q.Sort.Key == "" {
		q.Sort = DefaultSort
	}
	if q.Labels.Lang == "" {
		q.Labels = i18n.Default()
	}

	filtered := ApplyFilter(records, q.Filter, q.Labels, now.Location())
	res := Result{
		View:            q.View,
		Filtered:        filtered.Records,
		TotalContainers: TotalContainers(filtered.Records),
		Groups:          []models.GroupSummary{},
		Detailed:        []models.DetailedVesselView{},
		Status:          []StatusCount{},
		Deadlines:       []DeadlineBin{},
		Stages:          filtered.Stages,
		GeneratedAt:     now,
	}

	if q.View == ViewDetailed {
		res.Detailed = BuildDetailedView(filtered.Records, q.Labels, now)
		return res
	}

	var groups []models.GroupSummary
	switch q.View {
	case ViewPO:
		groups = ByPO(filtered.Records, q.Labels, now)
	case ViewWarehouse:
		groups = ByWarehouse(filtered.Records, q.Labels, now)
	default:
		groups = ByVessel(filtered.Records, q.Labels, now)
	}
	for i := range groups {
		groups[i].Shipments = SortShipments(groups[i].Shipments, q.Sort, now.Location())
	}
	res.Groups = groups
	res.Status = StatusBreakdown(filtered.Records, q.Labels)
	res.Deadlines = DeadlineDistribution(filtered.Records, q.Labels, now)
	return res
}
