package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fupdash/backend/internal/i18n"
	"github.com/fupdash/backend/internal/models"
)

func TestByVesselMergesArrivals(t *testing.T) {
	records := []models.ShipmentRecord{
		{Vessel: "MAERSK LINE", ETA: models.NumberCell(44932), FCL: models.NumberCell(2), LCL: models.TextCell("1")},
		{Vessel: " maersk line ", ETA: models.NumberCell(44927), FCL: models.TextCell("3 boxes")},
	}

	groups := ByVessel(records, i18n.Default(), testNow)
	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, "MAERSK LINE", g.Name)
	require.NotNil(t, g.EarliestArrival)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), *g.EarliestArrival)
	assert.Equal(t, 6, g.TotalContainers)
}

func TestByVesselComposesVoyage(t *testing.T) {
	records := []models.ShipmentRecord{
		{Vessel: "MSC Anna", Voyage: "v12"},
		{Vessel: "MSC ANNA"},
		{Voyage: "X1"},
	}
	groups := ByVessel(records, i18n.Default(), testNow)
	names := groupNames(groups)
	assert.ElementsMatch(t, []string{"MSC ANNA - V12", "MSC ANNA", "No Vessel - X1"}, names)
}

func TestByPOBlankUsesSentinel(t *testing.T) {
	labels := i18n.For("pt")
	records := []models.ShipmentRecord{
		{PO: "  ", BL: "A"},
		{PO: "4500012345", BL: "B"},
	}
	groups := ByPO(records, labels, testNow)
	assert.ElementsMatch(t, []string{"Sem PO", "4500012345"}, groupNames(groups))
	for _, g := range groups {
		if g.Name == "Sem PO" {
			require.Len(t, g.Shipments, 1)
			assert.Equal(t, "A", g.Shipments[0].BL)
		}
	}
}

func TestByWarehouse(t *testing.T) {
	records := []models.ShipmentRecord{
		{Warehouse: "TECON"},
		{Warehouse: "clia"},
		{Warehouse: ""},
		{Warehouse: "tecon"},
	}
	groups := ByWarehouse(records, i18n.Default(), testNow)
	// no arrivals anywhere, so alphabetical
	assert.Equal(t, []string{"CLIA", "No Warehouse", "TECON"}, groupNames(groups))
	assert.Len(t, groups[2].Shipments, 2)
}

func TestGroupOrdering(t *testing.T) {
	records := []models.ShipmentRecord{
		{PO: "zeta"},
		{PO: "late", ETA: serial(20)},
		{PO: "alpha"},
		{PO: "early", ETA: serial(3)},
		{PO: "tie-a", ETA: serial(10)},
		{PO: "tie-b", ETA: serial(10)},
		{PO: "late", ETA: models.TextCell("garbage")},
	}
	groups := ByPO(records, i18n.Default(), testNow)
	assert.Equal(t, []string{"EARLY", "TIE-A", "TIE-B", "LATE", "ALPHA", "ZETA"}, groupNames(groups))
}

func TestGroupConservation(t *testing.T) {
	records := []models.ShipmentRecord{
		{Vessel: "A", Status: "Delivered", FCL: models.NumberCell(2), Deadline: serial(1)},
		{Vessel: "A", FCL: models.TextCell("x"), LCL: models.NumberCell(1), Deadline: serial(5)},
		{Vessel: "A", FCL: models.NumberCell(4), Deadline: serial(15)},
		{Vessel: "B", Status: "delivered", LCL: models.TextCell("7")},
		{Vessel: "B", Status: "DELIVERED"},
		{Vessel: "", BL: "dup", FCL: models.NumberCell(1)},
		{Vessel: "", BL: "dup", FCL: models.NumberCell(1)},
	}

	groups := ByVessel(records, i18n.Default(), testNow)
	total := 0
	for _, g := range groups {
		sum := 0
		for _, s := range g.Shipments {
			sum += models.ContainerCount(s.ShipmentRecord)
		}
		assert.Equal(t, sum, g.TotalContainers, g.Name)
		assert.Equal(t, len(g.Shipments), g.RiskCounts.Total(), g.Name)
		total += g.TotalContainers
	}
	assert.Equal(t, TotalContainers(records), total)
	assert.Equal(t, 16, total)

	byName := map[string]models.GroupSummary{}
	for _, g := range groups {
		byName[g.Name] = g
	}
	assert.Equal(t, models.RiskHigh, byName["A"].OverallRisk)
	assert.Equal(t, models.RiskNone, byName["B"].OverallRisk)
	assert.Equal(t, models.RiskLow, byName["No Vessel"].OverallRisk)
	assert.Equal(t, 2, byName["No Vessel"].TotalContainers)
}

func groupNames(groups []models.GroupSummary) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Name)
	}
	return out
}
