package service

import (
	"math"
	"strings"
	"time"

	"github.com/fupdash/backend/internal/dates"
	"github.com/fupdash/backend/internal/models"
)

const (
	secondsPerDay    = 24 * 60 * 60
	mediumRiskWindow = 7
)

// ClassifyRisk returns the days left until the free time deadline and the
// resulting risk tier. Dates are resolved in now's location.
func ClassifyRisk(r models.ShipmentRecord, now time.Time) (*int, models.Risk) {
	if IsDelivered(r) {
		return nil, models.RiskNone
	}
	deadline, ok := ResolveDeadline(r, now.Location())
	if !ok {
		return nil, models.RiskLow
	}
	days := daysUntil(deadline, now)
	switch {
	case days < 0:
		return &days, models.RiskHigh
	case days <= mediumRiskWindow:
		return &days, models.RiskMedium
	default:
		return &days, models.RiskLow
	}
}

// daysUntil works in seconds; time.Duration saturates at about 292 years.
func daysUntil(deadline, now time.Time) int {
	secs := float64(deadline.Unix()-now.Unix()) + float64(deadline.Nanosecond()-now.Nanosecond())/1e9
	return int(math.Ceil(secs / secondsPerDay))
}

func Annotate(r models.ShipmentRecord, now time.Time) models.Shipment {
	days, risk := ClassifyRisk(r, now)
	return models.Shipment{ShipmentRecord: r, DaysToDeadline: days, Risk: risk}
}

func AnnotateAll(records []models.ShipmentRecord, now time.Time) []models.Shipment {
	out := make([]models.Shipment, 0, len(records))
	for _, r := range records {
		out = append(out, Annotate(r, now))
	}
	return out
}

func IsDelivered(r models.ShipmentRecord) bool {
	return strings.Contains(strings.ToLower(r.Status), "delivered")
}

// ResolveDeadline parses FREE TIME DEADLINE, discarding pre-1950 artifacts.
func ResolveDeadline(r models.ShipmentRecord, loc *time.Location) (time.Time, bool) {
	deadline, ok := dates.Parse(r.Deadline, loc)
	if !ok || !dates.Plausible(deadline) {
		return time.Time{}, false
	}
	return deadline, true
}

// OverallRisk ranks high over medium; a group is none only when every
// shipment is delivered, and low otherwise.
func OverallRisk(c models.RiskCounts) models.Risk {
	switch {
	case c.High > 0:
		return models.RiskHigh
	case c.Medium > 0:
		return models.RiskMedium
	case c.Total() > 0 && c.None == c.Total():
		return models.RiskNone
	default:
		return models.RiskLow
	}
}
