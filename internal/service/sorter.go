package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fupdash/backend/internal/dates"
	"github.com/fupdash/backend/internal/models"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// KeyDaysToDeadline sorts by the derived days-remaining value.
const KeyDaysToDeadline = "daysToDeadline"

type SortSpec struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// DefaultSort orders the most urgent shipments first.
var DefaultSort = SortSpec{Key: KeyDaysToDeadline, Direction: Asc}

var sortAliases = map[string]string{
	"days remaining": KeyDaysToDeadline,
	"dias restantes": KeyDaysToDeadline,
	"daystodeadline": KeyDaysToDeadline,
}

// ParseSortKey resolves a column name or alias to a sort key.
func ParseSortKey(s string) (string, error) {
	key := strings.TrimSpace(s)
	if key == "" {
		return DefaultSort.Key, nil
	}
	if alias, ok := sortAliases[strings.ToLower(key)]; ok {
		return alias, nil
	}
	for _, col := range models.Columns {
		if strings.EqualFold(col, key) {
			return col, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", s)
	}
}

// SortShipments returns a sorted copy of shipments. Date keys keep unknown
// dates last in both directions.
func SortShipments(shipments []models.Shipment, spec SortSpec, loc *time.Location) []models.Shipment {
	out := make([]models.Shipment, len(shipments))
	copy(out, shipments)

	flip := func(c int) int {
		if spec.Direction == Desc {
			return -c
		}
		return c
	}

	var less func(a, b models.Shipment) bool
	switch spec.Key {
	case models.ColETA, models.ColDeadline:
		col := spec.Key
		less = func(a, b models.Shipment) bool {
			da, okA := dateValue(a, col, loc)
			db, okB := dateValue(b, col, loc)
			switch {
			case okA && okB:
				return flip(da.Compare(db)) < 0
			case okA:
				return true
			default:
				return false
			}
		}
	case KeyDaysToDeadline:
		less = func(a, b models.Shipment) bool {
			return flip(compareDays(a.DaysToDeadline, b.DaysToDeadline)) < 0
		}
	default:
		col := spec.Key
		less = func(a, b models.Shipment) bool {
			return flip(strings.Compare(strings.ToLower(a.Field(col)), strings.ToLower(b.Field(col)))) < 0
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func dateValue(s models.Shipment, col string, loc *time.Location) (time.Time, bool) {
	if col == models.ColETA {
		return dates.Parse(s.ETA, loc)
	}
	return dates.Parse(s.Deadline, loc)
}

// compareDays treats nil as positive infinity.
func compareDays(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
