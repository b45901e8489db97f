// Package dates turns heterogeneous spreadsheet date cells into calendar dates.
//
// A resolved date is always midnight of a calendar day in the caller's location.
// Parsing never fails loudly: anything unrecognised is reported as unknown.
package dates

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fupdash/backend/internal/models"
)

// serialEpochOffset is the day serial of 1970-01-01 in the 1899-12-30 based system.
const serialEpochOffset = 25569

// maxSerial is 9999-12-31, the last day a spreadsheet can represent.
const maxSerial = 2958465

// MinPlausibleYear marks deadlines produced by blank cells formatted as dates.
const MinPlausibleYear = 1950

var (
	serialPattern    = regexp.MustCompile(`^\d{5}$`)
	dayFirstPattern  = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{4})`)
	formattedLayouts = []string{
		"01/02/2006",
		"1/2/2006",
		"1/2/06",
		"01/02/2006 15:04",
		"01/02/2006 15:04:05",
		"1/2/2006 15:04:05",
		"2006-01-02",
		"2006-1-2",
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006/01/02",
		"2006/1/2",
		"01-02-2006",
		"1-2-2006",
		"2006.01.02",
		"1.2.2006",
		"02-Jan-2006",
		"2-Jan-06",
		"2 Jan 2006",
		"Jan 2, 2006",
		"January 2, 2006",
	}
)

// Parse resolves a raw cell to a calendar date in loc.
func Parse(c models.Cell, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	if c.IsNumber {
		return FromSerial(c.Number, loc)
	}
	s := strings.TrimSpace(c.Text)
	if s == "" {
		return time.Time{}, false
	}
	if serialPattern.MatchString(s) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return time.Time{}, false
		}
		return FromSerial(float64(n), loc)
	}
	if strings.ContainsAny(s, "/-.") {
		return parseFormatted(dayFirstPattern.ReplaceAllString(s, "$2/$1/$3"), loc)
	}
	return time.Time{}, false
}

// FromSerial converts a spreadsheet day serial. Serials below 1 or past
// 9999-12-31 are unknown.
func FromSerial(serial float64, loc *time.Location) (time.Time, bool) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 1 || serial >= maxSerial+1 {
		return time.Time{}, false
	}
	days := int(math.Floor(serial - serialEpochOffset))
	return time.Date(1970, time.January, 1+days, 0, 0, 0, 0, loc), true
}

// Day truncates t to midnight of its calendar day in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Plausible reports whether a resolved deadline is a real date rather than
// the artifact of an empty date-formatted cell.
func Plausible(t time.Time) bool {
	return t.Year() >= MinPlausibleYear
}

func parseFormatted(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range formattedLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return Day(t, loc), true
		}
	}
	return time.Time{}, false
}
