package clock_test

import (
	"testing"
	"time"

	"github.com/fupdash/backend/internal/clock"
)

func TestRealClockNowUsesLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	now := clock.RealClock{Location: loc}.Now()
	if now.IsZero() {
		t.Fatalf("Now() returned zero time")
	}
	if now.Location() != loc {
		t.Fatalf("expected location %v, got %v", loc, now.Location())
	}
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	if got := (clock.FixedClock{At: at}).Now(); !got.Equal(at) {
		t.Fatalf("expected %s, got %s", at, got)
	}
}

func TestParseMoment(t *testing.T) {
	got, err := clock.ParseMoment("2024-05-01", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %s", got)
	}

	got, err = clock.ParseMoment("2024-05-01T10:00:00Z", time.FixedZone("UTC+2", 2*3600))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 12 {
		t.Fatalf("expected moment converted to location, got %s", got)
	}

	if _, err := clock.ParseMoment("yesterday", time.UTC); err == nil {
		t.Fatalf("expected error for unparseable moment")
	}
}
