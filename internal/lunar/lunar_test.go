package lunar

import (
	"testing"
	"time"

	"Astrale/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestEventAt_ExactDate(t *testing.T) {
	e, ok := EventAt(date(2026, time.January, 12))
	if !ok {
		t.Fatal("expected an event on the tabulated date")
	}
	if e.Phase != model.NewMoon || e.Sign != model.Capricorno {
		t.Errorf("got %s in %s, want new moon in Capricorno", e.Phase, e.Sign)
	}
}

func TestEventAt_WindowEdges(t *testing.T) {
	// 2 days either side is still in view.
	for _, d := range []time.Time{
		date(2026, time.January, 10),
		date(2026, time.January, 14),
	} {
		e, ok := EventAt(d)
		if !ok || e.Phase != model.NewMoon || e.Sign != model.Capricorno {
			t.Errorf("%s: expected the Capricorno new moon in view", d.Format("2006-01-02"))
		}
	}

	// 3 days after is outside the window of every entry.
	if e, ok := EventAt(date(2026, time.January, 15)); ok {
		t.Errorf("2026-01-15: expected no event, got %s in %s", e.Phase, e.Sign)
	}
}

func TestEventAt_BetweenEvents(t *testing.T) {
	if e, ok := EventAt(date(2026, time.February, 3)); ok {
		t.Errorf("expected no event between tabulated dates, got %s in %s", e.Phase, e.Sign)
	}
}

func TestEventAt_UncoveredYear(t *testing.T) {
	if _, ok := EventAt(date(2031, time.June, 1)); ok {
		t.Error("expected no event for a year outside the table")
	}
}

func TestTable_SpacingKeepsWindowsDisjoint(t *testing.T) {
	for i := 1; i < len(events); i++ {
		gap := events[i].Date.Sub(events[i-1].Date).Hours() / 24
		if gap < 13 {
			t.Errorf("entries %d and %d only %.0f days apart", i-1, i, gap)
		}
	}
}
