package ephemeris

import (
	"math"
	"testing"
	"time"

	"Astrale/internal/model"
)

func TestPositionsAt_FullList(t *testing.T) {
	at := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	positions := PositionsAt(at)

	if len(positions) != 10 {
		t.Fatalf("expected 10 bodies, got %d", len(positions))
	}
	for _, p := range positions {
		if p.Longitude < 0 || p.Longitude >= 360 {
			t.Errorf("%s longitude %f outside [0,360)", p.Body, p.Longitude)
		}
		if model.SignIndex(p.Sign) == -1 {
			t.Errorf("%s has invalid sign %q", p.Body, p.Sign)
		}
		if p.Sign != model.SignForLongitude(p.Longitude) {
			t.Errorf("%s sign %s does not match longitude %f", p.Body, p.Sign, p.Longitude)
		}
	}
}

func TestPositionsAt_SunTiedBodies(t *testing.T) {
	// Mercurio and Venere ride a fixed offset from Sole, on any day.
	for _, at := range []time.Time{
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.July, 20, 12, 0, 0, 0, time.UTC),
		time.Date(2026, time.December, 31, 23, 0, 0, 0, time.UTC),
	} {
		byName := make(map[string]model.BodyPosition)
		for _, p := range PositionsAt(at) {
			byName[p.Body] = p
		}

		sole := byName["Sole"].Longitude
		checkOffset(t, at, "Mercurio", byName["Mercurio"].Longitude, sole, 14)
		checkOffset(t, at, "Venere", byName["Venere"].Longitude, sole, -32)
	}
}

func checkOffset(t *testing.T, at time.Time, body string, lon, sole, offset float64) {
	t.Helper()
	want := math.Mod(sole+offset+360, 360)
	if math.Abs(lon-want) > 1e-9 {
		t.Errorf("%s: %s at %f, want %f (Sole %f %+.0f)", at.Format("2006-01-02"), body, lon, want, sole, offset)
	}
}

func TestPositionsAt_Deterministic(t *testing.T) {
	// Same calendar day, same positions: the model only reads day of year.
	morning := time.Date(2026, time.May, 5, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.May, 5, 23, 0, 0, 0, time.UTC)

	a := PositionsAt(morning)
	b := PositionsAt(evening)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("%s moved within a day: %+v vs %+v", a[i].Body, a[i], b[i])
		}
	}
}

func TestWeight(t *testing.T) {
	if Weight("Plutone") <= Weight("Sole") {
		t.Error("slow movers must weigh more than fast ones")
	}
	if Weight("Saturno") != 7 {
		t.Errorf("Saturno weight = %d, want 7", Weight("Saturno"))
	}
	if Weight("Cerere") != 0 {
		t.Error("unknown body must weigh 0")
	}
}
