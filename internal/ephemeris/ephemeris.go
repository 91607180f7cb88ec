// Package ephemeris computes approximate ecliptic longitudes from
// hand-tuned linear models. This is deliberately coarse: good enough
// to place a body in a sign most of the time, nowhere near a real
// ephemeris. Known accuracy limitation, not a bug.
package ephemeris

import (
	"math"
	"time"

	"Astrale/internal/model"
)

// bodyModel is one body's linear longitude model:
// longitude = (base + dayOfYear * rate) mod 360.
// Bodies whose real motion tracks the Sun (Mercurio, Venere) are
// modeled as a fixed offset from the computed Sole longitude instead
// of carrying their own rate.
type bodyModel struct {
	name      string
	base      float64 // degrees at day 0 of the year
	rate      float64 // degrees per day
	sunOffset float64
	tiesSun   bool
	weight    int // transit significance weight; slow movers weigh more
}

var bodies = []bodyModel{
	{name: "Sole", base: 280, rate: 0.9856, weight: 3},
	{name: "Luna", base: 125, rate: 13.176, weight: 2},
	{name: "Mercurio", tiesSun: true, sunOffset: 14, weight: 2},
	{name: "Venere", tiesSun: true, sunOffset: -32, weight: 2},
	{name: "Marte", base: 86, rate: 0.524, weight: 4},
	{name: "Giove", base: 62, rate: 0.083, weight: 6},
	{name: "Saturno", base: 347, rate: 0.034, weight: 7},
	{name: "Urano", base: 54, rate: 0.012, weight: 8},
	{name: "Nettuno", base: 356, rate: 0.006, weight: 8},
	{name: "Plutone", base: 301, rate: 0.004, weight: 9},
}

// PositionsAt returns every tracked body's approximate position at t.
// Always returns the full list; timestamps are trusted.
func PositionsAt(t time.Time) []model.BodyPosition {
	day := float64(t.YearDay())

	sole := normalize(bodies[0].base + day*bodies[0].rate)

	out := make([]model.BodyPosition, 0, len(bodies))
	for _, b := range bodies {
		var lon float64
		if b.tiesSun {
			lon = normalize(sole + b.sunOffset)
		} else {
			lon = normalize(b.base + day*b.rate)
		}
		out = append(out, model.BodyPosition{
			Body:      b.name,
			Longitude: lon,
			Sign:      model.SignForLongitude(lon),
		})
	}
	return out
}

// Weight returns the significance weight for a body, 0 if unknown.
func Weight(body string) int {
	for _, b := range bodies {
		if b.name == body {
			return b.weight
		}
	}
	return 0
}

func normalize(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}
	return lon
}
