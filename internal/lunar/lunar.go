// Package lunar answers "is there a new or full moon around today"
// from a static calendar table. No computation, pure lookup.
package lunar

import (
	"time"

	"Astrale/internal/model"
)

// WindowDays puts an event in view from 2 days before through 2 days
// after its tabulated date (a 5-day window).
const WindowDays = 2

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// events is chronologically ordered and spans late 2025 through 2026.
// Consecutive events are ≥ 13 days apart so visibility windows never
// overlap; if the table is ever edited so they do, first match wins.
var events = []model.LunarEvent{
	{Date: day(2025, time.September, 3), Phase: model.FullMoon, Sign: model.Pesci},
	{Date: day(2025, time.September, 18), Phase: model.NewMoon, Sign: model.Vergine},
	{Date: day(2025, time.October, 2), Phase: model.FullMoon, Sign: model.Ariete},
	{Date: day(2025, time.October, 17), Phase: model.NewMoon, Sign: model.Bilancia},
	{Date: day(2025, time.October, 31), Phase: model.FullMoon, Sign: model.Toro},
	{Date: day(2025, time.November, 15), Phase: model.NewMoon, Sign: model.Scorpione},
	{Date: day(2025, time.November, 29), Phase: model.FullMoon, Sign: model.Gemelli},
	{Date: day(2025, time.December, 14), Phase: model.NewMoon, Sign: model.Sagittario},
	{Date: day(2025, time.December, 29), Phase: model.FullMoon, Sign: model.Cancro},
	{Date: day(2026, time.January, 12), Phase: model.NewMoon, Sign: model.Capricorno},
	{Date: day(2026, time.January, 26), Phase: model.FullMoon, Sign: model.Leone},
	{Date: day(2026, time.February, 10), Phase: model.NewMoon, Sign: model.Acquario},
	{Date: day(2026, time.February, 24), Phase: model.FullMoon, Sign: model.Vergine},
	{Date: day(2026, time.March, 11), Phase: model.NewMoon, Sign: model.Pesci},
	{Date: day(2026, time.March, 25), Phase: model.FullMoon, Sign: model.Bilancia},
	{Date: day(2026, time.April, 9), Phase: model.NewMoon, Sign: model.Ariete},
	{Date: day(2026, time.April, 23), Phase: model.FullMoon, Sign: model.Scorpione},
	{Date: day(2026, time.May, 8), Phase: model.NewMoon, Sign: model.Toro},
	{Date: day(2026, time.May, 22), Phase: model.FullMoon, Sign: model.Sagittario},
	{Date: day(2026, time.June, 6), Phase: model.NewMoon, Sign: model.Gemelli},
	{Date: day(2026, time.June, 20), Phase: model.FullMoon, Sign: model.Capricorno},
	{Date: day(2026, time.July, 5), Phase: model.NewMoon, Sign: model.Cancro},
	{Date: day(2026, time.July, 19), Phase: model.FullMoon, Sign: model.Acquario},
	{Date: day(2026, time.August, 3), Phase: model.NewMoon, Sign: model.Leone},
	{Date: day(2026, time.August, 17), Phase: model.FullMoon, Sign: model.Pesci},
	{Date: day(2026, time.September, 1), Phase: model.NewMoon, Sign: model.Vergine},
	{Date: day(2026, time.September, 15), Phase: model.FullMoon, Sign: model.Ariete},
	{Date: day(2026, time.October, 1), Phase: model.NewMoon, Sign: model.Bilancia},
	{Date: day(2026, time.October, 15), Phase: model.FullMoon, Sign: model.Toro},
	{Date: day(2026, time.October, 30), Phase: model.NewMoon, Sign: model.Scorpione},
	{Date: day(2026, time.November, 13), Phase: model.FullMoon, Sign: model.Gemelli},
	{Date: day(2026, time.November, 28), Phase: model.NewMoon, Sign: model.Sagittario},
	{Date: day(2026, time.December, 13), Phase: model.FullMoon, Sign: model.Cancro},
	{Date: day(2026, time.December, 27), Phase: model.NewMoon, Sign: model.Capricorno},
}

// EventAt returns the event whose window covers today, scanning the
// table in order. A false second return means no event in view or a
// year the table does not cover.
func EventAt(today time.Time) (model.LunarEvent, bool) {
	d := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for _, e := range events {
		diff := d.Sub(e.Date).Hours() / 24
		if diff < 0 {
			diff = -diff
		}
		if diff <= WindowDays {
			return e, true
		}
	}
	return model.LunarEvent{}, false
}
