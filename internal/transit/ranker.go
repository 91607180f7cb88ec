// Package transit cross-references live body positions against a
// user's natal chart and surfaces the few aspects worth talking about.
package transit

import (
	"fmt"
	"log"
	"sort"
	"time"

	"Astrale/internal/aspect"
	"Astrale/internal/ephemeris"
	"Astrale/internal/model"
)

// TopTransits is how many signals survive the ranking.
const TopTransits = 3

// exactnessPenalty docks significance per degree of deviation from the
// exact aspect angle. Tuning parameter, paired with the body weights.
const exactnessPenalty = 2.0

// Significant computes today's transits against the natal placements
// and returns at most the top 3 by significance. An empty result means
// a quiet sky; the caller decides what to say about that.
func Significant(t time.Time, natal []model.NatalPlacement) []model.TransitSignal {
	return Rank(ephemeris.PositionsAt(t), natal)
}

// Rank scores every (transiting body, natal placement) pair that forms
// an aspect and keeps the top 3. A body never transits its own natal
// self in this model. Placements with an unrecognized sign are skipped,
// never fatal. Ties keep iteration order (stable sort).
func Rank(positions []model.BodyPosition, natal []model.NatalPlacement) []model.TransitSignal {
	var signals []model.TransitSignal

	for _, pos := range positions {
		for _, np := range natal {
			if pos.Body == np.Body {
				continue
			}
			natalLon := model.MidpointLongitude(np.Sign)
			if natalLon < 0 {
				log.Printf("[WARN] natal %s has unknown sign %q, skipping", np.Body, np.Sign)
				continue
			}
			m, ok := aspect.Match(pos.Longitude, natalLon)
			if !ok {
				continue
			}
			score := float64(ephemeris.Weight(pos.Body)) + (10 - m.Exactness*exactnessPenalty)
			signals = append(signals, model.TransitSignal{
				TransitBody:  pos.Body,
				Aspect:       m.Type,
				NatalBody:    np.Body,
				Description:  fmt.Sprintf("%s in %s a %s natale", pos.Body, m.Type.Italian(), np.Body),
				Significance: score,
			})
		}
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Significance > signals[j].Significance
	})
	if len(signals) > TopTransits {
		signals = signals[:TopTransits]
	}
	return signals
}
