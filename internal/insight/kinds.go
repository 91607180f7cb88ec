package insight

import (
	"encoding/json"
	"time"
)

// Policy selects how a kind's cache window works.
type Policy int

const (
	// PolicyDaily caches one artifact per calendar day; the content is
	// the same however many times the user opens the app.
	PolicyDaily Policy = iota
	// PolicyRolling caches for a fixed duration and goes stale early
	// when the user writes new source material.
	PolicyRolling
	// PolicyKeyed caches per item key, scoped to the current day so
	// rows do not pile up forever.
	PolicyKeyed
)

// Kind names. These discriminate the cache namespace in storage.
const (
	KindDaily       = "daily"       // daily horoscope
	KindFrase       = "frase"       // cutting phrase of the day
	KindTransit     = "transit"     // one transit interpretation, keyed by its description
	KindFilo        = "filo"        // multi-entry journal pattern analysis
	KindChat        = "chat"        // chat answer, keyed by the question
	KindRiflessione = "riflessione" // journal reflection, keyed by the entry
)

// KindSpec is one row of the policy table: how a kind caches, what it
// costs, and what it needs before it can run. All per-kind behavior
// lives here; GetOrGenerate itself is generic.
type KindSpec struct {
	Policy     Policy
	Cost       int
	Window     time.Duration // PolicyRolling only
	MinSources int           // journal entries required before generating
	// CheckPayload rejects corrupted cached rows for kinds that store
	// structure; a rejected row is a cache miss, never an error.
	CheckPayload func(payload string) bool
}

// Kinds is the declarative kind table. Costs and windows are product
// tuning, not derived values.
var Kinds = map[string]KindSpec{
	KindDaily:   {Policy: PolicyDaily, Cost: 1},
	KindFrase:   {Policy: PolicyDaily, Cost: 1},
	KindTransit: {Policy: PolicyKeyed, Cost: 1},
	KindFilo: {
		Policy:       PolicyRolling,
		Cost:         2,
		Window:       48 * time.Hour,
		MinSources:   3,
		CheckPayload: func(p string) bool { return json.Valid([]byte(p)) },
	},
	KindChat:        {Policy: PolicyKeyed, Cost: 1},
	KindRiflessione: {Policy: PolicyKeyed, Cost: 1},
}
