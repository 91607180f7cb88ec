package model

import "time"

// LunarPhase is the tabulated moon phase kind.
type LunarPhase string

const (
	NewMoon  LunarPhase = "new_moon"
	FullMoon LunarPhase = "full_moon"
)

// Italian returns the phase name used in user-facing text.
func (p LunarPhase) Italian() string {
	if p == NewMoon {
		return "Luna Nuova"
	}
	return "Luna Piena"
}

// LunarEvent is one tabulated new or full moon. Static reference data.
type LunarEvent struct {
	Date  time.Time // midnight UTC of the calendar day
	Phase LunarPhase
	Sign  ZodiacSign
}
