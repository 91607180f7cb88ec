package model

// BodyPosition is the live position of a body on the ecliptic.
// Derived fresh from the clock on every request, never persisted.
type BodyPosition struct {
	Body      string
	Longitude float64 // degrees, [0,360)
	Sign      ZodiacSign
}

// NatalPlacement is the sign a body occupied at the user's birth.
// Created once during onboarding, sign-level precision only.
type NatalPlacement struct {
	Body string
	Sign ZodiacSign
}
