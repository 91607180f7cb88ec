package model

import "math"

// ZodiacSign is one of the twelve signs. Names are Italian, matching
// what the app shows to users and what onboarding stores.
type ZodiacSign string

const (
	Ariete     ZodiacSign = "Ariete"
	Toro       ZodiacSign = "Toro"
	Gemelli    ZodiacSign = "Gemelli"
	Cancro     ZodiacSign = "Cancro"
	Leone      ZodiacSign = "Leone"
	Vergine    ZodiacSign = "Vergine"
	Bilancia   ZodiacSign = "Bilancia"
	Scorpione  ZodiacSign = "Scorpione"
	Sagittario ZodiacSign = "Sagittario"
	Capricorno ZodiacSign = "Capricorno"
	Acquario   ZodiacSign = "Acquario"
	Pesci      ZodiacSign = "Pesci"
)

// Signs lists the zodiac in ecliptic order, starting at 0° Ariete.
// Each sign spans 30° of longitude.
var Signs = [12]ZodiacSign{
	Ariete, Toro, Gemelli, Cancro, Leone, Vergine,
	Bilancia, Scorpione, Sagittario, Capricorno, Acquario, Pesci,
}

// SignForLongitude maps an ecliptic longitude (degrees) to its sign.
// Longitudes outside [0,360) are normalized first.
func SignForLongitude(lon float64) ZodiacSign {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}
	return Signs[int(lon/30)%12]
}

// SignIndex returns the position of sign in the zodiac (0 = Ariete),
// or -1 for an unrecognized name.
func SignIndex(sign ZodiacSign) int {
	for i, s := range Signs {
		if s == sign {
			return i
		}
	}
	return -1
}

// MidpointLongitude returns the longitude at the middle of a sign
// (index*30 + 15). Natal placements are stored at sign precision only,
// so the midpoint stands in for the unknown natal degree.
// Returns -1 for an unrecognized sign.
func MidpointLongitude(sign ZodiacSign) float64 {
	i := SignIndex(sign)
	if i < 0 {
		return -1
	}
	return float64(i)*30 + 15
}
