package model

// AspectType indicates which angular relationship two bodies form.
type AspectType string

const (
	AspectConjunction AspectType = "conjunction" // 0°
	AspectOpposition  AspectType = "opposition"  // 180°
	AspectTrine       AspectType = "trine"       // 120°
	AspectSquare      AspectType = "square"      // 90°
)

// Italian returns the aspect name used in user-facing text.
func (a AspectType) Italian() string {
	switch a {
	case AspectConjunction:
		return "congiunzione"
	case AspectOpposition:
		return "opposizione"
	case AspectTrine:
		return "trigono"
	case AspectSquare:
		return "quadrato"
	default:
		return string(a)
	}
}

// AspectMatch is the result of comparing two longitudes.
// Exactness is the deviation from the aspect's nominal angle, in degrees.
type AspectMatch struct {
	Type      AspectType
	Exactness float64
}

// TransitSignal is one live body aspecting one natal placement,
// scored for how much it deserves the user's attention.
type TransitSignal struct {
	TransitBody  string
	Aspect       AspectType
	NatalBody    string
	Description  string
	Significance float64
}
