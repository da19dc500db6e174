package twobody

import (
	"math"
)

// ConicType tags the conic-section regime of an orbit. Downstream algorithms
// (anomaly conversions, propagation) switch on this tag to select the
// regime-specific formulas.
type ConicType uint8

const (
	// Invalid marks the all-NaN sentinel orbit.
	Invalid ConicType = iota
	// Circular orbits have numerically zero eccentricity.
	Circular
	// Elliptical orbits have 0 < e < 1.
	Elliptical
	// Parabolic orbits have e == 1 within the parabolic tolerance.
	Parabolic
	// Hyperbolic orbits have e > 1.
	Hyperbolic
)

func (c ConicType) String() string {
	switch c {
	case Invalid:
		return "invalid"
	case Circular:
		return "circular"
	case Elliptical:
		return "elliptical"
	case Parabolic:
		return "parabolic"
	case Hyperbolic:
		return "hyperbolic"
	default:
		panic("unknown conic type")
	}
}

// Closed returns whether this conic is a closed curve (the orbit is periodic).
func (c ConicType) Closed() bool {
	return c == Circular || c == Elliptical
}

// Classify returns the conic section for the given eccentricity. The validity
// flag takes precedence over the eccentricity: a sentinel orbit classifies as
// Invalid no matter its nominal elements, as does a NaN eccentricity.
// Circular uses the eccentricity tolerance and Parabolic the (much tighter)
// parabolic tolerance, both configurable via conf.toml. The function is total
// over all real e >= 0.
func Classify(e float64, valid bool) ConicType {
	if !valid || math.IsNaN(e) {
		return Invalid
	}
	cfg := tbConfig()
	switch {
	case e < cfg.eccentricityε:
		return Circular
	case math.Abs(e-1) < cfg.parabolicε:
		return Parabolic
	case e < 1:
		return Elliptical
	default:
		return Hyperbolic
	}
}
