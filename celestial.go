package twobody

import (
	"fmt"
	"strings"
)

// G is the universal gravitational constant in km^3/(kg.s^2).
const G = 6.67430e-20

// CelestialBody defines a gravitating central body by its equatorial radius
// (km) and standard gravitational parameter μ (km^3/s^2). Bodies are immutable
// value types; inputs are assumed physically valid (positive radius and μ).
type CelestialBody struct {
	Name   string
	Radius float64
	μ      float64
	prec   Precision
}

// NewBody returns a body from its radius and gravitational parameter directly.
// No derivation occurs: μ is stored exactly as provided.
func NewBody(name string, radius, μ float64) CelestialBody {
	return CelestialBody{name, radius, μ, Double}
}

// NewBodyFromMass returns a body from its mass (kg) and radius (km),
// computing μ = G * mass.
func NewBodyFromMass(name string, mass, radius float64) CelestialBody {
	return CelestialBody{name, radius, G * mass, Double}
}

// GM returns μ (which is unexported because it's a lowercase letter).
func (c CelestialBody) GM() float64 {
	return c.μ
}

// Mass returns the mass in kg derived from μ.
func (c CelestialBody) Mass() float64 {
	return c.μ / G
}

// Precision returns the floating-point width this body is expressed at.
func (c CelestialBody) Precision() Precision {
	return c.prec
}

// AtPrecision re-expresses this body at the given floating-point width,
// preserving physical values to rounding error.
func (c CelestialBody) AtPrecision(p Precision) CelestialBody {
	return CelestialBody{c.Name, p.round(c.Radius), p.round(c.μ), p}
}

// String implements the Stringer interface.
func (c CelestialBody) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial body is the same.
func (c CelestialBody) Equals(b CelestialBody) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ
}

// BodyFromString returns the catalog body from its name.
func BodyFromString(name string) (CelestialBody, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "mercury":
		return Mercury, nil
	case "venus":
		return Venus, nil
	case "earth":
		return Earth, nil
	case "moon", "luna":
		return Moon, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	case "saturn":
		return Saturn, nil
	case "uranus":
		return Uranus, nil
	case "neptune":
		return Neptune, nil
	case "pluto":
		return Pluto, nil
	default:
		return CelestialBody{}, fmt.Errorf("undefined body '%s'", name)
	}
}

/* Catalog. Masses in kg and equatorial radii in km, cf. Vallado appendix D. */

// Sun is our closest star.
var Sun = NewBodyFromMass("Sun", 1.98892e30, 695700)

// Mercury is the one which is not retrograde most of the time.
var Mercury = NewBodyFromMass("Mercury", 3.3011e23, 2439.7)

// Venus is poisonous.
var Venus = NewBodyFromMass("Venus", 4.8675e24, 6051.8)

// Earth is home.
var Earth = NewBodyFromMass("Earth", 5.97237e24, 6378.1363)

// Moon is Earth's.
var Moon = NewBodyFromMass("Moon", 7.34767e22, 1737.4)

// Luna is an alias for Moon.
var Luna = Moon

// Mars is the vacation place.
var Mars = NewBodyFromMass("Mars", 6.4171e23, 3396.19)

// Jupiter is big.
var Jupiter = NewBodyFromMass("Jupiter", 1.8982e27, 71492.0)

// Saturn floats and that's really cool.
var Saturn = NewBodyFromMass("Saturn", 5.6834e26, 60268.0)

// Uranus is no joke.
var Uranus = NewBodyFromMass("Uranus", 8.6810e25, 25559.0)

// Neptune is deep blue.
var Neptune = NewBodyFromMass("Neptune", 1.02413e26, 24764.0)

// Pluto is not a planet and had that down ranking coming. It should have stayed in its lane.
var Pluto = NewBodyFromMass("Pluto", 1.303e22, 1188.3)
