package twobody

// Dimensioned views of the core quantities. Internally everything is a bare
// float64 in km, km/s and radians like the rest of the astrodynamics
// literature; these accessors tag the values with their physical dimension so
// consumers can convert (km to m, degrees to radians, ...) without tracking
// units by hand. Incompatible unit arithmetic fails to compile.

import (
	"github.com/martinlindhe/unit"
)

// RadiusLength returns the body's equatorial radius as a dimensioned length.
func (c CelestialBody) RadiusLength() unit.Length {
	return unit.Length(c.Radius) * unit.Kilometer
}

// MassQuantity returns the body's mass as a dimensioned mass.
func (c CelestialBody) MassQuantity() unit.Mass {
	return unit.Mass(c.Mass()) * unit.Kilogram
}

// SemimajorAxis returns a as a dimensioned length.
func (o Orbit) SemimajorAxis() unit.Length {
	return unit.Length(o.a) * unit.Kilometer
}

// Eccentricity returns e (dimensionless).
func (o Orbit) Eccentricity() float64 {
	return o.e
}

// Inclination returns i as a dimensioned angle.
func (o Orbit) Inclination() unit.Angle {
	return unit.Angle(o.i) * unit.Radian
}

// RAAN returns Ω as a dimensioned angle.
func (o Orbit) RAAN() unit.Angle {
	return unit.Angle(o.Ω) * unit.Radian
}

// ArgPeriapsis returns ω as a dimensioned angle.
func (o Orbit) ArgPeriapsis() unit.Angle {
	return unit.Angle(o.ω) * unit.Radian
}

// TrueAnomaly returns ν as a dimensioned angle.
func (o Orbit) TrueAnomaly() unit.Angle {
	return unit.Angle(o.ν) * unit.Radian
}

// RadiusVector returns the norm of the position vector as a dimensioned length.
func (o Orbit) RadiusVector() unit.Length {
	return unit.Length(o.RNorm()) * unit.Kilometer
}

// Speed returns the norm of the velocity vector as a dimensioned speed.
func (o Orbit) Speed() unit.Speed {
	return unit.Speed(o.VNorm()*1e3) * unit.MetersPerSecond
}
