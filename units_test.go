package twobody

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestUnitAccessors(t *testing.T) {
	if Earth.RadiusLength().Kilometers() != Earth.Radius {
		t.Fatal("radius accessor changed the value")
	}
	if !floats.EqualWithinRel(Earth.RadiusLength().Meters(), Earth.Radius*1e3, 1e-12) {
		t.Fatal("radius meter conversion incorrect")
	}
	if !floats.EqualWithinRel(Earth.MassQuantity().Kilograms(), Earth.Mass(), 1e-12) {
		t.Fatal("mass accessor changed the value")
	}

	o := NewOrbitFromOE(8000, 0.1, 30, 40, 50, 60, Earth)
	if o.SemimajorAxis().Kilometers() != o.a {
		t.Fatal("semimajor axis accessor changed the value")
	}
	if o.Eccentricity() != o.e {
		t.Fatal("eccentricity accessor changed the value")
	}
	if !floats.EqualWithinAbs(o.Inclination().Degrees(), 30, 1e-9) {
		t.Fatalf("inclination = %f degrees", o.Inclination().Degrees())
	}
	if !floats.EqualWithinAbs(o.RAAN().Degrees(), 40, 1e-9) {
		t.Fatalf("RAAN = %f degrees", o.RAAN().Degrees())
	}
	if !floats.EqualWithinAbs(o.ArgPeriapsis().Degrees(), 50, 1e-9) {
		t.Fatalf("argument of periapsis = %f degrees", o.ArgPeriapsis().Degrees())
	}
	if !floats.EqualWithinAbs(o.TrueAnomaly().Degrees(), 60, 1e-9) {
		t.Fatalf("true anomaly = %f degrees", o.TrueAnomaly().Degrees())
	}
	if !floats.EqualWithinRel(o.RadiusVector().Kilometers(), o.RNorm(), 1e-12) {
		t.Fatal("radius vector accessor changed the value")
	}
	if !floats.EqualWithinRel(o.Speed().MetersPerSecond(), o.VNorm()*1e3, 1e-12) {
		t.Fatal("speed accessor changed the value")
	}
	if math.IsNaN(o.Speed().MetersPerSecond()) {
		t.Fatal("speed is NaN")
	}
}
