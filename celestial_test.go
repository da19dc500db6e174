package twobody

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestBodyFromMass(t *testing.T) {
	mass := 5.97237e24
	earth := NewBodyFromMass("Earth", mass, 6378.1363)
	if earth.GM() != G*mass {
		t.Fatalf("μ = %f != G*M = %f", earth.GM(), G*mass)
	}
	if !floats.EqualWithinAbs(earth.GM(), 3.986e5, 1e3) {
		t.Fatalf("Earth μ suspicious: %f", earth.GM())
	}
	if !floats.EqualWithinRel(earth.Mass(), mass, 1e-15) {
		t.Fatalf("mass not recovered: %f", earth.Mass())
	}
}

func TestBodyFromMu(t *testing.T) {
	μ := 4.28283100e4
	mars := NewBody("Mars", 3396.19, μ)
	// Direct construction stores μ exactly, no derivation.
	if mars.GM() != μ {
		t.Fatalf("μ = %f != %f", mars.GM(), μ)
	}
	// The two constructors must agree up to rounding.
	viaMass := NewBodyFromMass("Mars", μ/G, 3396.19)
	if !floats.EqualWithinRel(viaMass.GM(), mars.GM(), 1e-14) {
		t.Fatalf("constructors disagree: %f != %f", viaMass.GM(), mars.GM())
	}
}

func TestMoonLunaAlias(t *testing.T) {
	if !Moon.Equals(Luna) {
		t.Fatal("Moon and Luna differ")
	}
	if Moon.Name != Luna.Name || Moon.Radius != Luna.Radius || Moon.GM() != Luna.GM() {
		t.Fatal("Moon and Luna fields differ")
	}
}

func TestBodyFromString(t *testing.T) {
	for _, name := range []string{"Sun", "Mercury", "Venus", "Earth", "Moon", "Luna", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune", "Pluto"} {
		body, err := BodyFromString(name)
		if err != nil {
			t.Fatalf("%s not found: %s", name, err)
		}
		if body.Radius <= 0 || body.GM() <= 0 {
			t.Fatalf("%s has non physical values: %s", name, body)
		}
	}
	if body, err := BodyFromString("luna"); err != nil || !body.Equals(Moon) {
		t.Fatal("luna lookup is not case insensitive or is not Moon")
	}
	if _, err := BodyFromString("Vesta"); err == nil {
		t.Fatal("Vesta should not be in the catalog")
	}
}

func TestBodyPrecision(t *testing.T) {
	single := Earth.AtPrecision(Single)
	if single.Precision() != Single {
		t.Fatal("precision tag not updated")
	}
	if single.Radius != float64(float32(Earth.Radius)) {
		t.Fatal("radius not rounded through float32")
	}
	if single.GM() != float64(float32(Earth.GM())) {
		t.Fatal("μ not rounded through float32")
	}
	// Physical values survive to rounding error.
	if !floats.EqualWithinRel(single.GM(), Earth.GM(), 1e-6) {
		t.Fatal("μ lost more than single precision rounding")
	}
	back := single.AtPrecision(Double)
	if back.GM() != single.GM() {
		t.Fatal("widening must not change the stored value")
	}
	if back.Precision() != Double {
		t.Fatal("precision tag not widened")
	}
}

func TestBodyString(t *testing.T) {
	if Earth.String() != "Earth body" {
		t.Fatalf("unexpected stringer: %s", Earth)
	}
	if math.IsNaN(Earth.Mass()) {
		t.Fatal("Earth mass is NaN")
	}
}
