package twobody

import (
	"fmt"
	"time"

	"github.com/gonum/matrix/mat64"
)

// Frame identifies a reference frame.
type Frame string

const (
	// Inertial is the body-centered inertial frame every constructor
	// expresses its Cartesian state in.
	Inertial Frame = "inertial"
	// BodyFixed is the body-centered rotating frame (ECEF for Earth).
	BodyFixed Frame = "body-fixed"
	// PQW is the perifocal frame, periapsis along the first axis.
	PQW Frame = "perifocal"
)

// PositionTransform maps a position vector from the source frame to the
// destination frame.
type PositionTransform func(r []float64) []float64

// VelocityTransform maps a velocity vector from the source frame to the
// destination frame. It receives the *source-frame* position as well because
// rotating-frame transforms need the rotational part and its time derivative:
// an Earth-fixed transform contributes an ω×r term, so the velocity map is
// generally not the position map.
type VelocityTransform func(r, v []float64) []float64

// Transform is a directed coordinate transformation between two named frames,
// holding independent position and velocity sub-transforms.
type Transform struct {
	pos      PositionTransform
	vel      VelocityTransform
	from, to Frame
}

// NewTransform builds a transform from its two sub-transforms and the frame
// identities it connects.
func NewTransform(pos PositionTransform, vel VelocityTransform, from, to Frame) Transform {
	return Transform{pos, vel, from, to}
}

// From returns the source frame identity.
func (t Transform) From() Frame { return t.from }

// To returns the destination frame identity.
func (t Transform) To() Frame { return t.to }

// Apply expresses the orbit's Cartesian state in the destination frame and
// returns the new orbit. The Keplerian elements are re-derived from the
// transformed state (inclination and RAAN reference the fundamental plane, so
// they must be recomputed, never copied). The invalid sentinel passes through
// unchanged but for the frame tag.
// Panics if the orbit is not expressed in the transform's source frame.
func (t Transform) Apply(o Orbit) *Orbit {
	if o.frame != t.from {
		panic(fmt.Errorf("orbit in frame %q, transform expects %q", o.frame, t.from))
	}
	if o.IsInvalid() {
		inv := InvalidOrbit(o.Origin)
		inv.frame = t.to
		return inv
	}
	R, V := o.RV()
	newOrbit := NewOrbitFromRV(t.pos(R), t.vel(R, V), o.Origin)
	newOrbit.frame = t.to
	return newOrbit.AtPrecision(o.prec)
}

// RotationTransform builds a transform between two inertially-fixed frames
// from a single direction cosine matrix: with no relative angular rate, the
// position and velocity sub-transforms share the rotation.
func RotationTransform(dcm *mat64.Dense, from, to Frame) Transform {
	return NewTransform(
		func(r []float64) []float64 { return MxV33(dcm, r) },
		func(_, v []float64) []float64 { return MxV33(dcm, v) },
		from, to)
}

// RotatingFrameTransform builds a transform into a frame rotating at the
// constant angular velocity ω (rad/s, expressed in the destination frame).
// The velocity picks up the transport term: v' = C·v − ω × (C·r).
func RotatingFrameTransform(dcm *mat64.Dense, ω []float64, from, to Frame) Transform {
	return NewTransform(
		func(r []float64) []float64 { return MxV33(dcm, r) },
		func(r, v []float64) []float64 {
			rRot := MxV33(dcm, r)
			vRot := MxV33(dcm, v)
			coriolis := Cross(ω, rRot)
			for j := 0; j < 3; j++ {
				vRot[j] -= coriolis[j]
			}
			return vRot
		},
		from, to)
}

// ECItoECEF returns the inertial to Earth-fixed transform at the provided UTC
// epoch, rotating by the Greenwich mean sidereal time and removing the Earth
// rotation transport term from the velocity.
func ECItoECEF(dt time.Time) Transform {
	return RotatingFrameTransform(R3(GMST(dt)), []float64{0, 0, EarthRotationRate}, Inertial, BodyFixed)
}

// ECEFtoECI returns the Earth-fixed to inertial transform at the provided UTC
// epoch, the inverse of ECItoECEF.
func ECEFtoECI(dt time.Time) Transform {
	θgst := GMST(dt)
	return NewTransform(
		func(r []float64) []float64 { return ECEF2ECI(r, θgst) },
		func(r, v []float64) []float64 {
			// Add the transport term back in the rotating frame, then rotate.
			coriolis := Cross([]float64{0, 0, EarthRotationRate}, r)
			vInertial := make([]float64, 3)
			for j := 0; j < 3; j++ {
				vInertial[j] = v[j] + coriolis[j]
			}
			return ECEF2ECI(vInertial, θgst)
		},
		BodyFixed, Inertial)
}
