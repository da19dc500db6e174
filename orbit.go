package twobody

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gonum/floats"
)

// Orbit defines a two-body orbital state around one celestial body. The six
// classical elements are canonical for from-elements construction and the
// Cartesian state is canonical for from-RV construction; whichever is derived
// is computed eagerly at construction so the representations can never drift.
// Angles are stored in radians, distances in km, velocities in km/s.
type Orbit struct {
	a, e, i, Ω, ω, ν float64
	p                float64 // semi-parameter, finite even when a is not
	Origin           CelestialBody
	frame            Frame
	prec             Precision
	tag              ConicType
	cacheHash        float64
	cachedR, cachedV []float64
}

// Conic returns the conic-section tag this orbit was classified as at
// construction. Downstream regime-specific algorithms switch on it.
func (o Orbit) Conic() ConicType {
	return o.tag
}

// Frame returns the reference frame the Cartesian state is expressed in.
func (o Orbit) Frame() Frame {
	return o.frame
}

// Precision returns the floating-point width this orbit is expressed at.
func (o Orbit) Precision() Precision {
	return o.prec
}

// IsInvalid returns true iff this orbit is the all-NaN sentinel, i.e. every
// defining field (both Cartesian vectors and all six elements) is NaN.
// A partially NaN orbit is corrupt, not the sentinel, and returns false here
// and from IsValid both.
func (o Orbit) IsInvalid() bool {
	for _, v := range o.definingFields() {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

// IsValid returns true iff no defining field of this orbit is NaN.
// IsValid and IsInvalid are not complements on partially NaN orbits.
func (o Orbit) IsValid() bool {
	for _, v := range o.definingFields() {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

func (o Orbit) definingFields() []float64 {
	fields := []float64{o.e, o.a, o.i, o.Ω, o.ω, o.ν}
	fields = append(fields, o.cachedR...)
	fields = append(fields, o.cachedV...)
	return fields
}

// Energyξ returns the specific mechanical energy ξ.
func (o Orbit) Energyξ() float64 {
	if o.tag == Parabolic {
		return 0
	}
	return -o.Origin.μ / (2 * o.a)
}

// Tildeω returns the longitude of periapsis.
func (o Orbit) Tildeω() float64 {
	return math.Mod(o.ω+o.Ω, 2*math.Pi)
}

// TrueLongλ returns the *approximate* true longitude (cf. Vallado page 103).
// NOTE: One should only need this for equatorial orbits.
func (o Orbit) TrueLongλ() float64 {
	return math.Mod(o.ω+o.Ω+o.ν, 2*math.Pi)
}

// ArgLatitudeU returns the argument of latitude.
func (o Orbit) ArgLatitudeU() float64 {
	return math.Mod(o.ν+o.ω, 2*math.Pi)
}

// H returns the orbital angular momentum vector.
func (o Orbit) H() []float64 {
	return Cross(o.RV())
}

// HNorm returns the norm of the orbital angular momentum.
func (o Orbit) HNorm() float64 {
	return o.RNorm() * o.VNorm() * o.CosΦfpa()
}

// CosΦfpa returns the cosine of the flight path angle.
// WARNING: As per Vallado page 105, *do not* use math.Acos(o.CosΦfpa())
// to get the flight path angle as you'll have a quadrant problem. Instead
// use math.Atan2(o.SinΦfpa(), o.CosΦfpa()).
func (o Orbit) CosΦfpa() float64 {
	ecosν := o.e * math.Cos(o.ν)
	return (1 + ecosν) / math.Sqrt(1+2*ecosν+math.Pow(o.e, 2))
}

// SinΦfpa returns the sine of the flight path angle.
// WARNING: same quadrant warning as CosΦfpa.
func (o Orbit) SinΦfpa() float64 {
	sinν, cosν := math.Sincos(o.ν)
	return (o.e * sinν) / math.Sqrt(1+2*o.e*cosν+math.Pow(o.e, 2))
}

// SemiParameter returns the semi-parameter (semilatus rectum).
func (o Orbit) SemiParameter() float64 {
	return o.p
}

// Apoapsis returns the apoapsis radius. Only meaningful for closed orbits.
func (o Orbit) Apoapsis() float64 {
	return o.a * (1 + o.e)
}

// Periapsis returns the periapsis radius.
func (o Orbit) Periapsis() float64 {
	if o.tag == Parabolic {
		return o.p / 2
	}
	return o.a * (1 - o.e)
}

// SinCosE returns the eccentric anomaly trig functions (sin and cos).
// Only meaningful for closed orbits.
func (o Orbit) SinCosE() (sinE, cosE float64) {
	sinν, cosν := math.Sincos(o.ν)
	denom := 1 + o.e*cosν
	sinE = math.Sqrt(1-o.e*o.e) * sinν / denom
	cosE = (o.e + cosν) / denom
	return
}

// Period returns the period of this orbit. Panics on an open (parabolic or
// hyperbolic) orbit: asking for the period of an aperiodic trajectory is a
// programmer error.
func (o Orbit) Period() time.Duration {
	if !o.tag.Closed() {
		panic(fmt.Errorf("period undefined for %s orbit", o.tag))
	}
	// The time package does not trivially handle fractions of a second, so
	// let's compute this in a convoluted way...
	seconds := 2 * math.Pi * math.Sqrt(math.Pow(o.a, 3)/o.Origin.μ)
	duration, _ := time.ParseDuration(fmt.Sprintf("%.6fs", seconds))
	return duration
}

// Perifocal returns the position and velocity vectors expressed in the
// perifocal (PQW) frame, periapsis along the first axis.
func (o Orbit) Perifocal() (R, V []float64) {
	sinν, cosν := math.Sincos(o.ν)
	R = make([]float64, 3)
	R[0] = o.p * cosν / (1 + o.e*cosν)
	R[1] = o.p * sinν / (1 + o.e*cosν)
	V = make([]float64, 3)
	V[0] = -math.Sqrt(o.Origin.μ/o.p) * sinν
	V[1] = math.Sqrt(o.Origin.μ/o.p) * (o.e + cosν)
	return
}

// RV returns the inertial Cartesian state, computing it from the elements on
// cache miss.
func (o *Orbit) RV() ([]float64, []float64) {
	if o.hashValid() {
		return o.cachedR, o.cachedV
	}
	// Support special orbits: fold the undefined angles into the measured one.
	ν := o.ν
	ω := o.ω
	Ω := o.Ω
	cfg := tbConfig()
	if o.e < cfg.eccentricityε {
		ω = 0
		if o.i < cfg.angleε {
			// Circular equatorial
			Ω = 0
			ν = o.TrueLongλ()
		} else {
			// Circular inclined
			ν = o.ArgLatitudeU()
		}
	} else if o.i < cfg.angleε {
		Ω = 0
		ω = o.Tildeω()
	}

	sinν, cosν := math.Sincos(ν)
	R := make([]float64, 3)
	R[0] = o.p * cosν / (1 + o.e*cosν)
	R[1] = o.p * sinν / (1 + o.e*cosν)
	R = PQW2ECI(o.i, ω, Ω, R)

	V := make([]float64, 3)
	V[0] = -math.Sqrt(o.Origin.μ/o.p) * sinν
	V[1] = math.Sqrt(o.Origin.μ/o.p) * (o.e + cosν)
	V = PQW2ECI(o.i, ω, Ω, V)

	o.cachedR = R
	o.cachedV = V
	o.computeHash()
	return R, V
}

// R returns the radius vector.
func (o Orbit) R() (R []float64) {
	R, _ = o.RV()
	return R
}

// RNorm returns the norm of the radius vector, but without computing the
// radius vector. If only the norm is needed, use this function instead of
// Norm(o.R()).
func (o Orbit) RNorm() float64 {
	return o.p / (1 + o.e*math.Cos(o.ν))
}

// V returns the velocity vector.
func (o Orbit) V() (V []float64) {
	_, V = o.RV()
	return V
}

// VNorm returns the norm of the velocity vector, but without computing the
// velocity vector. If only the norm is needed, use this function instead of
// Norm(o.V()).
func (o Orbit) VNorm() float64 {
	switch o.tag {
	case Circular:
		return math.Sqrt(o.Origin.μ / o.RNorm())
	case Parabolic:
		return math.Sqrt(2 * o.Origin.μ / o.RNorm())
	default:
		return math.Sqrt(2 * (o.Origin.μ/o.RNorm() + o.Energyξ()))
	}
}

// Elements returns the nine orbital elements which work in all types of orbits.
func (o Orbit) Elements() (a, e, i, Ω, ω, ν, λ, tildeω, u float64) {
	return o.a, o.e, o.i, o.Ω, o.ω, o.ν, o.TrueLongλ(), o.Tildeω(), o.ArgLatitudeU()
}

func (o *Orbit) computeHash() {
	o.cacheHash = o.ω + o.ν + o.Ω + o.i + o.e + o.a
}

func (o Orbit) hashValid() bool {
	return o.cachedR != nil && o.cacheHash == o.ω+o.ν+o.Ω+o.i+o.e+o.a
}

// String implements the stringer interface (hence the value receiver).
func (o Orbit) String() string {
	if o.tag == Invalid {
		return fmt.Sprintf("invalid orbit around %s", o.Origin.Name)
	}
	cfg := tbConfig()
	if o.e < cfg.eccentricityε {
		if o.i > cfg.angleε {
			return fmt.Sprintf("a=%.1f e=%.4f i=%.3f Ω=%.3f u=%.3f", o.a, o.e, Rad2deg(o.i), Rad2deg(o.Ω), Rad2deg(o.ArgLatitudeU()))
		}
		// Equatorial
		return fmt.Sprintf("a=%.1f e=%.4f i=%.3f Ω=%.3f λ=%.3f", o.a, o.e, Rad2deg(o.i), Rad2deg(o.Ω), Rad2deg(o.TrueLongλ()))
	}
	return fmt.Sprintf("a=%.1f e=%.4f i=%.3f Ω=%.3f ω=%.3f ν=%.3f", o.a, o.e, Rad2deg(o.i), Rad2deg(o.Ω), Rad2deg(o.ω), Rad2deg(o.ν))
}

// Equals returns whether two orbits are identical with free true anomaly.
// Use StrictlyEquals to also check true anomaly. Orbits of different
// precisions are promoted to the wider one first.
func (o Orbit) Equals(o1 Orbit) (bool, error) {
	if o.IsInvalid() || o1.IsInvalid() {
		return false, errors.New("invalid orbit")
	}
	if !o.Origin.Equals(o1.Origin) {
		return false, errors.New("different origin")
	}
	po, po1 := Promote(o, o1)
	o, o1 = *po, *po1
	cfg := tbConfig()
	if !floats.EqualWithinAbs(o.a, o1.a, cfg.distanceε) {
		return false, errors.New("semi major axis invalid")
	}
	if !floats.EqualWithinAbs(o.e, o1.e, cfg.eccentricityε) {
		return false, errors.New("eccentricity invalid")
	}
	if !floats.EqualWithinAbs(o.i, o1.i, cfg.angleε) {
		return false, errors.New("inclination invalid")
	}
	if !floats.EqualWithinAbs(o.Ω, o1.Ω, cfg.angleε) {
		return false, errors.New("RAAN invalid")
	}
	if o.e < cfg.eccentricityε {
		// Circular orbit
		if o.i > cfg.angleε {
			// Inclined
			if !floats.EqualWithinAbs(o.ArgLatitudeU(), o1.ArgLatitudeU(), cfg.angleε) {
				return false, errors.New("argument of latitude invalid")
			}
		} else {
			// Equatorial
			if !floats.EqualWithinAbs(o.TrueLongλ(), o1.TrueLongλ(), cfg.angleε) {
				return false, errors.New("true longitude invalid")
			}
		}
	} else if !floats.EqualWithinAbs(o.ω, o1.ω, cfg.angleε) {
		return false, errors.New("argument of periapsis invalid")
	}
	return true, nil
}

// StrictlyEquals returns whether two orbits are identical.
func (o Orbit) StrictlyEquals(o1 Orbit) (bool, error) {
	// Promote before the anomaly check so both sides round identically.
	po, po1 := Promote(o, o1)
	// Only check the anomaly for non circular orbits
	if po.e > tbConfig().eccentricityε && !floats.EqualWithinAbs(po.ν, po1.ν, tbConfig().angleε) {
		return false, errors.New("true anomaly invalid")
	}
	return po.Equals(*po1)
}

// AtPrecision re-expresses every quantity of this orbit (and its origin body)
// at the given floating-point width. The conic tag is reclassified from the
// rounded eccentricity.
func (o Orbit) AtPrecision(prec Precision) *Orbit {
	out := Orbit{
		a:      prec.round(o.a),
		e:      prec.round(o.e),
		i:      prec.round(o.i),
		Ω:      prec.round(o.Ω),
		ω:      prec.round(o.ω),
		ν:      prec.round(o.ν),
		p:      prec.round(o.p),
		Origin: o.Origin.AtPrecision(prec),
		frame:  o.frame,
		prec:   prec,
	}
	out.tag = Classify(out.e, o.tag != Invalid)
	out.cachedR = prec.roundVec(o.cachedR)
	out.cachedV = prec.roundVec(o.cachedV)
	out.computeHash()
	return &out
}

// Promote returns both orbits re-expressed at the wider of their two
// precisions. Apply it before any binary operation on mixed-precision orbits.
func Promote(o, o1 Orbit) (*Orbit, *Orbit) {
	wider := o.prec.Promote(o1.prec)
	return o.AtPrecision(wider), o1.AtPrecision(wider)
}

// InvalidOrbit returns the designated failure sentinel: every vector and
// scalar field NaN, tagged Invalid, with the provided body retained. This is
// what converters and propagators return instead of raising an error, so
// pipelines compose and batch callers can filter failures.
func InvalidOrbit(body CelestialBody) *Orbit {
	nan := math.NaN()
	orbit := Orbit{
		a: nan, e: nan, i: nan, Ω: nan, ω: nan, ν: nan, p: nan,
		Origin:  body,
		frame:   Inertial,
		prec:    Double,
		tag:     Invalid,
		cachedR: []float64{nan, nan, nan},
		cachedV: []float64{nan, nan, nan},
	}
	orbit.computeHash()
	return &orbit
}

// NewOrbitFromOE creates an orbit from the classical orbital elements, deriving
// the Cartesian state eagerly. The elements are canonical for this
// construction path.
// WARNING: Angles must be in degrees not radians.
// Panics on an exactly parabolic eccentricity: a parabola has an infinite
// semimajor axis, so it must be built via NewParabolicOrbit or from RV.
func NewOrbitFromOE(a, e, i, Ω, ω, ν float64, c CelestialBody) *Orbit {
	if math.Abs(e-1) < tbConfig().parabolicε {
		panic("parabolic orbits have an infinite semimajor axis: use NewParabolicOrbit")
	}
	orbit := Orbit{
		a: a, e: e,
		i: Deg2rad(i), Ω: Deg2rad(Ω), ω: Deg2rad(ω), ν: Deg2rad(ν),
		p:      a * (1 - e*e),
		Origin: c,
		frame:  Inertial,
		prec:   Double,
		tag:    Classify(e, true),
	}
	orbit.RV()
	return &orbit
}

// NewParabolicOrbit creates an exactly parabolic orbit from its semi-parameter
// (km) and the angular elements in degrees. The semimajor axis is +Inf.
func NewParabolicOrbit(p, i, Ω, ω, ν float64, c CelestialBody) *Orbit {
	orbit := Orbit{
		a: math.Inf(1), e: 1,
		i: Deg2rad(i), Ω: Deg2rad(Ω), ω: Deg2rad(ω), ν: Deg2rad(ν),
		p:      p,
		Origin: c,
		frame:  Inertial,
		prec:   Double,
		tag:    Parabolic,
	}
	orbit.RV()
	return &orbit
}

// NewOrbitFromRV returns the orbit derived from the inertial R and V vectors.
// The Cartesian state is canonical for this construction path. Angles which
// are undefined for the geometry at hand (RAAN of an equatorial orbit,
// argument of periapsis of a circular orbit, true anomaly of a circular
// orbit) are folded to the documented canonical convention instead of NaN:
// RAAN and periapsis measured from the inertial first axis, anomaly replaced
// by the argument of latitude or true longitude as appropriate.
// Panics unless both vectors have exactly three components: mismatched
// dimensionality is a programmer error, not a recoverable condition.
func NewOrbitFromRV(R, V []float64, c CelestialBody) *Orbit {
	if len(R) != 3 || len(V) != 3 {
		panic("R and V must be 3x1 vectors")
	}
	// From Vallado's RV2COE, page 113.
	hVec := Cross(R, V)
	h := Norm(hVec)
	if h < 1e-12 {
		// Rectilinear motion: no orbital plane, so no elements to derive.
		return InvalidOrbit(c)
	}
	n := Cross([]float64{0, 0, 1}, hVec)
	v := Norm(V)
	r := Norm(R)
	ξ := (v*v)/2 - c.μ/r
	eVec := make([]float64, 3)
	for j := 0; j < 3; j++ {
		eVec[j] = ((v*v-c.μ/r)*R[j] - Dot(R, V)*V[j]) / c.μ
	}
	e := Norm(eVec)
	tag := Classify(e, true)

	var a float64
	if tag == Parabolic {
		a = math.Inf(1)
	} else {
		a = -c.μ / (2 * ξ)
	}
	p := h * h / c.μ

	i := math.Acos(hVec[2] / h)

	cfg := tbConfig()
	equatorial := Norm(n) < 1e-12
	circular := e < cfg.eccentricityε

	var Ω, ω, ν float64
	if equatorial {
		Ω = 0
	} else {
		Ω = math.Acos(n[0] / Norm(n))
		if n[1] < 0 {
			Ω = 2*math.Pi - Ω
		}
	}

	switch {
	case circular:
		ω = 0
	case equatorial:
		// Longitude of periapsis measured from the first inertial axis.
		ω = math.Acos(eVec[0] / e)
		if eVec[1] < 0 {
			ω = 2*math.Pi - ω
		}
	default:
		ω = math.Acos(Dot(n, eVec) / (Norm(n) * e))
		if math.IsNaN(ω) {
			ω = 0
		}
		if eVec[2] < 0 {
			ω = 2*math.Pi - ω
		}
	}

	switch {
	case circular && equatorial:
		// True longitude.
		ν = math.Acos(R[0] / r)
		if R[1] < 0 {
			ν = 2*math.Pi - ν
		}
	case circular:
		// Argument of latitude.
		ν = math.Acos(Dot(n, R) / (Norm(n) * r))
		if R[2] < 0 {
			ν = 2*math.Pi - ν
		}
	default:
		cosν := Dot(eVec, R) / (e * r)
		if abscosν := math.Abs(cosν); abscosν > 1 && floats.EqualWithinAbs(abscosν, 1, 1e-12) {
			// Rounding can push |cos ν| infinitesimally past one, and
			// math.Acos would then return NaN.
			cosν = sign(cosν)
		}
		ν = math.Acos(cosν)
		if Dot(R, V) < 0 {
			ν = 2*math.Pi - ν
		}
	}

	// Fix rounding errors.
	i = math.Mod(i, 2*math.Pi)
	Ω = math.Mod(Ω, 2*math.Pi)
	ω = math.Mod(ω, 2*math.Pi)
	ν = math.Mod(ν, 2*math.Pi)

	orbit := Orbit{
		a: a, e: e, i: i, Ω: Ω, ω: ω, ν: ν,
		p:       p,
		Origin:  c,
		frame:   Inertial,
		prec:    Double,
		tag:     tag,
		cachedR: append([]float64(nil), R...),
		cachedV: append([]float64(nil), V...),
	}
	orbit.computeHash()
	return &orbit
}

// Radii2ae returns the semimajor axis and the eccentricity from the radii.
func Radii2ae(rA, rP float64) (a, e float64) {
	if rA < rP {
		panic("periapsis cannot be greater than apoapsis")
	}
	a = (rP + rA) / 2
	e = (rA - rP) / (rA + rP)
	return
}
