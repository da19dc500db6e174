package twobody

import (
	"math"
	"os"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

const (
	keplerTolerance = 1e-12
	keplerMaxIters  = 50
)

// SolveKepler solves Kepler's equation for the given mean anomaly and
// eccentricity, returning the matching anomaly and whether the iteration
// converged. The anomaly returned is eccentric (E) for e < 1, the parabolic
// anomaly D = tan(ν/2) for e == 1, and hyperbolic (H) for e > 1.
// Non-convergence is reported, never panicked on: callers turn it into the
// invalid-orbit sentinel.
func SolveKepler(M, e float64) (anomaly float64, converged bool) {
	switch Classify(e, true) {
	case Circular:
		return math.Mod(M, 2*math.Pi), true
	case Parabolic:
		return solveBarker(M), true
	case Hyperbolic:
		return solveHyperbolic(M, e)
	default:
		return solveElliptic(M, e)
	}
}

// solveElliptic runs Newton-Raphson on M = E - e sin E.
func solveElliptic(M, e float64) (float64, bool) {
	M = math.Mod(M, 2*math.Pi)
	if M < 0 {
		M += 2 * math.Pi
	}
	// Near-parabolic ellipses converge poorly from E=M.
	E := M
	if e > 0.8 {
		if M < math.Pi {
			E = M + e/2
		} else {
			E = M - e/2
		}
	}
	for iter := 0; iter < keplerMaxIters; iter++ {
		f := E - e*math.Sin(E) - M
		fp := 1 - e*math.Cos(E)
		delta := f / fp
		E -= delta
		if math.Abs(delta) < keplerTolerance {
			return E, true
		}
	}
	return E, false
}

// solveHyperbolic runs Newton-Raphson on M = e sinh H - H.
func solveHyperbolic(M, e float64) (float64, bool) {
	H := math.Asinh(M / e)
	for iter := 0; iter < keplerMaxIters; iter++ {
		f := e*math.Sinh(H) - H - M
		fp := e*math.Cosh(H) - 1
		delta := f / fp
		H -= delta
		if math.Abs(delta) < keplerTolerance {
			return H, true
		}
	}
	return H, false
}

// solveBarker returns the exact root of Barker's equation D + D³/3 = M via
// Cardano, so the parabolic case never iterates.
func solveBarker(M float64) float64 {
	A := math.Cbrt(1.5*M + math.Sqrt(2.25*M*M+1))
	return A - 1/A
}

// KeplerProp propagates orbits with the closed-form two-body solution. The
// zero value is not usable; construct with NewKeplerProp.
type KeplerProp struct {
	logger kitlog.Logger
}

// NewKeplerProp returns a two-body propagator logging in logfmt to stdout.
func NewKeplerProp() KeplerProp {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "prop", "kepler")
	return KeplerProp{logger: klog}
}

// Propagate returns the orbit reached after the given time span under pure
// two-body dynamics. The anomaly conversion is routed by the conic tag. On
// solver non-convergence the invalid sentinel for the orbit's body is
// returned instead of an error, so batch pipelines compose without branching;
// an invalid input short-circuits to an invalid output.
func (kp KeplerProp) Propagate(o Orbit, span time.Duration) *Orbit {
	Δt := span.Seconds()
	μ := o.Origin.μ
	switch o.Conic() {
	case Invalid:
		return InvalidOrbit(o.Origin)

	case Circular:
		// For e ~ 0 all anomalies coincide: advance ν directly.
		n := math.Sqrt(μ / math.Pow(o.a, 3))
		ν := math.Mod(o.ν+n*Δt, 2*math.Pi)
		return orbitAtAnomaly(o, ν)

	case Elliptical:
		sinE, cosE := o.SinCosE()
		E0 := math.Atan2(sinE, cosE)
		M0 := E0 - o.e*math.Sin(E0)
		n := math.Sqrt(μ / math.Pow(o.a, 3))
		E, converged := SolveKepler(M0+n*Δt, o.e)
		if !converged {
			kp.logger.Log("err", "did not converge", "conic", o.Conic(), "e", o.e, "span", span)
			return InvalidOrbit(o.Origin)
		}
		sinν := math.Sin(E) * math.Sqrt(1-o.e*o.e) / (1 - o.e*math.Cos(E))
		cosν := (math.Cos(E) - o.e) / (1 - o.e*math.Cos(E))
		return orbitAtAnomaly(o, math.Atan2(sinν, cosν))

	case Parabolic:
		D0 := math.Tan(o.ν / 2)
		M0 := D0 + math.Pow(D0, 3)/3
		// Barker's equation: M = 2 sqrt(μ/p³) (t - T).
		M := M0 + 2*math.Sqrt(μ/math.Pow(o.p, 3))*Δt
		D := solveBarker(M)
		return orbitAtAnomaly(o, 2*math.Atan(D))

	case Hyperbolic:
		H0 := 2 * math.Atanh(math.Sqrt((o.e-1)/(o.e+1))*math.Tan(o.ν/2))
		M0 := o.e*math.Sinh(H0) - H0
		n := math.Sqrt(μ / math.Pow(-o.a, 3))
		H, converged := SolveKepler(M0+n*Δt, o.e)
		if !converged {
			kp.logger.Log("err", "did not converge", "conic", o.Conic(), "e", o.e, "span", span)
			return InvalidOrbit(o.Origin)
		}
		ν := 2 * math.Atan(math.Sqrt((o.e+1)/(o.e-1))*math.Tanh(H/2))
		return orbitAtAnomaly(o, ν)

	default:
		panic("unknown conic type")
	}
}

// Propagate runs a shared default KeplerProp, satisfying the
// propagate(orbit, duration) contract.
func Propagate(o Orbit, span time.Duration) *Orbit {
	return defaultProp.Propagate(o, span)
}

var defaultProp = NewKeplerProp()

// orbitAtAnomaly returns a copy of the orbit moved to the provided true
// anomaly (radians), all other elements untouched.
func orbitAtAnomaly(o Orbit, ν float64) *Orbit {
	if ν < 0 {
		ν += 2 * math.Pi
	}
	out := o
	out.ν = ν
	out.cachedR, out.cachedV = nil, nil
	out.RV()
	return &out
}
