package twobody

import (
	"math"
	"time"

	"github.com/gonum/matrix/mat64"
	"github.com/soniakeys/meeus/julian"
)

const (
	// EarthRotationRate is the average Earth rotation rate in radians per second.
	EarthRotationRate = 7.2921158553e-5
	// j2000 is the Julian date of the J2000.0 epoch.
	j2000 = 2451545.0
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// PQW2ECI converts a given vector from the perifocal frame to the inertial frame.
func PQW2ECI(i, ω, Ω float64, v []float64) []float64 {
	var dcm mat64.Dense
	dcm.Mul(R3(-Ω), R1(-i))
	dcm.Mul(&dcm, R3(-ω))
	return MxV33(&dcm, v)
}

// ECI2PQW converts a given vector from the inertial frame to the perifocal frame.
func ECI2PQW(i, ω, Ω float64, v []float64) []float64 {
	var dcm mat64.Dense
	dcm.Mul(R3(ω), R1(i))
	dcm.Mul(&dcm, R3(Ω))
	return MxV33(&dcm, v)
}

// MxV33 multiplies a 3x3 matrix with a 3x1 vector. Note that there is no dimension check!
func MxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// GMST returns the Greenwich mean sidereal time in radians at the provided UTC epoch.
// IAU-82 model, cf. Vallado Eq. 3-47.
func GMST(dt time.Time) float64 {
	tUT1 := (julian.TimeToJD(dt.UTC()) - j2000) / 36525.0
	// In seconds of time; 876600 hours is 3155760000 seconds.
	θsec := 67310.54841 +
		(3155760000.0+8640184.812866)*tUT1 +
		0.093104*math.Pow(tUT1, 2) -
		6.2e-6*math.Pow(tUT1, 3)
	θsec = math.Mod(θsec, 86400)
	if θsec < 0 {
		θsec += 86400
	}
	return 2 * math.Pi * θsec / 86400
}

// ECI2ECEF converts the provided ECI vector to ECEF for the θgst given in radians.
func ECI2ECEF(R []float64, θgst float64) []float64 {
	return MxV33(R3(θgst), R)
}

// ECEF2ECI converts the provided ECEF vector to ECI for the θgst given in radians.
func ECEF2ECI(R []float64, θgst float64) []float64 {
	return ECI2ECEF(R, -θgst)
}
