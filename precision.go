package twobody

// Precision tags the floating-point width an entity's quantities are expressed
// at. All values are stored as float64; Single means every scalar has been
// rounded through a float32, so it carries no more significand than an actual
// single-precision value would. This mirrors mixed-precision use where catalog
// bodies are double precision but user computations may run narrower.
type Precision uint8

const (
	// Single is IEEE-754 binary32 width.
	Single Precision = iota + 1
	// Double is IEEE-754 binary64 width.
	Double
)

func (p Precision) String() string {
	switch p {
	case Single:
		return "float32"
	case Double:
		return "float64"
	default:
		panic("unknown precision")
	}
}

// Promote returns the wider of the two precisions. Binary operations between
// differently-precisioned entities promote both sides to this width first.
func (p Precision) Promote(q Precision) Precision {
	if p == Double || q == Double {
		return Double
	}
	return Single
}

// round re-expresses v at this width. NaN and infinities survive the round
// trip unchanged.
func (p Precision) round(v float64) float64 {
	if p == Single {
		return float64(float32(v))
	}
	return v
}

func (p Precision) roundVec(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	for i, val := range v {
		out[i] = p.round(val)
	}
	return out
}
