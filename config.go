package twobody

import (
	"math"
	"os"
	"sync"

	"github.com/spf13/viper"
)

// Default numeric tolerances. All may be overridden from conf.toml, cf. tbConfig.
const (
	defaultEccentricityε = 5e-5                         // 0.00005
	defaultAngleε        = (5e-3 / 360) * (2 * math.Pi) // 0.005 degrees
	defaultDistanceε     = 2e1                          // 20 km
	defaultParabolicε    = 1e-9                         // |e-1| below this is an exact parabola
)

// velocityε is the tolerance for velocity comparisons, in km/s. Not
// configurable: velocities are always derived, never stored inputs.
const velocityε = 1e-6

var (
	cfgOnce sync.Once
	config  _tbconfig
)

// _tbconfig is a "hidden" struct, just use `tbConfig`.
type _tbconfig struct {
	eccentricityε float64
	angleε        float64
	distanceε     float64
	parabolicε    float64
}

// tbConfig returns the library configuration. The tolerances default to the
// values above; if the TWOBODY_CONFIG environment variable points to a
// directory holding a conf.toml, its `tolerances` section overrides them.
// Unlike a missing setting, a malformed file is a hard failure.
// Loading happens exactly once, so concurrent callers never observe a
// partially written configuration.
func tbConfig() _tbconfig {
	cfgOnce.Do(loadConfig)
	return config
}

func loadConfig() {
	v := viper.New()
	v.SetDefault("tolerances.eccentricity", defaultEccentricityε)
	v.SetDefault("tolerances.angle", defaultAngleε)
	v.SetDefault("tolerances.distance", defaultDistanceε)
	v.SetDefault("tolerances.parabolic", defaultParabolicε)
	if confPath := os.Getenv("TWOBODY_CONFIG"); confPath != "" {
		v.SetConfigName("conf")
		v.AddConfigPath(confPath)
		if err := v.ReadInConfig(); err != nil {
			panic(err)
		}
	}
	config = _tbconfig{
		eccentricityε: v.GetFloat64("tolerances.eccentricity"),
		angleε:        v.GetFloat64("tolerances.angle"),
		distanceε:     v.GetFloat64("tolerances.distance"),
		parabolicε:    v.GetFloat64("tolerances.parabolic"),
	}
}

// resetConfig forces the next tbConfig call to reload. Test support only; it
// is not safe to call concurrently with tbConfig.
func resetConfig() {
	cfgOnce = sync.Once{}
}
