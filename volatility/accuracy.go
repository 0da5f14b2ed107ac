package volatility

import "github.com/charlerive/ivcalib/blackscholes"

const (
	DefaultAbsTolerance  = 1e-7
	DefaultRelTolerance  = 1e-7
	DefaultMaxIterations = 100
)

// AccuracyConfig 求解精度. Calibration stops once the pricing error is below both
// tolerances, or after MaxIterations steps.
type AccuracyConfig struct {
	atol    float64
	rtol    float64
	maxIter int
}

func NewAccuracyConfig(absTolerance, relTolerance float64, maxIterations int) (AccuracyConfig, error) {
	a := AccuracyConfig{atol: absTolerance, rtol: relTolerance, maxIter: maxIterations}
	if err := a.Validate(); err != nil {
		return AccuracyConfig{}, err
	}
	return a, nil
}

func DefaultAccuracy() AccuracyConfig {
	return AccuracyConfig{atol: DefaultAbsTolerance, rtol: DefaultRelTolerance, maxIter: DefaultMaxIterations}
}

func (a AccuracyConfig) AbsTolerance() float64 { return a.atol }

func (a AccuracyConfig) RelTolerance() float64 { return a.rtol }

func (a AccuracyConfig) MaxIterations() int { return a.maxIter }

func (a AccuracyConfig) Validate() error {
	if !(a.atol > 0) {
		return blackscholes.InvalidInput("absolute tolerance must be positive")
	}
	if !(a.rtol > 0) {
		return blackscholes.InvalidInput("relative tolerance must be positive")
	}
	if a.maxIter <= 0 {
		return blackscholes.InvalidInput("max iterations must be positive")
	}
	return nil
}

// met reports whether a pricing error satisfies both tolerances. The relative
// term divides by the observed price, so a zero quote never meets it.
func (a AccuracyConfig) met(absError, observed float64) bool {
	return absError < a.atol && absError/observed < a.rtol
}
