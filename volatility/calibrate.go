package volatility

import (
	"fmt"
	"math"

	"go.uber.org/zap/zapcore"

	"github.com/charlerive/ivcalib/blackscholes"
)

const (
	MinVolatility = blackscholes.MachineEpsilon
	MaxVolatility = 5.0 // 500% 年化波动率上限

	sqrt2Pi = 2.5066282746310005
)

// Result of a calibration. When Converged is false, Volatility is the last
// estimate and Diagnostic describes the inputs that failed to converge.
type Result struct {
	Volatility     blackscholes.Volatility
	Converged      bool
	NewtonSteps    int
	BisectionSteps int
	Diagnostic     *NonConvergence
}

func (r Result) Iterations() int {
	return r.NewtonSteps + r.BisectionSteps
}

// NonConvergence carries the full input context of a calibration that ran out of iterations.
type NonConvergence struct {
	CallPrice        float64
	StrikePrice      float64
	TimeToExpiration float64
	StockPrice       float64
	InterestRate     float64
	Iterations       int
	AbsError         float64
}

func (n NonConvergence) String() string {
	return fmt.Sprintf("maximum iterations threshold exceeded, IV may be inaccurate. Inputs: "+
		"option price: %v, strike: %v, time to expiration: %v, stock price: %v, interest rate: %v",
		n.CallPrice, n.StrikePrice, n.TimeToExpiration, n.StockPrice, n.InterestRate)
}

func (n NonConvergence) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddFloat64("call_price", n.CallPrice)
	enc.AddFloat64("strike_price", n.StrikePrice)
	enc.AddFloat64("time_to_expiration", n.TimeToExpiration)
	enc.AddFloat64("stock_price", n.StockPrice)
	enc.AddFloat64("interest_rate", n.InterestRate)
	enc.AddInt("iterations", n.Iterations)
	enc.AddFloat64("abs_error", n.AbsError)
	return nil
}

// bracket holds [lb, ub], the volatility interval known to contain the root.
type bracket struct {
	lb, ub float64
}

func (b bracket) contains(sigma float64) bool {
	return sigma >= b.lb && sigma <= b.ub
}

func (b bracket) mid() float64 {
	return 0.5 * (b.lb + b.ub)
}

// tighten moves the bound on the side of the root that sigma was found to be on.
// Price increases with volatility, so an overpriced sigma is an upper bound.
func (b bracket) tighten(sigma float64, overpriced bool) bracket {
	if overpriced {
		return bracket{lb: b.lb, ub: sigma}
	}
	return bracket{lb: sigma, ub: b.ub}
}

// estimate is the model evaluated at one volatility.
type estimate struct {
	vol   blackscholes.Volatility
	price float64
	vega  float64
}

func evaluate(option blackscholes.OptionTerms, ms blackscholes.MarketState, sigma float64) estimate {
	vol := mustVolatility(sigma)
	return estimate{
		vol:   vol,
		price: blackscholes.Price(option, ms, vol),
		vega:  blackscholes.ModelGrad(option, ms, vol).Vega,
	}
}

// Calibrate 隐含波动率: finds the volatility whose call price matches md.
//
// It runs a safeguarded Newton iteration from a Brenner–Subrahmanyam guess.
// A Newton step is taken when vega is usable and the step stays inside the
// bracket; otherwise the bracket is bisected. Either way the bracket shrinks.
//
// Invalid inputs are returned as errors matching blackscholes.ErrInvalidInput.
// Running out of iterations is not an error: the last estimate is returned
// with Converged false and a Diagnostic.
func Calibrate(md blackscholes.ObservedPrice, option blackscholes.OptionTerms, ms blackscholes.MarketState, acc AccuracyConfig) (Result, error) {
	if err := acc.Validate(); err != nil {
		return Result{}, err
	}
	if err := CheckCalibrationInputs(md, option, ms); err != nil {
		return Result{}, err
	}

	target := md.CallPrice()
	initVol := target / ms.StockPrice() * sqrt2Pi / math.Sqrt(option.TimeToExpiration())
	initVol = math.Min(math.Max(initVol, MinVolatility), MaxVolatility)

	cur := evaluate(option, ms, initVol)
	b := bracket{lb: MinVolatility, ub: MaxVolatility}

	var res Result
	for res.Iterations() < acc.maxIter {
		if acc.met(math.Abs(cur.price-target), target) {
			res.Converged = true
			break
		}

		next, newton := 0.0, false
		if math.Abs(cur.vega) > blackscholes.MachineEpsilon {
			next = cur.vol.Value() - (cur.price-target)/cur.vega
			newton = b.contains(next)
		}
		if newton {
			res.NewtonSteps++
		} else {
			next = b.mid()
			res.BisectionSteps++
		}

		cur = evaluate(option, ms, next)
		b = b.tighten(next, cur.price > target)
	}

	res.Volatility = cur.vol
	if !res.Converged {
		res.Diagnostic = &NonConvergence{
			CallPrice:        target,
			StrikePrice:      option.StrikePrice(),
			TimeToExpiration: option.TimeToExpiration(),
			StockPrice:       ms.StockPrice(),
			InterestRate:     ms.InterestRate(),
			Iterations:       res.Iterations(),
			AbsError:         math.Abs(cur.price - target),
		}
	}
	return res, nil
}

// mustVolatility is only called with values inside [MinVolatility, MaxVolatility].
func mustVolatility(sigma float64) blackscholes.Volatility {
	vol, err := blackscholes.NewVolatility(sigma)
	if err != nil {
		panic(err)
	}
	return vol
}
