package blackscholes

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Black–Scholes–Merton model for a European call
// see wiki: https://en.wikipedia.org/wiki/Black%E2%80%93Scholes_model

// Price 看涨期权理论价格.
//
// An expired option (time to expiration below MachineEpsilon) is worth its
// intrinsic value max(0, S-K).
func Price(option OptionTerms, ms MarketState, vol Volatility) float64 {
	if option.Expired() {
		return math.Max(0, ms.stock-option.strike)
	}

	d1 := calcD1(option, ms, vol)
	d2 := calcD2(d1, option, vol)
	discountFactor := math.Exp(-ms.rate * option.time)

	return ms.stock*Cdf(d1) - discountFactor*option.strike*Cdf(d2)
}

// ModelGrad returns vega, the derivative of Price with respect to volatility.
//
// The time to expiration must be positive: there is no expired-option branch here
// and d1 divides by σ√T. Calibrate only calls it after its input check.
func ModelGrad(option OptionTerms, ms MarketState, vol Volatility) VolatilitySensitivity {
	d1 := calcD1(option, ms, vol)
	return VolatilitySensitivity{Vega: ms.stock * math.Sqrt(option.time) * Pdf(d1)}
}

func calcD1(option OptionTerms, ms MarketState, vol Volatility) float64 {
	return (math.Log(ms.stock/option.strike) + (ms.rate+vol.sigma*vol.sigma/2)*option.time) /
		(vol.sigma * math.Sqrt(option.time))
}

func calcD2(d1 float64, option OptionTerms, vol Volatility) float64 {
	return d1 - vol.sigma*math.Sqrt(option.time)
}

// Cdf cumulative normal distribution function, Φ(x) = 0.5 + 0.5·erf(x/√2).
func Cdf(x float64) float64 {
	return 0.5 + 0.5*math.Erf(x/math.Sqrt2)
}

// Pdf standard normal density.
func Pdf(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
