package blackscholes

import "math"

// Greeks 看涨期权希腊值, quoted the way option desks read them.
type Greeks struct {
	Delta float64 `json:"delta"` // 期权价格对标的价格的敏感度
	Gamma float64 `json:"gamma"` // delta对标的价格的敏感度
	Vega  float64 `json:"vega"`  // per 1 volatility point
	Theta float64 `json:"theta"` // per calendar day
	Rho   float64 `json:"rho"`   // per 1 rate point
}

// CallGreeks computes the call greeks. Like ModelGrad it requires a positive
// time to expiration; gamma additionally needs a positive stock price.
func CallGreeks(option OptionTerms, ms MarketState, vol Volatility) Greeks {
	sqrtT := math.Sqrt(option.time)
	d1 := calcD1(option, ms, vol)
	d2 := calcD2(d1, option, vol)
	nd1 := Pdf(d1)
	discountedStrike := option.strike * math.Exp(-ms.rate*option.time)

	return Greeks{
		Delta: Cdf(d1),
		Gamma: nd1 / (ms.stock * vol.sigma * sqrtT),
		Vega:  ms.stock * sqrtT * nd1 / 100,
		Theta: (-ms.stock*vol.sigma/(2*sqrtT)*nd1 - ms.rate*discountedStrike*Cdf(d2)) / 365,
		Rho:   option.time * discountedStrike * Cdf(d2) / 100,
	}
}
