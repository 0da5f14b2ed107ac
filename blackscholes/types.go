package blackscholes

import "math"

// MachineEpsilon is the float64 machine epsilon, the smallest admissible strike and volatility.
const MachineEpsilon = 0x1p-52

// OptionTerms 期权条款: strike price and time to expiration in years.
type OptionTerms struct {
	strike float64
	time   float64
}

func NewOptionTerms(strikePrice, timeToExpiration float64) (OptionTerms, error) {
	if math.IsInf(strikePrice, 0) || math.IsInf(timeToExpiration, 0) {
		return OptionTerms{}, InvalidInput("option terms must be finite")
	}
	if !(strikePrice >= MachineEpsilon) {
		return OptionTerms{}, InvalidInput("strike price must be positive")
	}
	if !(timeToExpiration >= 0) {
		return OptionTerms{}, InvalidInput("time to expiration must be nonnegative")
	}
	return OptionTerms{strike: strikePrice, time: timeToExpiration}, nil
}

func (o OptionTerms) StrikePrice() float64 { return o.strike }

func (o OptionTerms) TimeToExpiration() float64 { return o.time }

// Expired reports a time to expiration too small to carry any variance, leaving
// only intrinsic value in the option.
func (o OptionTerms) Expired() bool {
	return o.time < MachineEpsilon
}

// MarketState 市场状态: underlying price and continuously compounded rate (any sign).
type MarketState struct {
	stock float64
	rate  float64
}

func NewMarketState(stockPrice, interestRate float64) (MarketState, error) {
	if math.IsInf(stockPrice, 0) || math.IsInf(interestRate, 0) || math.IsNaN(interestRate) {
		return MarketState{}, InvalidInput("market state must be finite")
	}
	if !(stockPrice >= 0) {
		return MarketState{}, InvalidInput("stock price must be nonnegative")
	}
	return MarketState{stock: stockPrice, rate: interestRate}, nil
}

func (m MarketState) StockPrice() float64 { return m.stock }

func (m MarketState) InterestRate() float64 { return m.rate }

// ObservedPrice is the market call quote a calibration has to reproduce.
type ObservedPrice struct {
	call float64
}

func NewObservedPrice(callPrice float64) (ObservedPrice, error) {
	if !(callPrice >= 0) {
		return ObservedPrice{}, InvalidInput("call price must be nonnegative")
	}
	if math.IsInf(callPrice, 0) {
		return ObservedPrice{}, InvalidInput("call price must be finite")
	}
	return ObservedPrice{call: callPrice}, nil
}

func (p ObservedPrice) CallPrice() float64 { return p.call }

// Volatility 年化波动率, the single model parameter.
type Volatility struct {
	sigma float64
}

func NewVolatility(sigma float64) (Volatility, error) {
	if !(sigma >= MachineEpsilon) {
		return Volatility{}, InvalidInput("volatility must be positive")
	}
	if math.IsInf(sigma, 0) {
		return Volatility{}, InvalidInput("volatility must be finite")
	}
	return Volatility{sigma: sigma}, nil
}

func (v Volatility) Value() float64 { return v.sigma }

// VolatilitySensitivity is the derivative of the call price with respect to volatility.
// It is derived per evaluation and never validated.
type VolatilitySensitivity struct {
	Vega float64
}
