package volatility

import (
	"math"

	"github.com/charlerive/ivcalib/blackscholes"
)

// CallBounds returns the no-arbitrage price interval (lower, upper) of a call:
// S - K·e^(-rT) and S. Quotes at or outside the interval carry no volatility.
func CallBounds(option blackscholes.OptionTerms, ms blackscholes.MarketState) (lower, upper float64) {
	discount := math.Exp(-ms.InterestRate() * option.TimeToExpiration())
	return ms.StockPrice() - option.StrikePrice()*discount, ms.StockPrice()
}

// CheckCalibrationInputs rejects inputs for which no volatility in
// (MinVolatility, MaxVolatility] can reproduce the observed price. Calibrate
// relies on it for the price to be increasing in volatility with a unique root.
func CheckCalibrationInputs(md blackscholes.ObservedPrice, option blackscholes.OptionTerms, ms blackscholes.MarketState) error {
	if option.Expired() {
		return blackscholes.InvalidInput("time to expiration must be positive for model calibration")
	}

	lower, upper := CallBounds(option, ms)
	if md.CallPrice() >= upper {
		return blackscholes.InvalidInput("market call price must be less than stock price")
	}
	if md.CallPrice() <= lower {
		return blackscholes.InvalidInput("call price implies its time value is nonpositive")
	}
	return nil
}
