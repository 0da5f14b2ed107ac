package cmd

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/charlerive/ivcalib/config"
)

type calibrationReport struct {
	Volatility     decimal.Decimal `json:"volatility"`
	Converged      bool            `json:"converged"`
	Iterations     int             `json:"iterations"`
	NewtonSteps    int             `json:"newton_steps"`
	BisectionSteps int             `json:"bisection_steps"`
}

type priceReport struct {
	Price  decimal.Decimal  `json:"price"`
	Vega   *decimal.Decimal `json:"vega,omitempty"`
	Greeks *greeksReport    `json:"greeks,omitempty"`
}

type greeksReport struct {
	Delta decimal.Decimal `json:"delta"`
	Gamma decimal.Decimal `json:"gamma"`
	Vega  decimal.Decimal `json:"vega"`
	Theta decimal.Decimal `json:"theta"`
	Rho   decimal.Decimal `json:"rho"`
}

func (a *app) round(x float64) decimal.Decimal {
	return decimal.NewFromFloat(x).Round(a.cfg.Output.Precision)
}

func (a *app) render(w io.Writer, text string, v interface{}) error {
	if a.cfg.Output.Format == config.OutputJSON {
		return jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w).Encode(v)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
