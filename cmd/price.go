package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/charlerive/ivcalib/blackscholes"
)

func newPriceCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "price",
		Short: "price the call and its greeks at a given volatility",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			a, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()
			return a.price(c.OutOrStdout())
		},
	}
}

func (a *app) price(w io.Writer) error {
	option, ms, err := a.terms()
	if err != nil {
		return err
	}
	vol, err := blackscholes.NewVolatility(a.cfg.Volatility)
	if err != nil {
		return err
	}

	report := priceReport{Price: a.round(blackscholes.Price(option, ms, vol))}
	text := []string{"Price: " + report.Price.String()}

	// vega and greeks divide by the time to expiration
	if !option.Expired() && ms.StockPrice() > 0 {
		vega := a.round(blackscholes.ModelGrad(option, ms, vol).Vega)
		g := blackscholes.CallGreeks(option, ms, vol)
		report.Vega = &vega
		report.Greeks = &greeksReport{
			Delta: a.round(g.Delta),
			Gamma: a.round(g.Gamma),
			Vega:  a.round(g.Vega),
			Theta: a.round(g.Theta),
			Rho:   a.round(g.Rho),
		}
		text = append(text,
			"Vega: "+vega.String(),
			fmt.Sprintf("Greeks: delta=%s gamma=%s vega=%s theta=%s rho=%s",
				report.Greeks.Delta, report.Greeks.Gamma, report.Greeks.Vega, report.Greeks.Theta, report.Greeks.Rho))
	} else {
		a.log.Debug("option expired, reporting intrinsic value only")
	}

	return a.render(w, strings.Join(text, "\n"), report)
}
