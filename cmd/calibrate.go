package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/charlerive/ivcalib/blackscholes"
	"github.com/charlerive/ivcalib/volatility"
)

type setupFunc func(c *cobra.Command) (*app, error)

func newCalibrateCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "calibrate",
		Short: "find the volatility that reproduces the observed call price",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			a, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()
			return a.calibrate(c.OutOrStdout())
		},
	}
}

func (a *app) calibrate(w io.Writer) error {
	md, err := blackscholes.NewObservedPrice(a.cfg.CallPrice)
	if err != nil {
		return err
	}
	option, ms, err := a.terms()
	if err != nil {
		return err
	}
	acc, err := volatility.NewAccuracyConfig(a.cfg.Accuracy.AbsTolerance, a.cfg.Accuracy.RelTolerance, a.cfg.Accuracy.MaxIterations)
	if err != nil {
		return err
	}

	res, err := volatility.Calibrate(md, option, ms, acc)
	if err != nil {
		return err
	}
	if res.Diagnostic != nil {
		a.log.Warn("maximum iterations threshold exceeded, IV may be inaccurate", zap.Object("inputs", *res.Diagnostic))
	}
	a.log.Debug("calibrated",
		zap.Float64("volatility", res.Volatility.Value()),
		zap.Int("newton_steps", res.NewtonSteps),
		zap.Int("bisection_steps", res.BisectionSteps))

	iv := a.round(res.Volatility.Value())
	return a.render(w, "IV: "+iv.String(), calibrationReport{
		Volatility:     iv,
		Converged:      res.Converged,
		Iterations:     res.Iterations(),
		NewtonSteps:    res.NewtonSteps,
		BisectionSteps: res.BisectionSteps,
	})
}

func (a *app) terms() (blackscholes.OptionTerms, blackscholes.MarketState, error) {
	option, err := blackscholes.NewOptionTerms(a.cfg.Option.Strike, a.cfg.Option.Time)
	if err != nil {
		return blackscholes.OptionTerms{}, blackscholes.MarketState{}, err
	}
	ms, err := blackscholes.NewMarketState(a.cfg.Market.Stock, a.cfg.Market.Rate)
	if err != nil {
		return blackscholes.OptionTerms{}, blackscholes.MarketState{}, err
	}
	return option, ms, nil
}
