package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/charlerive/ivcalib/config"
	"github.com/charlerive/ivcalib/logger"
)

// app is what every command runs with once flags are parsed.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

// NewRootCmd builds the command tree. Running the root command calibrates.
func NewRootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "ivcalib",
		Short:         "Black-Scholes call pricing and implied volatility calibration",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
	}

	setup := func(c *cobra.Command) (*app, error) {
		cfg, err := config.Load(v, cfgFile)
		if err != nil {
			return nil, err
		}
		l, err := logger.New(cfg.Log, c.ErrOrStderr())
		if err != nil {
			return nil, err
		}
		return &app{cfg: cfg, log: l}, nil
	}

	calibrate := newCalibrateCmd(setup)
	root.RunE = calibrate.RunE
	root.AddCommand(calibrate, newPriceCmd(setup))

	d := config.Default()
	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.Float64("strike", d.Option.Strike, "strike price")
	flags.Float64("time", d.Option.Time, "time to expiration in years")
	flags.Float64("stock", d.Market.Stock, "stock price")
	flags.Float64("rate", d.Market.Rate, "continuously compounded interest rate")
	flags.Float64("call-price", d.CallPrice, "observed call price")
	flags.Float64("volatility", d.Volatility, "annualized volatility (price command)")
	flags.Float64("atol", d.Accuracy.AbsTolerance, "absolute price tolerance")
	flags.Float64("rtol", d.Accuracy.RelTolerance, "relative price tolerance")
	flags.Int("max-iterations", d.Accuracy.MaxIterations, "calibration iteration budget")
	flags.StringP("output", "o", d.Output.Format, "output format (text|json)")
	flags.Int32("precision", d.Output.Precision, "decimal places in output")
	flags.String("log-level", d.Log.Level, "log level")
	flags.String("log-format", d.Log.Format, "log format (console|json)")

	bindFlags(v, root, map[string]string{
		"option.strike":           "strike",
		"option.time":             "time",
		"market.stock":            "stock",
		"market.rate":             "rate",
		"call_price":              "call-price",
		"volatility":              "volatility",
		"accuracy.atol":           "atol",
		"accuracy.rtol":           "rtol",
		"accuracy.max_iterations": "max-iterations",
		"output.format":           "output",
		"output.precision":        "precision",
		"log.level":               "log-level",
		"log.format":              "log-format",
	})

	return root
}

func bindFlags(v *viper.Viper, root *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, root.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// Execute runs the command line and exits non-zero on error.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "ERROR:", err)
		os.Exit(1)
	}
}
