// Package config loads command line settings from defaults, an optional
// config file, IVCALIB_* environment variables and bound flags.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/charlerive/ivcalib/logger"
)

const EnvPrefix = "IVCALIB"

const (
	OutputText = "text"
	OutputJSON = "json"
)

type Config struct {
	Option     OptionConfig   `mapstructure:"option"`
	Market     MarketConfig   `mapstructure:"market"`
	CallPrice  float64        `mapstructure:"call_price"` // 期权报价
	Volatility float64        `mapstructure:"volatility"` // 年化波动率, price command only
	Accuracy   AccuracyConfig `mapstructure:"accuracy"`
	Output     OutputConfig   `mapstructure:"output"`
	Log        logger.Config  `mapstructure:"log"`
}

type OptionConfig struct {
	Strike float64 `mapstructure:"strike"`
	Time   float64 `mapstructure:"time"` // years
}

type MarketConfig struct {
	Stock float64 `mapstructure:"stock"`
	Rate  float64 `mapstructure:"rate"`
}

type AccuracyConfig struct {
	AbsTolerance  float64 `mapstructure:"atol"`
	RelTolerance  float64 `mapstructure:"rtol"`
	MaxIterations int     `mapstructure:"max_iterations"`
}

type OutputConfig struct {
	Format    string `mapstructure:"format"`
	Precision int32  `mapstructure:"precision"`
}

// Default is the demonstration case: a 90 strike half-year call on a 100 stock
// quoted at 13.49851, calibrated with a two iteration budget.
func Default() Config {
	return Config{
		Option:     OptionConfig{Strike: 90, Time: 0.5},
		Market:     MarketConfig{Stock: 100, Rate: 0.05},
		CallPrice:  13.49851,
		Volatility: 0.2,
		Accuracy:   AccuracyConfig{AbsTolerance: 1e-7, RelTolerance: 1e-7, MaxIterations: 2},
		Output:     OutputConfig{Format: OutputText, Precision: 8},
		Log:        logger.Config{Level: "info", Format: logger.FormatConsole},
	}
}

// New returns a viper instance carrying the defaults and the environment binding.
func New() *viper.Viper {
	d := Default()
	v := viper.New()
	v.SetDefault("option.strike", d.Option.Strike)
	v.SetDefault("option.time", d.Option.Time)
	v.SetDefault("market.stock", d.Market.Stock)
	v.SetDefault("market.rate", d.Market.Rate)
	v.SetDefault("call_price", d.CallPrice)
	v.SetDefault("volatility", d.Volatility)
	v.SetDefault("accuracy.atol", d.Accuracy.AbsTolerance)
	v.SetDefault("accuracy.rtol", d.Accuracy.RelTolerance)
	v.SetDefault("accuracy.max_iterations", d.Accuracy.MaxIterations)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.precision", d.Output.Precision)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.disable_caller", d.Log.DisableCaller)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path and decodes v.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WithMessagef(err, "read config %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.WithMessage(err, "decode config")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch c.Output.Format {
	case OutputText, OutputJSON:
	default:
		return errors.Errorf("unknown output format %q", c.Output.Format)
	}
	if c.Output.Precision < 0 {
		return errors.New("output precision must be nonnegative")
	}
	return nil
}
