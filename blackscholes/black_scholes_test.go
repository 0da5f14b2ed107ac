package blackscholes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func mustInputs(t testing.TB, strike, time, stock, rate, sigma float64) (OptionTerms, MarketState, Volatility) {
	t.Helper()
	option, err := NewOptionTerms(strike, time)
	require.NoError(t, err)
	ms, err := NewMarketState(stock, rate)
	require.NoError(t, err)
	vol, err := NewVolatility(sigma)
	require.NoError(t, err)
	return option, ms, vol
}

var evalCases = []struct {
	strike, time, stock, rate, sigma float64
	price, vega                      float64
}{
	{100, 0.004, 100, 0, 0.2, 0.50462314, 2.52308205987434},
	{130, 0.004, 100, 0, 0.2, 0, 0},
	{70, 0.004, 100, 0, 0.2, 30, 0},
	{100, 1, 100, 0, 0.2, 7.96556746, 39.6952547477012},
	{100, 10, 100, 0, 0.2, 24.81703660, 120.003894843014},
	{100, 1, 100, -0.2, 0.2, 1.83572243, 26.6085249898755},
	{50, 0, 100, 0.1, 0.2, 50, 0},
	{150, 0, 100, 0.1, 0.2, 0, 0},
}

func TestPrice(t *testing.T) {
	for _, c := range evalCases {
		option, ms, vol := mustInputs(t, c.strike, c.time, c.stock, c.rate, c.sigma)
		assert.InDelta(t, c.price, Price(option, ms, vol), 1e-7, "case %+v", c)
	}
}

func TestModelGrad(t *testing.T) {
	for _, c := range evalCases {
		option, ms, vol := mustInputs(t, c.strike, c.time, c.stock, c.rate, c.sigma)
		assert.InDelta(t, c.vega, ModelGrad(option, ms, vol).Vega, 1e-7, "case %+v", c)
	}
}

func TestPrice_Expired(t *testing.T) {
	for _, stock := range []float64{0, 50, 89.5, 90, 90.25, 100, 1e6} {
		for _, strike := range []float64{MachineEpsilon, 1, 90, 250} {
			option, ms, vol := mustInputs(t, strike, 0, stock, 0.05, 0.3)
			want := stock - strike
			if want < 0 {
				want = 0
			}
			assert.Equal(t, want, Price(option, ms, vol), "S=%v K=%v", stock, strike)
		}
	}
}

func TestPrice_MonotoneInVolatility(t *testing.T) {
	grid := []struct{ strike, time, stock, rate float64 }{
		{50, 0.004, 100, 0.05},
		{100, 0.004, 100, 0.05},
		{130, 0.004, 100, 0.05},
		{90, 0.5, 100, 0.05},
		{150, 1, 100, -0.1},
		{100, 10, 100, 0.05},
		{100, 1, 0, 0.05},
	}
	sigmas := make([]float64, 200)
	floats.Span(sigmas, 0.01, 5.0)

	for _, g := range grid {
		prev := -1.0
		for _, sigma := range sigmas {
			option, ms, vol := mustInputs(t, g.strike, g.time, g.stock, g.rate, sigma)
			p := Price(option, ms, vol)
			// rounding noise only where the true increment is below 1e-12
			require.GreaterOrEqual(t, p, prev-1e-12, "case %+v sigma=%v", g, sigma)
			prev = p
		}
	}
}

func TestModelGrad_FiniteDifference(t *testing.T) {
	settings := &fd.Settings{Formula: fd.Central, Step: 1e-6}
	for _, c := range []struct{ strike, time, stock, rate, sigma float64 }{
		{90, 0.5, 100, 0.05, 0.2},
		{100, 1, 100, -0.1, 0.45},
		{150, 10, 100, 0.05, 0.41},
		{70, 0.25, 100, 0.02, 1.2},
	} {
		option, ms, vol := mustInputs(t, c.strike, c.time, c.stock, c.rate, c.sigma)
		numeric := fd.Derivative(func(sigma float64) float64 {
			return Price(option, ms, Volatility{sigma: sigma})
		}, vol.Value(), settings)

		vega := ModelGrad(option, ms, vol).Vega
		assert.True(t, scalar.EqualWithinAbsOrRel(numeric, vega, 1e-5, 1e-6),
			"case %+v: analytic %v, numeric %v", c, vega, numeric)
	}
}

func TestCallGreeks(t *testing.T) {
	settings := &fd.Settings{Formula: fd.Central, Step: 1e-5}
	strike, time, stock, rate, sigma := 90.0, 0.5, 100.0, 0.05, 0.2
	option, ms, vol := mustInputs(t, strike, time, stock, rate, sigma)
	g := CallGreeks(option, ms, vol)

	delta := fd.Derivative(func(s float64) float64 {
		return Price(option, MarketState{stock: s, rate: rate}, vol)
	}, stock, settings)
	gamma := fd.Derivative(func(s float64) float64 {
		return Price(option, MarketState{stock: s, rate: rate}, vol)
	}, stock, &fd.Settings{Formula: fd.Central2nd, Step: 1e-3})
	rho := fd.Derivative(func(r float64) float64 {
		return Price(option, MarketState{stock: stock, rate: r}, vol)
	}, rate, settings)
	dPdT := fd.Derivative(func(tt float64) float64 {
		return Price(OptionTerms{strike: strike, time: tt}, ms, vol)
	}, time, settings)

	assert.InDelta(t, delta, g.Delta, 1e-6)
	assert.InDelta(t, gamma, g.Gamma, 1e-5)
	assert.InDelta(t, ModelGrad(option, ms, vol).Vega/100, g.Vega, 1e-12)
	assert.InDelta(t, rho/100, g.Rho, 1e-6)
	assert.InDelta(t, -dPdT/365, g.Theta, 1e-6)

	t.Run("bounds", func(t *testing.T) {
		assert.Greater(t, g.Delta, 0.0)
		assert.Less(t, g.Delta, 1.0)
		assert.Greater(t, g.Gamma, 0.0)
		assert.Less(t, g.Theta, 0.0)
	})
}

func TestCdf(t *testing.T) {
	assert.Equal(t, 0.5, Cdf(0))
	assert.Equal(t, 0.0, Cdf(-40))
	assert.Equal(t, 1.0, Cdf(40))
	assert.InDelta(t, 0.975, Cdf(1.959963984540054), 1e-12)
	assert.InDelta(t, 1-Cdf(0.7), Cdf(-0.7), 1e-15)
}
