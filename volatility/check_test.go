package volatility

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlerive/ivcalib/blackscholes"
)

func TestCheckCalibrationInputs(t *testing.T) {
	lowerBound := 100 - 100*math.Exp(-0.05)

	for name, c := range map[string]struct {
		quote marketQuote
		msg   string
	}{
		"expired":          {marketQuote{5, 100, 0, 100, 0.05}, "time to expiration must be positive for model calibration"},
		"at stock price":   {marketQuote{100, 100, 1, 100, 0.05}, "market call price must be less than stock price"},
		"above stock":      {marketQuote{120, 100, 1, 100, 0.05}, "market call price must be less than stock price"},
		"under lower":      {marketQuote{4.87, 100, 1, 100, 0.05}, "call price implies its time value is nonpositive"},
		"at lower":         {marketQuote{lowerBound, 100, 1, 100, 0.05}, "call price implies its time value is nonpositive"},
		"zero stock price": {marketQuote{0, 100, 1, 0, 0.05}, "market call price must be less than stock price"},
	} {
		t.Run(name, func(t *testing.T) {
			md, option, ms := c.quote.inputs(t)
			err := CheckCalibrationInputs(md, option, ms)
			require.Error(t, err)
			assert.True(t, errors.Is(err, blackscholes.ErrInvalidInput))
			assert.EqualError(t, err, c.msg)
		})
	}

	t.Run("inside bounds", func(t *testing.T) {
		md, option, ms := marketQuote{math.Nextafter(lowerBound, 100), 100, 1, 100, 0.05}.inputs(t)
		assert.NoError(t, CheckCalibrationInputs(md, option, ms))

		md, option, ms = marketQuote{math.Nextafter(100, 0), 100, 1, 100, 0.05}.inputs(t)
		assert.NoError(t, CheckCalibrationInputs(md, option, ms))
	})
}

func TestCallBounds(t *testing.T) {
	_, option, ms := marketQuote{0, 90, 0.5, 100, 0.05}.inputs(t)
	lower, upper := CallBounds(option, ms)
	assert.InDelta(t, 100-90*math.Exp(-0.025), lower, 1e-12)
	assert.Equal(t, 100.0, upper)
}
