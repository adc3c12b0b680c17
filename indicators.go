package papertrade

import (
	"fmt"

	"github.com/etnz/papertrade/date"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Bar is one day of price history for a symbol.
type Bar struct {
	Date  date.Date
	Open  decimal.Decimal
	Close decimal.Decimal
}

// Signal classifies the RSI momentum reading.
type Signal string

const (
	Overbought Signal = "OVERBOUGHT" // RSI above 70
	Oversold   Signal = "OVERSOLD"   // RSI below 30
	Neutral    Signal = "NEUTRAL"
)

const (
	smaPeriod = 20
	rsiPeriod = 14
	// rsiPeriod deltas require rsiPeriod+1 closing prices.
	minIndicatorHistory = rsiPeriod + 1
)

// Indicators holds the derived technical indicators for one symbol.
// Values keep full precision; rounding to display precision happens only at
// the rendering and encoding boundary.
type Indicators struct {
	SMA20  decimal.Decimal
	RSI14  decimal.Decimal
	Signal Signal
}

// ComputeIndicators derives SMA(20) and RSI(14) from daily bars in
// chronological order. It returns ErrIndicatorsUnavailable when fewer than 15
// closing prices are available.
func ComputeIndicators(bars []Bar) (Indicators, error) {
	if len(bars) < minIndicatorHistory {
		return Indicators{}, fmt.Errorf("%w: have %d closes, need %d", ErrIndicatorsUnavailable, len(bars), minIndicatorHistory)
	}

	closes := make([]decimal.Decimal, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	ind := Indicators{
		SMA20: sma(closes, smaPeriod),
		RSI14: rsi(closes, rsiPeriod),
	}
	switch {
	case ind.RSI14.GreaterThan(decimal.NewFromInt(70)):
		ind.Signal = Overbought
	case ind.RSI14.LessThan(decimal.NewFromInt(30)):
		ind.Signal = Oversold
	default:
		ind.Signal = Neutral
	}
	return ind, nil
}

// sma returns the mean of the last period closes, or of all closes when
// fewer than period are available.
func sma(closes []decimal.Decimal, period int) decimal.Decimal {
	if len(closes) > period {
		closes = closes[len(closes)-period:]
	}
	return decimal.Avg(closes[0], closes[1:]...)
}

// rsi computes the relative strength index over the last period deltas:
// separate means of the positive deltas (gains) and of the magnitude of the
// negative deltas (losses), RS = meanGain/meanLoss, RSI = 100 - 100/(1+RS).
func rsi(closes []decimal.Decimal, period int) decimal.Decimal {
	closes = closes[len(closes)-period-1:]

	n := decimal.NewFromInt(int64(period))
	var gains, losses decimal.Decimal
	for i := 1; i < len(closes); i++ {
		delta := closes[i].Sub(closes[i-1])
		if delta.IsPositive() {
			gains = gains.Add(delta)
		} else {
			losses = losses.Add(delta.Neg())
		}
	}
	meanGain := gains.Div(n)
	meanLoss := losses.Div(n)

	if meanLoss.IsZero() {
		if meanGain.IsZero() {
			// Perfectly flat history carries no momentum either way.
			return decimal.NewFromInt(50)
		}
		return hundred
	}

	rs := meanGain.Div(meanLoss)
	return hundred.Sub(hundred.Div(decimal.NewFromInt(1).Add(rs)))
}
