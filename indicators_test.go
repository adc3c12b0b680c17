package papertrade

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/etnz/papertrade/date"
	"github.com/shopspring/decimal"
)

// barsFromCloses builds a chronological daily history from closing prices.
func barsFromCloses(closes ...float64) []Bar {
	day := date.MustParse("2025-01-01")
	bars := make([]Bar, len(closes))
	for i, c := range closes {
		bars[i] = Bar{Date: day.Add(i), Close: decimal.NewFromFloat(c)}
	}
	return bars
}

func TestComputeIndicators_NotEnoughHistory(t *testing.T) {
	for _, n := range []int{0, 1, 14} {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100
		}
		_, err := ComputeIndicators(barsFromCloses(closes...))
		if !errors.Is(err, ErrIndicatorsUnavailable) {
			t.Errorf("ComputeIndicators() with %d closes: error = %v, want ErrIndicatorsUnavailable", n, err)
		}
	}
}

func TestComputeIndicators_RSIOnlyGains(t *testing.T) {
	// 15 strictly increasing closes: no losses, RSI must saturate at 100.
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	got, err := ComputeIndicators(barsFromCloses(closes...))
	if err != nil {
		t.Fatalf("ComputeIndicators() error = %v", err)
	}
	if !got.RSI14.Equal(decimal.NewFromInt(100)) {
		t.Errorf("RSI14 = %s, want 100", got.RSI14)
	}
	if got.Signal != Overbought {
		t.Errorf("Signal = %s, want %s", got.Signal, Overbought)
	}
}

func TestComputeIndicators_RSIOnlyLosses(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}
	got, err := ComputeIndicators(barsFromCloses(closes...))
	if err != nil {
		t.Fatalf("ComputeIndicators() error = %v", err)
	}
	if !got.RSI14.IsZero() {
		t.Errorf("RSI14 = %s, want 0", got.RSI14)
	}
	if got.Signal != Oversold {
		t.Errorf("Signal = %s, want %s", got.Signal, Oversold)
	}
}

func TestComputeIndicators_RSIBounded(t *testing.T) {
	// Property: for any history, RSI stays within [0, 100].
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 100; run++ {
		closes := make([]float64, 30)
		price := 100.0
		for i := range closes {
			price += rng.Float64()*10 - 5
			if price < 1 {
				price = 1
			}
			closes[i] = price
		}
		got, err := ComputeIndicators(barsFromCloses(closes...))
		if err != nil {
			t.Fatalf("ComputeIndicators() error = %v", err)
		}
		if got.RSI14.IsNegative() || got.RSI14.GreaterThan(decimal.NewFromInt(100)) {
			t.Fatalf("RSI14 = %s, out of [0, 100]", got.RSI14)
		}
	}
}

func TestComputeIndicators_SMA(t *testing.T) {
	testCases := []struct {
		name   string
		closes []float64
		want   string
	}{
		{
			name:   "fewer than 20 closes falls back to mean of all",
			closes: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
			want:   "8",
		},
		{
			name: "exactly 20 closes",
			closes: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
				11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
			want: "10.5",
		},
		{
			name: "more than 20 closes uses the last 20 only",
			closes: []float64{1000, 1000, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
				11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
			want: "10.5",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeIndicators(barsFromCloses(tc.closes...))
			if err != nil {
				t.Fatalf("ComputeIndicators() error = %v", err)
			}
			if want := decimal.RequireFromString(tc.want); !got.SMA20.Equal(want) {
				t.Errorf("SMA20 = %s, want %s", got.SMA20, want)
			}
		})
	}
}

func TestComputeIndicators_FlatHistoryIsNeutral(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 42
	}
	got, err := ComputeIndicators(barsFromCloses(closes...))
	if err != nil {
		t.Fatalf("ComputeIndicators() error = %v", err)
	}
	if got.Signal != Neutral {
		t.Errorf("Signal = %s, want %s", got.Signal, Neutral)
	}
	if !got.RSI14.Equal(decimal.NewFromInt(50)) {
		t.Errorf("RSI14 = %s, want 50", got.RSI14)
	}
}
