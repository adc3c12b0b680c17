package papertrade

import (
	"fmt"
	"strings"
)

// maxSymbolLength is the longest symbol accepted before any network call.
const maxSymbolLength = 10

// NormalizeSymbol returns the canonical (uppercase, trimmed) form of a symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateSymbol checks that a symbol is plausible before any network call.
// Separators '.' and '-' are allowed (e.g. "BTC-USD", "BRK.B"); the remainder
// must be alphanumeric and the whole symbol no longer than maxSymbolLength.
func ValidateSymbol(symbol string) error {
	if symbol == "" || len(symbol) > maxSymbolLength {
		return fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	stripped := strings.NewReplacer(".", "", "-", "").Replace(symbol)
	if stripped == "" {
		return fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	for _, r := range stripped {
		isDigit := r >= '0' && r <= '9'
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isDigit && !isAlpha {
			return fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
		}
	}
	return nil
}
