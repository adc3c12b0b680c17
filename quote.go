package papertrade

// Quote is a point-in-time price snapshot for one symbol. Quotes are
// ephemeral: recomputed on every fetch, and never persisted beyond the cache.
type Quote struct {
	Symbol        string
	Name          string
	Price         Money
	PreviousClose Money
	Change        Money
	ChangePercent Percent
	DayHigh       Money
	DayLow        Money
	Volume        int64
	Currency      string
}

// NewQuote builds a quote from a price and its previous close, deriving
// change and change percent. When either input is missing (zero) the derived
// fields stay at zero rather than reporting a bogus move.
func NewQuote(symbol, name string, price, previousClose Money) Quote {
	q := Quote{
		Symbol:        NormalizeSymbol(symbol),
		Name:          name,
		Price:         price,
		PreviousClose: previousClose,
		Currency:      price.Currency(),
	}
	if q.Name == "" {
		// A display name is best effort only, fall back to the symbol.
		q.Name = q.Symbol
	}
	if !price.IsZero() && !previousClose.IsZero() {
		q.Change = price.Sub(previousClose)
		pct, _ := q.Change.Decimal().Div(previousClose.Decimal()).Mul(hundred).Float64()
		q.ChangePercent = Percent(pct)
	}
	return q
}

// Color returns the sign-derived display tag of the quote.
func (q Quote) Color() string {
	if q.Change.IsNegative() {
		return "red"
	}
	return "green"
}
