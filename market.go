package papertrade

import (
	"fmt"
	"log"
	"time"
)

// Provider is the upstream market-data source. Implementations may block on
// network I/O and must enforce their own request timeout; every failure is
// reported as an error, never as a partial Quote.
type Provider interface {
	// Quote fetches the current quote for one symbol.
	Quote(symbol string) (Quote, error)
	// DailyHistory fetches up to days of daily bars for one symbol, oldest first.
	DailyHistory(symbol string, days int) ([]Bar, error)
}

// Default freshness windows. The index basket moves slowly enough to be
// served for a few minutes; a single-symbol quote goes stale faster.
const (
	SummaryTTL = 5 * time.Minute
	QuoteTTL   = time.Minute
)

// historyDays is the window requested for indicator computation: enough
// calendar days to cover 20 trading days with margin.
const historyDays = 90

// marketBasket is the fixed set of global index and crypto symbols served by
// the market summary.
var marketBasket = []string{"^GSPC", "^IXIC", "^DJI", "^FTSE", "^NSEI", "^N225", "^GDAXI", "BTC-USD"}

// basketNames maps basket symbols to their display names, so the summary
// never depends on the provider's best-effort name lookup.
var basketNames = map[string]string{
	"^GSPC":   "S&P 500",
	"^IXIC":   "Nasdaq",
	"^DJI":    "Dow Jones",
	"^FTSE":   "FTSE 100",
	"^NSEI":   "Nifty 50",
	"^N225":   "Nikkei 225",
	"^GDAXI":  "DAX",
	"BTC-USD": "Bitcoin",
}

const summaryKey = "summary"

// MarketService is the read-through quote layer: a cache-aside composition of
// a TTL cache and an upstream Provider. It owns its caches, so tests can run
// against isolated instances.
type MarketService struct {
	provider Provider
	quotes   *Cache[Quote]
	summary  *Cache[[]Quote]
}

// NewMarketService creates a market service around the given provider with
// the default TTLs.
func NewMarketService(provider Provider) *MarketService {
	return &MarketService{
		provider: provider,
		quotes:   NewCache[Quote](QuoteTTL),
		summary:  NewCache[[]Quote](SummaryTTL),
	}
}

// GetQuote returns the current quote for a symbol, served from cache while
// fresh. Invalid symbols are rejected before any network call; upstream
// failures surface as ErrQuoteUnavailable.
func (s *MarketService) GetQuote(symbol string) (Quote, error) {
	symbol = NormalizeSymbol(symbol)
	if err := ValidateSymbol(symbol); err != nil {
		return Quote{}, err
	}
	if q, ok := s.quotes.Get(symbol); ok {
		return q, nil
	}
	// The fetch happens outside the cache lock: a slow upstream call for one
	// symbol must not block lookups for others. Two concurrent misses may
	// both fetch; the last Set wins.
	q, err := s.provider.Quote(symbol)
	if err != nil {
		log.Printf("quote fetch %s: %v", symbol, err)
		return Quote{}, fmt.Errorf("%s: %w", symbol, ErrQuoteUnavailable)
	}
	s.quotes.Set(symbol, q)
	return q, nil
}

// MarketSummary returns quotes for the fixed index basket. A single symbol's
// failure degrades that one entry only; the summary is the list of
// successfully resolved quotes.
func (s *MarketService) MarketSummary() []Quote {
	if quotes, ok := s.summary.Get(summaryKey); ok {
		return quotes
	}
	quotes := make([]Quote, 0, len(marketBasket))
	for _, symbol := range marketBasket {
		q, err := s.provider.Quote(symbol)
		if err != nil {
			log.Printf("market summary %s: %v", symbol, err)
			continue
		}
		if name, ok := basketNames[symbol]; ok {
			q.Name = name
		}
		quotes = append(quotes, q)
	}
	if len(quotes) > 0 {
		s.summary.Set(summaryKey, quotes)
	}
	return quotes
}

// GetIndicators computes the technical indicators for a symbol from its
// daily closing-price history.
func (s *MarketService) GetIndicators(symbol string) (Indicators, error) {
	symbol = NormalizeSymbol(symbol)
	if err := ValidateSymbol(symbol); err != nil {
		return Indicators{}, err
	}
	bars, err := s.provider.DailyHistory(symbol, historyDays)
	if err != nil {
		log.Printf("history fetch %s: %v", symbol, err)
		return Indicators{}, fmt.Errorf("%s history: %w", symbol, ErrQuoteUnavailable)
	}
	return ComputeIndicators(bars)
}
