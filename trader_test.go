package papertrade

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

// memStore is an in-memory Store for tests, with an optional save failure.
type memStore struct {
	mu       sync.Mutex
	data     map[string]*Portfolio
	failSave bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]*Portfolio)}
}

func (s *memStore) Load(userID string) (*Portfolio, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data[userID]
	if !ok {
		return nil, false, nil
	}
	return p.Clone(), true, nil
}

func (s *memStore) Save(userID string, p *Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return fmt.Errorf("disk full")
	}
	s.data[userID] = p.Clone()
	return nil
}

func newTestTrader(provider *fakeProvider) (*Trader, *memStore) {
	store := newMemStore()
	return NewTrader(NewMarketService(provider), store), store
}

func TestTrader_BuyThenSell(t *testing.T) {
	provider := newFakeProvider()
	provider.setQuote("AAPL", 50, 48)
	trader, _ := newTestTrader(provider)

	res, err := trader.ExecuteTrade("alice", "aapl", 10, BuyTrade)
	if err != nil {
		t.Fatal(err)
	}
	if !res.NewBalance.Equal(USD(9500)) {
		t.Errorf("balance after buy = %s, want %s", res.NewBalance, USD(9500))
	}
	if res.Transaction.Symbol != "AAPL" || res.Transaction.Type != BuyTrade {
		t.Errorf("transaction = %+v, want BUY AAPL", res.Transaction)
	}
	if !res.Transaction.Total.Equal(USD(500)) {
		t.Errorf("transaction total = %s, want %s", res.Transaction.Total, USD(500))
	}

	res, err = trader.ExecuteTrade("alice", "AAPL", 4, SellTrade)
	if err != nil {
		t.Fatal(err)
	}
	pos, ok := res.Portfolio.Position("AAPL")
	if !ok || pos.Quantity != 6 {
		t.Errorf("position after sell = %+v, want 6 shares", pos)
	}

	// The executed trades survive a reload from the store.
	p, err := trader.Portfolio("alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Transactions) != 2 {
		t.Errorf("persisted transactions = %d, want 2", len(p.Transactions))
	}
}

func TestTrader_RejectsBeforeFetching(t *testing.T) {
	provider := newFakeProvider()
	provider.setQuote("AAPL", 50, 48)
	trader, _ := newTestTrader(provider)

	cases := []struct {
		name     string
		symbol   string
		quantity int64
		side     TradeType
		want     error
	}{
		{"zero quantity", "AAPL", 0, BuyTrade, ErrInvalidQuantity},
		{"negative quantity", "AAPL", -5, SellTrade, ErrInvalidQuantity},
		{"bad side", "AAPL", 1, TradeType("HOLD"), ErrInvalidTradeType},
		{"bad symbol", "AA PL", 1, BuyTrade, ErrInvalidSymbol},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := trader.ExecuteTrade("alice", c.symbol, c.quantity, c.side)
			if !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
		})
	}
	if n := provider.callCount(); n != 0 {
		t.Errorf("provider called %d times on rejected trades, want 0", n)
	}
}

func TestTrader_QuoteFailureBlocksTrade(t *testing.T) {
	provider := newFakeProvider()
	provider.fails["TSLA"] = true
	trader, store := newTestTrader(provider)

	_, err := trader.ExecuteTrade("alice", "TSLA", 1, BuyTrade)
	if !errors.Is(err, ErrQuoteUnavailable) {
		t.Fatalf("err = %v, want ErrQuoteUnavailable", err)
	}
	if _, ok := store.data["alice"]; ok {
		t.Error("a failed trade must not create or persist a portfolio")
	}
}

func TestTrader_FailedSaveLeavesStoreUntouched(t *testing.T) {
	provider := newFakeProvider()
	provider.setQuote("AAPL", 50, 48)
	trader, store := newTestTrader(provider)

	if _, err := trader.ExecuteTrade("alice", "AAPL", 1, BuyTrade); err != nil {
		t.Fatal(err)
	}
	store.failSave = true
	if _, err := trader.ExecuteTrade("alice", "AAPL", 1, BuyTrade); err == nil {
		t.Fatal("expected save failure to surface")
	}
	store.failSave = false

	p, err := trader.Portfolio("alice")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Balance.Equal(USD(9950)) {
		t.Errorf("balance = %s, want %s untouched by the failed trade", p.Balance, USD(9950))
	}
	if len(p.Transactions) != 1 {
		t.Errorf("transactions = %d, want 1", len(p.Transactions))
	}
}

func TestTrader_ConcurrentBuysSettleExactly(t *testing.T) {
	// 100 concurrent one-share buys at 100 against exactly 10000 of funds:
	// serialization per user means all succeed and the wallet lands on zero.
	const buyers = 100
	provider := newFakeProvider()
	provider.setQuote("AAPL", 100, 100)
	trader, _ := newTestTrader(provider)

	var wg sync.WaitGroup
	errs := make(chan error, buyers)
	for range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := trader.ExecuteTrade("alice", "AAPL", 1, BuyTrade); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent buy failed: %v", err)
	}

	p, err := trader.Portfolio("alice")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Balance.IsZero() {
		t.Errorf("balance = %s, want exactly zero", p.Balance)
	}
	pos, _ := p.Position("AAPL")
	if pos.Quantity != buyers {
		t.Errorf("position = %d shares, want %d", pos.Quantity, buyers)
	}
	if len(p.Transactions) != buyers {
		t.Errorf("transactions = %d, want %d", len(p.Transactions), buyers)
	}
}

func TestTrader_OverdraftUnderConcurrency(t *testing.T) {
	// Funds for exactly 10 shares; 20 concurrent buyers. Exactly 10 must
	// succeed, the rest fail with insufficient funds.
	provider := newFakeProvider()
	provider.setQuote("AAPL", 1000, 1000)
	trader, _ := newTestTrader(provider)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, failed := 0, 0
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := trader.ExecuteTrade("alice", "AAPL", 1, BuyTrade)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrInsufficientFunds):
				failed++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 10 || failed != 10 {
		t.Errorf("succeeded = %d, failed = %d, want 10 and 10", succeeded, failed)
	}
	p, err := trader.Portfolio("alice")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Balance.IsZero() {
		t.Errorf("balance = %s, want exactly zero", p.Balance)
	}
}

func TestTrader_UsersAreIsolated(t *testing.T) {
	provider := newFakeProvider()
	provider.setQuote("AAPL", 50, 48)
	trader, _ := newTestTrader(provider)

	if _, err := trader.ExecuteTrade("alice", "AAPL", 10, BuyTrade); err != nil {
		t.Fatal(err)
	}
	p, err := trader.Portfolio("bob")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Balance.Equal(USD(10000)) {
		t.Errorf("bob's balance = %s, want a fresh %s", p.Balance, USD(10000))
	}
	if len(p.Transactions) != 0 {
		t.Errorf("bob's transactions = %d, want 0", len(p.Transactions))
	}
}

func TestTrader_PortfolioView(t *testing.T) {
	provider := newFakeProvider()
	provider.setQuote("AAPL", 50, 48)
	provider.setQuote("GOOG", 100, 101)
	clock := newFakeClock()
	service := NewMarketService(provider)
	service.quotes.now = clock.Now
	trader := NewTrader(service, newMemStore())

	if _, err := trader.ExecuteTrade("alice", "AAPL", 10, BuyTrade); err != nil {
		t.Fatal(err)
	}
	if _, err := trader.ExecuteTrade("alice", "GOOG", 2, BuyTrade); err != nil {
		t.Fatal(err)
	}

	// AAPL doubles, GOOG's provider goes dark. Let the quote cache expire so
	// the view sees the new market.
	provider.setQuote("AAPL", 100, 50)
	provider.fails["GOOG"] = true
	clock.Advance(QuoteTTL)

	view, err := trader.PortfolioView("alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Positions) != 2 {
		t.Fatalf("positions = %d, want 2", len(view.Positions))
	}

	aapl := view.Positions[0]
	if aapl.Symbol != "AAPL" || !aapl.Live {
		t.Fatalf("first position = %+v, want live AAPL", aapl)
	}
	if !aapl.PL.Equal(USD(500)) {
		t.Errorf("AAPL P/L = %s, want %s", aapl.PL, USD(500))
	}
	if !aapl.PLPercent.Equal(Percent(100)) {
		t.Errorf("AAPL P/L%% = %s, want 100.00%%", aapl.PLPercent)
	}

	goog := view.Positions[1]
	if goog.Symbol != "GOOG" || goog.Live {
		t.Fatalf("second position = %+v, want dark GOOG", goog)
	}
	if !goog.CurrentPrice.Equal(USD(100)) {
		t.Errorf("GOOG falls back to cost basis, got %s", goog.CurrentPrice)
	}

	if !view.Balance.Equal(USD(9300)) {
		t.Errorf("balance = %s, want %s", view.Balance, USD(9300))
	}
	if !view.TotalValue.Equal(USD(1200)) {
		t.Errorf("total value = %s, want %s", view.TotalValue, USD(1200))
	}
	if !view.TotalAccountValue.Equal(USD(10500)) {
		t.Errorf("account value = %s, want %s", view.TotalAccountValue, USD(10500))
	}
}
