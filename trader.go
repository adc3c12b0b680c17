package papertrade

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Store persists one portfolio per user. Implementations must be safe for
// concurrent use; the Trader serializes writes per user but distinct users
// load and save concurrently.
type Store interface {
	// Load returns the portfolio for a user, or found=false when the user
	// has no portfolio yet.
	Load(userID string) (p *Portfolio, found bool, err error)
	// Save persists the portfolio for a user, replacing any previous state.
	Save(userID string, p *Portfolio) error
}

// TradeResult reports one executed trade back to the caller.
type TradeResult struct {
	Transaction Transaction
	NewBalance  Money
	Portfolio   *Portfolio
}

// Trader executes trades against user portfolios. Each trade is atomic per
// user: the load, mutate, save sequence runs under a per-user lock so two
// concurrent trades for one user never interleave, while trades for
// different users proceed in parallel.
type Trader struct {
	market *MarketService
	store  Store
	now    func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTrader creates a trade executor over a market service and a store.
func NewTrader(market *MarketService, store Store) *Trader {
	return &Trader{
		market: market,
		store:  store,
		now:    time.Now,
		locks:  make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex dedicated to one user, creating it on first use.
func (t *Trader) userLock(userID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[userID] = l
	}
	return l
}

// load returns the user's portfolio, creating a fresh one with the starting
// balance on first access.
func (t *Trader) load(userID string) (*Portfolio, error) {
	p, found, err := t.store.Load(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio for %q: %w", userID, err)
	}
	if !found {
		p = NewPortfolio()
	}
	return p, nil
}

// Portfolio returns a copy of the user's current portfolio, creating it on
// first access. First access is persisted so the transaction log and balance
// survive even if no trade is ever made.
func (t *Trader) Portfolio(userID string) (*Portfolio, error) {
	lock := t.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	p, found, err := t.store.Load(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio for %q: %w", userID, err)
	}
	if !found {
		p = NewPortfolio()
		if err := t.store.Save(userID, p); err != nil {
			return nil, fmt.Errorf("failed to save portfolio for %q: %w", userID, err)
		}
	}
	return p.Clone(), nil
}

// ExecuteTrade validates and executes a BUY or SELL for a user at the
// current market price. The quote is fetched before taking the user lock so
// a slow provider never blocks other trades for the same user longer than
// the ledger mutation itself.
func (t *Trader) ExecuteTrade(userID, symbol string, quantity int64, side TradeType) (*TradeResult, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if side != BuyTrade && side != SellTrade {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTradeType, side)
	}
	symbol = NormalizeSymbol(symbol)
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	quote, err := t.market.GetQuote(symbol)
	if err != nil {
		return nil, err
	}
	price := quote.Price

	lock := t.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	p, err := t.load(userID)
	if err != nil {
		return nil, err
	}

	// Mutate a snapshot so a failed save leaves the stored state untouched.
	next := p.Clone()
	var tx Transaction
	switch side {
	case BuyTrade:
		tx, err = next.Buy(t.now(), symbol, quantity, price)
	case SellTrade:
		tx, err = next.Sell(t.now(), symbol, quantity, price)
	}
	if err != nil {
		return nil, err
	}

	if err := t.store.Save(userID, next); err != nil {
		return nil, fmt.Errorf("failed to save portfolio for %q: %w", userID, err)
	}
	log.Printf("executed %s %d %s at %s for %q", side, quantity, symbol, price, userID)

	return &TradeResult{Transaction: tx, NewBalance: next.Balance, Portfolio: next}, nil
}
