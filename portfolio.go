package papertrade

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// DefaultCurrency is the currency of every wallet and trade in this core.
const DefaultCurrency = "USD"

// startingBalance is the wallet value granted on first portfolio access.
var startingBalance = M(10000, DefaultCurrency)

// TradeType identifies the direction of a trade.
type TradeType string

const (
	BuyTrade  TradeType = "BUY"
	SellTrade TradeType = "SELL"
)

// ParseTradeType parses a string into a TradeType, case-insensitively.
func ParseTradeType(s string) (TradeType, error) {
	switch TradeType(NormalizeSymbol(s)) {
	case BuyTrade:
		return BuyTrade, nil
	case SellTrade:
		return SellTrade, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTradeType, s)
	}
}

// Position is a user's current holding in one symbol. A position with zero
// quantity never persists: it is removed from the portfolio instead.
type Position struct {
	Symbol   string
	Quantity int64
	AvgPrice Money // quantity-weighted mean purchase price of the held units
}

// Transaction is one executed trade. Transactions are immutable and the log
// is append-only: a transaction is never modified or deleted.
type Transaction struct {
	Date     time.Time
	Symbol   string
	Type     TradeType
	Quantity int64
	Price    Money
	Total    Money // Price x Quantity at execution time
}

// Portfolio owns one user's wallet balance, open positions, and ordered
// transaction log. It is created lazily on first access and mutated
// exclusively by the Trader.
type Portfolio struct {
	Balance      Money
	Positions    map[string]Position
	Transactions []Transaction
}

// NewPortfolio creates a portfolio with the starting wallet balance.
func NewPortfolio() *Portfolio {
	return &Portfolio{
		Balance:   startingBalance,
		Positions: make(map[string]Position),
	}
}

// Position returns the position held for a symbol, if any.
func (p *Portfolio) Position(symbol string) (Position, bool) {
	pos, ok := p.Positions[symbol]
	return pos, ok
}

// Symbols returns the held symbols in ascending order.
func (p *Portfolio) Symbols() []string {
	return slices.Sorted(maps.Keys(p.Positions))
}

// Buy debits the wallet with quantity x price and merges the lot into the
// position, recomputing the weighted-average cost basis. It validates before
// mutating: on error the portfolio is guaranteed unchanged.
func (p *Portfolio) Buy(on time.Time, symbol string, quantity int64, price Money) (Transaction, error) {
	if quantity <= 0 {
		return Transaction{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	total := price.Mul(quantity)
	if p.Balance.LessThan(total) {
		return Transaction{}, fmt.Errorf("%w: %s needed, %s available", ErrInsufficientFunds, total, p.Balance)
	}

	p.Balance = p.Balance.Sub(total)
	if pos, ok := p.Positions[symbol]; ok {
		newQuantity := pos.Quantity + quantity
		// avg = (oldQty x oldAvg + total) / newQty, kept exact in decimals.
		cost := pos.AvgPrice.Mul(pos.Quantity).Add(total)
		p.Positions[symbol] = Position{
			Symbol:   symbol,
			Quantity: newQuantity,
			AvgPrice: cost.Div(newQuantity),
		}
	} else {
		p.Positions[symbol] = Position{Symbol: symbol, Quantity: quantity, AvgPrice: price}
	}

	tx := Transaction{Date: on, Symbol: symbol, Type: BuyTrade, Quantity: quantity, Price: price, Total: total}
	p.Transactions = append(p.Transactions, tx)
	return tx, nil
}

// Sell credits the wallet with quantity x price and reduces the position,
// removing it entirely when it reaches zero. It validates before mutating:
// on error the portfolio is guaranteed unchanged.
func (p *Portfolio) Sell(on time.Time, symbol string, quantity int64, price Money) (Transaction, error) {
	if quantity <= 0 {
		return Transaction{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	pos, ok := p.Positions[symbol]
	if !ok || pos.Quantity < quantity {
		return Transaction{}, fmt.Errorf("%w: %s", ErrInsufficientHoldings, symbol)
	}

	total := price.Mul(quantity)
	p.Balance = p.Balance.Add(total)
	if pos.Quantity == quantity {
		// The cost basis of a closed position is discarded, not retained.
		delete(p.Positions, symbol)
	} else {
		pos.Quantity -= quantity
		p.Positions[symbol] = pos
	}

	tx := Transaction{Date: on, Symbol: symbol, Type: SellTrade, Quantity: quantity, Price: price, Total: total}
	p.Transactions = append(p.Transactions, tx)
	return tx, nil
}

// Clone returns a deep copy of the portfolio. The Trader snapshots before
// mutating so a failed persist never leaves a half-applied trade visible.
func (p *Portfolio) Clone() *Portfolio {
	return &Portfolio{
		Balance:      p.Balance,
		Positions:    maps.Clone(p.Positions),
		Transactions: slices.Clone(p.Transactions),
	}
}
