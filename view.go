package papertrade

import "log"

// PositionView is a position valued at the current market price. When the
// quote provider is unreachable, Live is false and the position is valued
// at its average purchase price so the totals stay meaningful.
type PositionView struct {
	Position
	CurrentPrice Money
	CurrentValue Money
	PL           Money
	PLPercent    Percent
	Live         bool
}

// PortfolioView is a full valuation of one user's portfolio.
type PortfolioView struct {
	Balance           Money
	TotalValue        Money // market value of all positions
	TotalAccountValue Money // balance + total position value
	Positions         []PositionView
	Transactions      []Transaction
}

// PortfolioView values a user's portfolio at current market prices.
// Positions appear in symbol order. A quote failure on one symbol does not
// fail the view: that position falls back to its cost basis.
func (t *Trader) PortfolioView(userID string) (*PortfolioView, error) {
	p, err := t.Portfolio(userID)
	if err != nil {
		return nil, err
	}

	view := &PortfolioView{
		Balance:      p.Balance,
		TotalValue:   M(0, p.Balance.Currency()),
		Transactions: p.Transactions,
	}
	for _, symbol := range p.Symbols() {
		pos := p.Positions[symbol]
		pv := PositionView{Position: pos, CurrentPrice: pos.AvgPrice}
		if quote, err := t.market.GetQuote(symbol); err != nil {
			log.Printf("valuing %s at cost basis: %v", symbol, err)
		} else {
			pv.CurrentPrice = quote.Price
			pv.Live = true
		}
		pv.CurrentValue = pv.CurrentPrice.Mul(pos.Quantity)
		pv.PL = pv.CurrentValue.Sub(pos.AvgPrice.Mul(pos.Quantity))
		if !pos.AvgPrice.IsZero() {
			ratio := pv.CurrentPrice.Decimal().Sub(pos.AvgPrice.Decimal()).Div(pos.AvgPrice.Decimal())
			pv.PLPercent = Percent(100 * ratio.InexactFloat64())
		}
		view.TotalValue = view.TotalValue.Add(pv.CurrentValue)
		view.Positions = append(view.Positions, pv)
	}
	view.TotalAccountValue = view.Balance.Add(view.TotalValue)
	return view, nil
}
