package papertrade

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// amountDoc is a specialized struct to read and write Money in two fields.
type amountDoc struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a amountDoc) Money() Money {
	return M(a.Amount, a.Currency)
}

func docAmount(m Money) amountDoc {
	return amountDoc{Amount: m.Decimal(), Currency: m.cur}
}

// positionDoc is a specialized struct for encoding one position.
type positionDoc struct {
	Symbol   string          `json:"symbol"`
	Quantity int64           `json:"quantity"`
	AvgPrice decimal.Decimal `json:"avgPrice"`
	Currency string          `json:"currency"`
}

// transactionDoc is a specialized struct for encoding one transaction.
type transactionDoc struct {
	Date     time.Time       `json:"date"`
	Symbol   string          `json:"symbol"`
	Type     TradeType       `json:"type"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

// portfolioDoc is the persisted shape of a Portfolio. Positions are stored
// as a sorted list, not a map, for canonical output.
type portfolioDoc struct {
	Balance      amountDoc        `json:"balance"`
	Positions    []positionDoc    `json:"positions"`
	Transactions []transactionDoc `json:"transactions"`
}

// EncodePortfolio persists a portfolio to an io.Writer as indented JSON.
// Positions are ordered by symbol for canonical output.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	doc := portfolioDoc{
		Balance:      docAmount(p.Balance),
		Positions:    make([]positionDoc, 0, len(p.Positions)),
		Transactions: make([]transactionDoc, 0, len(p.Transactions)),
	}
	for _, symbol := range p.Symbols() {
		pos := p.Positions[symbol]
		doc.Positions = append(doc.Positions, positionDoc{
			Symbol:   pos.Symbol,
			Quantity: pos.Quantity,
			AvgPrice: pos.AvgPrice.Decimal(),
			Currency: pos.AvgPrice.cur,
		})
	}
	for _, tx := range p.Transactions {
		doc.Transactions = append(doc.Transactions, transactionDoc{
			Date:     tx.Date,
			Symbol:   tx.Symbol,
			Type:     tx.Type,
			Quantity: tx.Quantity,
			Price:    tx.Price.Decimal(),
			Total:    tx.Total.Decimal(),
			Currency: tx.Price.cur,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode portfolio: %w", err)
	}
	return nil
}

// DecodePortfolio reads a portfolio previously written by EncodePortfolio.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	var doc portfolioDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode portfolio: %w", err)
	}

	p := &Portfolio{
		Balance:   doc.Balance.Money(),
		Positions: make(map[string]Position, len(doc.Positions)),
	}
	for _, pd := range doc.Positions {
		p.Positions[pd.Symbol] = Position{
			Symbol:   pd.Symbol,
			Quantity: pd.Quantity,
			AvgPrice: M(pd.AvgPrice, pd.Currency),
		}
	}
	for _, td := range doc.Transactions {
		p.Transactions = append(p.Transactions, Transaction{
			Date:     td.Date,
			Symbol:   td.Symbol,
			Type:     td.Type,
			Quantity: td.Quantity,
			Price:    M(td.Price, td.Currency),
			Total:    M(td.Total, td.Currency),
		})
	}
	return p, nil
}
