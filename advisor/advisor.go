// Package advisor produces market and portfolio commentary through the
// Gemini API. Without a GEMINI_API_KEY the advisor stays in mock mode and
// returns canned guidance instead of failing.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	papertrade "github.com/etnz/papertrade"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Mock-mode responses, served when no API key is configured.
const (
	mockInsight = "AI Oracle: Connect your Gemini API key to receive real-time market sentiment analysis and trading signals."
	mockAdvice  = "AI Suggestion: Connect your Gemini API key to receive an assessment of your positions."
)

// Enabled reports whether a Gemini API key is configured.
func Enabled() bool {
	return os.Getenv("GEMINI_API_KEY") != ""
}

// Analyst is a chat with a financial analyst persona.
type Analyst struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

func NewAnalyst() *Analyst {
	return &Analyst{
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a professional financial analyst commenting on a paper-trading
			account. Be concise, factual, and never give personalized financial
			advice. The amounts involved are simulated.
		`}}},
		},
	}
}

// Start creates the underlying chat session. Without it the analyst answers
// in mock mode.
func (a *Analyst) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, a.ModelName, a.Config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// ask sends one text prompt and returns the first text part of the answer.
func (a *Analyst) ask(ctx context.Context, prompt string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: prompt})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from analyst")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// quoteDoc is the compact JSON shape fed into prompts.
type quoteDoc struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         string  `json:"price"`
	ChangePercent float64 `json:"changePercent"`
}

func quoteDocs(quotes []papertrade.Quote) []quoteDoc {
	docs := make([]quoteDoc, 0, len(quotes))
	for _, q := range quotes {
		docs = append(docs, quoteDoc{
			Symbol:        q.Symbol,
			Name:          q.Name,
			Price:         q.Price.Decimal().String(),
			ChangePercent: float64(q.ChangePercent),
		})
	}
	return docs
}

// MarketInsights summarizes the global market sentiment from the index
// basket quotes.
func (a *Analyst) MarketInsights(ctx context.Context, quotes []papertrade.Quote) (string, error) {
	if a.chat == nil {
		return mockInsight, nil
	}
	data, err := json.Marshal(quoteDocs(quotes))
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(`Analyze the following market indices and provide a
concise (2-3 sentence) summary of the global market sentiment. Identify if it
is a 'Bullish', 'Bearish', or 'Neutral' day and give one key reason why.

Data: %s

Format: "Market Sentiment: [Sentiment]. [Insight]"`, data)
	return a.ask(ctx, prompt)
}

// positionDoc is the compact JSON shape of one valued position.
type positionDoc struct {
	Symbol    string  `json:"symbol"`
	Quantity  int64   `json:"quantity"`
	AvgPrice  string  `json:"avgPrice"`
	Price     string  `json:"currentPrice"`
	PLPercent float64 `json:"plPercent"`
}

// PortfolioAdvice comments on the health of the user's open positions.
func (a *Analyst) PortfolioAdvice(ctx context.Context, view *papertrade.PortfolioView) (string, error) {
	if a.chat == nil {
		return mockAdvice, nil
	}
	docs := make([]positionDoc, 0, len(view.Positions))
	for _, pv := range view.Positions {
		docs = append(docs, positionDoc{
			Symbol:    pv.Symbol,
			Quantity:  pv.Quantity,
			AvgPrice:  pv.AvgPrice.Decimal().String(),
			Price:     pv.CurrentPrice.Decimal().String(),
			PLPercent: float64(pv.PLPercent),
		})
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(`Review the following simulated positions and give 3
short bullet points on their health: concentration, winners, and losers.
Keep it professional and concise, with no personalized advice.

Positions: %s`, data)
	return a.ask(ctx, prompt)
}
