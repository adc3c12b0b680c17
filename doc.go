// Package papertrade implements the core of a paper-trading service: a
// cached market-data layer, a technical-indicator calculator, and a trade
// executor mutating per-user portfolios of virtual money.
//
// The core functionalities include:
//   - Market Data: a read-through, time-expiring quote cache composed with a
//     pluggable upstream Provider, serving single-symbol quotes and a fixed
//     basket of global index quotes.
//   - Indicators: SMA(20) and RSI(14) derived from daily closing prices,
//     classified into a simple OVERBOUGHT/OVERSOLD/NEUTRAL signal.
//   - Portfolio Ledger: a per-user wallet, open positions with their
//     weighted-average cost basis, and an append-only transaction log.
//   - Trade Executor: a stateless coordinator that validates BUY/SELL orders,
//     prices them against the market layer, and persists the resulting
//     portfolio as a single unit.
//
// All monetary and position arithmetic uses exact decimals so results are
// reproducible regardless of trade ordering. Concurrent trades against the
// same user are serialized; trades against different users are not.
//
// This package serves as the foundational logic for the `ptc` command-line
// tool.
package papertrade
