// Package tradepnl derives realized profit and loss from a ledger of
// peer-to-peer asset trades (buy/sell pairs priced in a fiat currency).
//
// The core functionalities include:
//   - Trade Records: immutable buy and sell values, decoded from a JSONL ledger,
//     imported from exchange JSON exports or read from a database store.
//   - Profit Engine: a stateless calculator turning a time-ordered sequence of
//     trades into a realized profit [Summary], using either FIFO lot matching or
//     weighted average cost accounting.
//   - Time Series: the same per-bucket computation repeated per calendar day and
//     rolled up per week, month, quarter or year into a [Series].
//
// All arithmetic is exact decimal arithmetic; values are rounded to 2 decimal
// places only once, on the way out.
//
// This package serves as the foundational logic for the `tpnl` command-line
// tool.
package tradepnl
