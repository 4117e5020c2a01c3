// Package capital tracks the multi-currency capital of a P2P stablecoin
// trader. It derives account balances, the exchange venue balance, a
// weighted-average acquisition rate and the total capital from an
// append-style log of financial events.
//
// The core functionalities include:
//   - Arithmetic: exchange-style truncation (never rounding) of fiat and
//     stablecoin amounts.
//   - Entity Model: accounts, P2P orders, expenses, fund movements, rate
//     settings and daily reports, each with its validity rules and an explicit
//     patch type for partial updates.
//   - Balance Calculator: per-account balances and the shared venue balance.
//   - Valuation Engine: stablecoin rate (weighted average or manual) and the
//     total capital in the local and the foreign currency.
//   - Report Snapshotter: idempotent daily capital reports.
//   - Interchange: import/export of the whole Snapshot as a JSON document,
//     and import of documents produced by the legacy web application.
//
// Every derivation is a pure function of a Snapshot. Mutations never modify
// the Snapshot they are called on: they return a new one. The package never
// performs I/O on its own; see the store package for persistence.
package capital
