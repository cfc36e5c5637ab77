// Package investlog records investment transactions and answers questions
// about them: which transactions match a search, in what order, and how
// much they earned together.
//
// The core functionalities include:
//   - Records: immutable investment transactions (an asset bought or sold
//     for a principal, now worth a current value) whose profit is always
//     derived, never stored.
//   - Search: a pure engine that filters records on a Query, sorts them
//     deterministically and aggregates the result (count, principal,
//     current value, net profit, return on investment).
//   - Ledger: a validated set of records loaded from a Source, a JSONL file,
//     a database or the sample data.
//   - Reports: the dashboard overview, with allocation by asset type and a
//     monthly trend.
//
// This package serves as the foundational logic for the `ivl` command-line
// tool and its HTTP API. It does no I/O besides reading and writing ledger
// files, and it does not log.
package investlog
