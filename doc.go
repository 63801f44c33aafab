// Package household provides the types and functions to track a household's
// finances: accounts, budgets, expenses, interpersonal debts, loans,
// properties and investment assets organized in groups.
//
// The core functionalities include:
//   - Domain Store: holding every collection, with add, update and delete
//     operations per record kind and subscribers notified of every change.
//   - Snapshot: an immutable view of the store, with the derived values
//     (emergency fund, budget usage, gains and losses, allocations, net worth).
//   - Formatting: locale aware rendering of money, numbers and percentages.
//   - Data Persistence: encoding and decoding of the records to and from a
//     human-readable JSONL file, one record per line.
//
// This package serves as the foundational logic for the `hh` command-line
// tool and its HTTP API.
package household
