// Package models defines the domain models for Kidoikoiaki.
//
// # Models
//
//   - List: an expense-sharing group (a trip, a flat, a dinner club)
//   - Participant: a person on a list's roster
//   - Expense: one payment made by a participant on behalf of others
//   - Ledger: a list with its roster and expenses, read as one snapshot
//
// Participants are scoped to a single list; the same person on two lists is two participants.
//
// # Design Principles
//
// 1. **Money is decimal**: amounts use shopspring/decimal, never float64
// 2. **Avoid circular references**: relationships are ID strings, not pointers
// 3. **Roster order is insertion order**: participants are always returned oldest first
package models
