// Package models defines the core domain models for allocash.
//
// # Models
//
//   - Transaction: a dated income or expense movement recorded against an account
//   - Account: a named bucket (e.g., "Checking") that owns transactions
//   - Group: a named list of member names a transaction can be shared with
//   - Counterparty: the person name or group a balance is tracked against
//
// People are not stored. They are the distinct person names found on a
// user's transactions.
//
// # Design Principles
//
//  1. **Unsigned amounts**: Amount is always positive; the sign of a movement
//     comes from Type, never from the stored value
//  2. **Exact arithmetic**: amounts are decimals, so balances sum without drift
//  3. **Avoid circular references**: relationships use ID strings, not pointers
//  4. **One validation boundary**: Validate methods are the only place input
//     rules live; storage trusts what it is given
package models
