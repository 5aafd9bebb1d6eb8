// Package models defines the persisted domain records of the debt ledger.
//
// The three core records are:
//   - Group: a set of parties who share expenses
//   - Expense: a single cost posted against a group, fanned out into debts
//   - Debt: a positive pairwise obligation within a group
//
// Group and Expense IDs come from monotonically increasing counters and are
// never reused, even after the entity they named is deleted. Member and
// split lists are ordered sets: first-occurrence order, no duplicates.
//
// Monetary values are money.Amount (unsigned 128-bit minor units). A stored
// Debt amount is always strictly positive; a debt that reaches zero is
// deleted, never written as zero.
package models
