package service

import (
	"fmt"

	"github.com/google/uuid"

	m "schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/money"
)

/* =========================================================
   Ledger arithmetic — pure functions, no storage.

   Every outstanding-balance write is paired with exactly one
   ledger row whose balance_after equals the new outstanding.
   These helpers are the single place that arithmetic lives,
   so the append path and the replay check cannot drift apart.
========================================================= */

// NextBalance applies one entry to a prior balance. CHARGE raises the
// balance, PAYMENT lowers it, ADJUSTMENT applies its signed amount as-is.
func NextBalance(prev money.Amount, entryType m.FeeLedgerEntryType, amount money.Amount) (money.Amount, error) {
	switch entryType {
	case m.FeeLedgerCharge:
		return prev.Add(amount), nil
	case m.FeeLedgerPayment:
		return prev.Sub(amount), nil
	case m.FeeLedgerAdjustment:
		return prev.Add(amount), nil
	default:
		return money.Zero, fmt.Errorf("unknown ledger entry type %q", entryType)
	}
}

// ReplayLedger folds entries in creation order starting from zero and
// returns the final balance. It fails when any stored balance_after does
// not match the recomputed running balance, or when the balance ever dips
// below zero — either means the journal was corrupted.
func ReplayLedger(entries []m.FeeLedger) (money.Amount, error) {
	balance := money.Zero
	for i, e := range entries {
		next, err := NextBalance(balance, e.FeeLedgerEntryType, e.FeeLedgerAmount)
		if err != nil {
			return money.Zero, fmt.Errorf("entry %d: %w", i, err)
		}
		if next.IsNegative() {
			return money.Zero, fmt.Errorf("entry %d (%s %s) drives the balance negative", i, e.FeeLedgerEntryType, e.FeeLedgerAmount)
		}
		if !next.Equal(e.FeeLedgerBalanceAfter) {
			return money.Zero, fmt.Errorf("entry %d: stored balance_after %s, replay computes %s", i, e.FeeLedgerBalanceAfter, next)
		}
		balance = next
	}
	return balance, nil
}

// newLedgerEntry builds the paired journal row for a balance write.
func newLedgerEntry(assignmentID uuid.UUID, entryType m.FeeLedgerEntryType, amount, balanceAfter money.Amount, note string) m.FeeLedger {
	n := note
	return m.FeeLedger{
		FeeLedgerAssignmentID: assignmentID,
		FeeLedgerEntryType:    entryType,
		FeeLedgerAmount:       amount,
		FeeLedgerBalanceAfter: balanceAfter,
		FeeLedgerNote:         &n,
	}
}
