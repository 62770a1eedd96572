package model

import "time"

// TransactionKind classifies a point balance mutation.
type TransactionKind string

const (
	TransactionAccrue TransactionKind = "ACCRUE"
	TransactionRedeem TransactionKind = "REDEEM"
)

// KindForDelta derives the transaction kind from the sign of a point delta.
func KindForDelta(delta int64) TransactionKind {
	if delta < 0 {
		return TransactionRedeem
	}
	return TransactionAccrue
}

// PointHistoryEntry is one immutable row of the point audit trail. Entries are
// only ever appended; corrections are modeled as new compensating entries.
type PointHistoryEntry struct {
	ID         int64
	CustomerID int64
	PointDelta int64
	Kind       TransactionKind
	CreatedAt  time.Time
}
