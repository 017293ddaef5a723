// Package swap - validation of counterparty-supplied refund transactions.
package swap

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/wire"
)

// Default refund lock window. A shorter lock gives the refunding party no
// time to react; a longer one ties funds up excessively if the swap stalls.
const (
	DefaultMinLockAhead = 12 * time.Hour
	DefaultMaxLockAhead = 72 * time.Hour
)

// RefundValidator checks a counterparty-built refund transaction before this
// party exposes funds by broadcasting its own funding transaction. The bounds
// and clock are held as immutable parameters rather than process globals so
// they can be exercised with injected times.
type RefundValidator struct {
	// MinLockAhead and MaxLockAhead bound how far in the future the
	// refund lock time must fall.
	MinLockAhead time.Duration
	MaxLockAhead time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewRefundValidator returns a validator with the default 12h-72h window.
func NewRefundValidator() *RefundValidator {
	return &RefundValidator{
		MinLockAhead: DefaultMinLockAhead,
		MaxLockAhead: DefaultMaxLockAhead,
		Now:          time.Now,
	}
}

// Validate checks the refund transaction's structure and lock window. The
// checks run in a fixed order and each violation produces a distinct fatal
// error; on any error, the caller must not proceed with funding.
func (v *RefundValidator) Validate(tx *wire.MsgTx) error {
	now := time.Now()
	if v.Now != nil {
		now = v.Now()
	}

	lockTime := time.Unix(int64(tx.LockTime), 0).UTC()
	if lockTime.Before(now.Add(v.MinLockAhead)) {
		return fmt.Errorf("%w: lock time %s is less than %s in the future",
			ErrLockTimeWindow, lockTime.Format(time.DateTime), v.MinLockAhead)
	}
	if lockTime.After(now.Add(v.MaxLockAhead)) {
		return fmt.Errorf("%w: lock time %s is more than %s in the future",
			ErrLockTimeWindow, lockTime.Format(time.DateTime), v.MaxLockAhead)
	}

	if len(tx.TxIn) != 1 {
		return fmt.Errorf("%w: refund has %d inputs, expected exactly one", ErrProtocolStructure, len(tx.TxIn))
	}
	if len(tx.TxOut) != 1 {
		return fmt.Errorf("%w: refund has %d outputs, expected exactly one", ErrProtocolStructure, len(tx.TxOut))
	}

	// A final sequence number lets the transaction confirm regardless of
	// its lock time, which defeats the refund guarantee entirely.
	if tx.TxIn[0].Sequence == finalSequence {
		return fmt.Errorf("%w: sequence %#x makes the lock time unenforceable", ErrFinalSequence, tx.TxIn[0].Sequence)
	}

	return nil
}
