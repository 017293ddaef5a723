package swap

import "errors"

// Protocol errors. Structural violations are never tolerated: they indicate
// either a malicious or a buggy counterparty, and acting on the transaction
// anyway can strand funds.
var (
	// ErrInsufficientFunds is returned when coin selection exhausts the
	// wallet's unspent outputs below the target quantity.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrProtocolStructure is returned when a transaction fails a required
	// shape check (input/output count, unlocking-script element count).
	ErrProtocolStructure = errors.New("transaction violates protocol structure")

	// ErrLockTimeWindow is returned when a refund lock time falls outside
	// the accepted future window.
	ErrLockTimeWindow = errors.New("refund lock time outside accepted window")

	// ErrFinalSequence is returned when a refund input carries the final
	// sequence number, which would make its lock time unenforceable.
	ErrFinalSequence = errors.New("refund input sequence is final")

	// ErrSigningIncomplete is returned when the wallet could not fully
	// sign a transaction.
	ErrSigningIncomplete = errors.New("wallet did not sign all inputs")

	// ErrScriptMismatch is returned when the escrow script reconstructed
	// at sign time differs from the script actually recorded in the
	// funding output. The two must be byte-identical or the produced
	// signature would be silently invalid.
	ErrScriptMismatch = errors.New("reconstructed escrow script does not match funding output")

	// ErrSecretNotFound is returned when no pushed element of a spend
	// script hashes to the expected secret hash.
	ErrSecretNotFound = errors.New("secret not found in spend script")
)
