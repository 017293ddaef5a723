// Package swap implements the transaction construction and cooperative
// signing logic for a trustless two-party cross-chain atomic swap built from
// base Bitcoin-family script primitives.
//
// The protocol follows the classic four-transaction layout: each party funds
// an escrow output (TX1/TX3) locked by a dual-path script, and holds a
// time-locked refund (TX2/TX4) co-signed by the counterparty before any funds
// move. The initiator's secret links the two escrows: claiming one reveals
// the preimage needed to claim the other.
//
// The package owns no keys, performs no network IO, and never broadcasts.
// Key material, coin listing and signing are delegated to the Wallet
// interface; fee policy to the FeeRate interface.
package swap

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

// Transaction size estimates used for fee computation. These are conservative
// byte-size guesses; a proper size estimator can replace them via the FeeRate
// collaborator without touching the builders.
const (
	// escrowTxSizeEstimate covers a funding transaction with a handful of
	// inputs, the escrow output and a change output.
	escrowTxSizeEstimate = 2000

	// spendTxSizeEstimate covers a single-input, single-output spend of an
	// escrow output (refund or secret claim).
	spendTxSizeEstimate = 1000
)

const (
	// refundSequence is the sequence number used on refund inputs. Any
	// value below finalSequence keeps the transaction's lock time
	// enforceable.
	refundSequence = 1

	// finalSequence disables lock-time enforcement for an input. A refund
	// carrying it provides no refund guarantee at all.
	finalSequence = wire.MaxTxInSequenceNum

	// escrowOutputIndex is the fixed position of the escrow output in a
	// funding transaction.
	escrowOutputIndex = 0
)

// UTXO is a reference to spendable value held by a wallet. It is read-only
// to this package; ownership stays with the wallet.
type UTXO struct {
	OutPoint wire.OutPoint
	Amount   uint64 // in the smallest unit
}

// Wallet is the external wallet collaborator. Implementations own all key
// material; only addresses, signatures and signed transactions cross this
// boundary.
type Wallet interface {
	// ListUnspent returns the wallet's spendable outputs in the wallet's
	// own order. No particular ordering is required.
	ListUnspent() ([]UTXO, error)

	// SignTransaction signs every input the wallet has keys for and
	// reports whether the result is completely signed. The input
	// transaction is not modified.
	SignTransaction(tx *wire.MsgTx) (*wire.MsgTx, bool, error)

	// ChangeAddress returns a fresh change address.
	ChangeAddress() (btcutil.Address, error)

	// PrivateKey returns the signing key for one of the wallet's own
	// addresses.
	PrivateKey(addr btcutil.Address) (*btcec.PrivateKey, error)
}

// FeeRate is the external fee policy collaborator.
type FeeRate interface {
	// Fee returns the absolute fee, in the smallest unit, for a
	// transaction of the given estimated byte size.
	Fee(estimatedSize int) uint64
}

// StaticFeeRate is a fixed satoshi-per-kilobyte FeeRate, sufficient for
// tests and low-urgency transactions.
type StaticFeeRate struct {
	PerKB uint64
}

// Fee implements FeeRate.
func (f StaticFeeRate) Fee(estimatedSize int) uint64 {
	return f.PerKB * uint64(estimatedSize) / 1000
}
