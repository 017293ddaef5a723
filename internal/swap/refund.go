// Package swap - time-locked refund transaction construction (TX2/TX4).
package swap

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/crosslock-exchange/crosslock/pkg/helpers"
)

// BuildRefundTx builds the refund transaction (TX2) spending the escrow
// output of fundingTx back to its funder after lockTime. The result is
// intentionally incomplete: its unlocking script carries only this party's
// signature and public key, and the counterparty must co-sign it (see
// CoSignRefundTx) before it becomes broadcastable.
//
// lockTime is an absolute Unix timestamp. The input uses a non-final
// sequence number so the lock time is actually enforced by the chain.
//
// The signature hash is computed over the escrow script reconstructed from
// (own, peer, secretHash) rather than the funding output's recorded script.
// The two must be byte-identical; any drift would silently produce an invalid
// signature, so the equality is checked and ErrScriptMismatch returned on
// violation.
func BuildRefundTx(w Wallet, fundingTx *wire.MsgTx, lockTime uint32, own, peer *btcutil.AddressPubKeyHash, secretHash []byte, fees FeeRate) (*wire.MsgTx, error) {
	if len(fundingTx.TxOut) < 1 {
		return nil, fmt.Errorf("%w: funding transaction has no outputs", ErrProtocolStructure)
	}

	escrowScript, err := BuildEscrowScript(own, peer, secretHash)
	if err != nil {
		return nil, fmt.Errorf("failed to build escrow script: %w", err)
	}
	escrowOut := fundingTx.TxOut[escrowOutputIndex]
	if !helpers.BytesEqual(escrowScript, escrowOut.PkScript) {
		return nil, ErrScriptMismatch
	}

	fundingHash := fundingTx.TxHash()
	outpoint := wire.NewOutPoint(&fundingHash, escrowOutputIndex)
	txin := wire.NewTxIn(outpoint, nil, nil)
	txin.Sequence = refundSequence

	fee := fees.Fee(spendTxSizeEstimate)
	if uint64(escrowOut.Value) <= fee {
		return nil, fmt.Errorf("%w: escrow value %d does not cover fee %d", ErrInsufficientFunds, escrowOut.Value, fee)
	}
	refundScript, err := txscript.PayToAddrScript(own)
	if err != nil {
		return nil, fmt.Errorf("failed to build refund script: %w", err)
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(txin)
	tx.AddTxOut(wire.NewTxOut(escrowOut.Value-int64(fee), refundScript))
	tx.LockTime = lockTime

	privKey, err := w.PrivateKey(own)
	if err != nil {
		return nil, fmt.Errorf("failed to get refund key: %w", err)
	}

	sig, err := txscript.RawTxInSignature(tx, 0, escrowScript, txscript.SigHashAll, privKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refund: %w", err)
	}

	// Partial unlocking script: our signature and public key only. The
	// counterparty appends its own signature and the cooperative-branch
	// framing to complete it.
	partial, err := txscript.NewScriptBuilder().
		AddData(sig).
		AddData(privKey.PubKey().SerializeCompressed()).
		Script()
	if err != nil {
		return nil, fmt.Errorf("failed to build partial unlocking script: %w", err)
	}
	tx.TxIn[0].SignatureScript = partial

	return tx, nil
}

// BuildCounterpartyRefundTx builds TX4, the structurally identical refund for
// the counterparty's funding transaction (TX3).
func BuildCounterpartyRefundTx(w Wallet, fundingTx *wire.MsgTx, lockTime uint32, own, peer *btcutil.AddressPubKeyHash, secretHash []byte, fees FeeRate) (*wire.MsgTx, error) {
	return BuildRefundTx(w, fundingTx, lockTime, own, peer, secretHash, fees)
}
