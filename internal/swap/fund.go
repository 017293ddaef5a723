// Package swap - escrow funding transaction construction (TX1/TX3).
package swap

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/crosslock-exchange/crosslock/pkg/helpers"
)

// BuildEscrowTx builds the funding transaction (TX1) paying quantity into the
// escrow script, with change back to the wallet. The wallet signs all inputs;
// the result is fully signed and ready to hand to a broadcaster once the
// counterparty's co-signed refund is in hand.
//
// quantity is the escrow amount in the smallest unit, before fees. The fee
// for a conservatively estimated transaction size is added on top and taken
// from the selected inputs.
func BuildEscrowTx(w Wallet, quantity uint64, own, peer *btcutil.AddressPubKeyHash, secretHash []byte, fees FeeRate) (*wire.MsgTx, error) {
	escrowScript, err := BuildEscrowScript(own, peer, secretHash)
	if err != nil {
		return nil, fmt.Errorf("failed to build escrow script: %w", err)
	}

	fee := fees.Fee(escrowTxSizeEstimate)
	quantityIncFee := quantity + fee

	utxos, err := w.ListUnspent()
	if err != nil {
		return nil, fmt.Errorf("failed to list unspent outputs: %w", err)
	}
	txins, totalIn, err := SelectCoins(utxos, quantityIncFee)
	if err != nil {
		return nil, err
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	for _, txin := range txins {
		tx.AddTxIn(txin)
	}

	// Escrow output is always at index 0.
	tx.AddTxOut(wire.NewTxOut(int64(quantity), escrowScript))

	// Change output if the selected inputs overshoot. The change address
	// is generated by the wallet even if signing later fails; that side
	// effect belongs to the wallet, not to this package.
	if totalIn > quantityIncFee {
		changeAddr, err := w.ChangeAddress()
		if err != nil {
			return nil, fmt.Errorf("failed to get change address: %w", err)
		}
		changeScript, err := txscript.PayToAddrScript(changeAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to build change script: %w", err)
		}
		tx.AddTxOut(wire.NewTxOut(int64(totalIn-quantityIncFee), changeScript))
	}

	signed, complete, err := w.SignTransaction(tx)
	if err != nil {
		return nil, fmt.Errorf("wallet signing failed: %w", err)
	}
	if !complete {
		return nil, ErrSigningIncomplete
	}

	return signed, nil
}

// BuildCounterpartyEscrowTx builds TX3, the counterparty's funding
// transaction. It is TX1 with the roles swapped: built by the same logic from
// the counterparty's perspective.
func BuildCounterpartyEscrowTx(w Wallet, quantity uint64, own, peer *btcutil.AddressPubKeyHash, secretHash []byte, fees FeeRate) (*wire.MsgTx, error) {
	return BuildEscrowTx(w, quantity, peer, own, secretHash, fees)
}

// AuditEscrowTx verifies that a funding transaction received from the
// counterparty actually pays the expected quantity to the expected escrow
// script before this party acts on it. funderOwn and funderPeer are the
// addresses from the funder's point of view.
func AuditEscrowTx(tx *wire.MsgTx, quantity uint64, funderOwn, funderPeer *btcutil.AddressPubKeyHash, secretHash []byte) error {
	if len(tx.TxOut) < 1 || len(tx.TxOut) > 2 {
		return fmt.Errorf("%w: funding transaction has %d outputs, expected one escrow output plus at most one change output",
			ErrProtocolStructure, len(tx.TxOut))
	}

	escrowScript, err := BuildEscrowScript(funderOwn, funderPeer, secretHash)
	if err != nil {
		return fmt.Errorf("failed to build escrow script: %w", err)
	}

	out := tx.TxOut[escrowOutputIndex]
	if !helpers.BytesEqual(out.PkScript, escrowScript) {
		return fmt.Errorf("%w: escrow output does not pay to the agreed script", ErrProtocolStructure)
	}
	if out.Value != int64(quantity) {
		return fmt.Errorf("%w: escrow output pays %d, expected %d", ErrProtocolStructure, out.Value, quantity)
	}

	return nil
}
