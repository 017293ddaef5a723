// Package swap - cooperative completion of a counterparty's refund.
package swap

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// CoSignRefundTx completes a refund transaction received from the
// counterparty. The transaction already carries the peer's partial unlocking
// script (signature and public key) for the peer's own escrow; this party
// adds its signature so the peer can later refund unilaterally, without
// either side ever holding the other's private key.
//
// The escrow script is reconstructed from the peer's point of view (the
// peer's own address is "own", this party is "peer") to compute the correct
// signature hash. The completed unlocking script carries the six elements
// required by the cooperative branch, in order:
//
//	0 <own signature> <peer signature> <own pubkey> <peer pubkey> 2
//
// A new transaction value is returned; the input transaction is not mutated.
func CoSignRefundTx(w Wallet, refundTx *wire.MsgTx, own, peer *btcutil.AddressPubKeyHash, secretHash []byte) (*wire.MsgTx, error) {
	if len(refundTx.TxIn) != 1 {
		return nil, fmt.Errorf("%w: refund has %d inputs, expected exactly one", ErrProtocolStructure, len(refundTx.TxIn))
	}

	elems, err := txscript.PushedData(refundTx.TxIn[0].SignatureScript)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed unlocking script: %v", ErrProtocolStructure, err)
	}
	switch {
	case len(elems) < 2:
		return nil, fmt.Errorf("%w: unlocking script has %d elements, expected exactly two (signature, pubkey)",
			ErrProtocolStructure, len(elems))
	case len(elems) > 2:
		return nil, fmt.Errorf("%w: unlocking script has %d elements, expected no more than two",
			ErrProtocolStructure, len(elems))
	}
	peerSig, peerPubKey := elems[0], elems[1]

	// Roles are reversed: the script was committed to by the peer's
	// funding transaction, built from the peer's perspective.
	escrowScript, err := BuildEscrowScript(peer, own, secretHash)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild escrow script: %w", err)
	}

	privKey, err := w.PrivateKey(own)
	if err != nil {
		return nil, fmt.Errorf("failed to get signing key: %w", err)
	}

	signed := refundTx.Copy()
	sig, err := txscript.RawTxInSignature(signed, 0, escrowScript, txscript.SigHashAll, privKey)
	if err != nil {
		return nil, fmt.Errorf("failed to co-sign refund: %w", err)
	}

	complete, err := txscript.NewScriptBuilder().
		AddInt64(0).
		AddData(sig).
		AddData(peerSig).
		AddData(privKey.PubKey().SerializeCompressed()).
		AddData(peerPubKey).
		AddInt64(2).
		Script()
	if err != nil {
		return nil, fmt.Errorf("failed to build unlocking script: %w", err)
	}
	signed.TxIn[0].SignatureScript = complete

	return signed, nil
}
