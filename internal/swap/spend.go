// Package swap - claiming an escrow output via the secret-reveal path.
package swap

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/crosslock-exchange/crosslock/pkg/helpers"
)

// BuildSecretSpendTx builds the transaction claiming the counterparty's
// escrow output with the revealed secret. Broadcasting it necessarily
// publishes the secret on-chain, which is what lets the counterparty claim
// the matching escrow on the other chain; this is the economic core of the
// swap's atomicity.
//
// The unlocking script carries exactly four elements:
//
//	<secret> <signature> <pubkey> 0
//
// where the trailing zero selects the secret-reveal branch of the escrow
// script.
func BuildSecretSpendTx(w Wallet, fundingTx *wire.MsgTx, secret []byte, own *btcutil.AddressPubKeyHash, fees FeeRate) (*wire.MsgTx, error) {
	if len(fundingTx.TxOut) < 1 {
		return nil, fmt.Errorf("%w: funding transaction has no outputs", ErrProtocolStructure)
	}
	escrowOut := fundingTx.TxOut[escrowOutputIndex]

	fundingHash := fundingTx.TxHash()
	outpoint := wire.NewOutPoint(&fundingHash, escrowOutputIndex)
	txin := wire.NewTxIn(outpoint, nil, nil)
	txin.Sequence = refundSequence

	fee := fees.Fee(spendTxSizeEstimate)
	if uint64(escrowOut.Value) <= fee {
		return nil, fmt.Errorf("%w: escrow value %d does not cover fee %d", ErrInsufficientFunds, escrowOut.Value, fee)
	}
	destScript, err := txscript.PayToAddrScript(own)
	if err != nil {
		return nil, fmt.Errorf("failed to build destination script: %w", err)
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(txin)
	tx.AddTxOut(wire.NewTxOut(escrowOut.Value-int64(fee), destScript))

	privKey, err := w.PrivateKey(own)
	if err != nil {
		return nil, fmt.Errorf("failed to get claim key: %w", err)
	}

	// The escrow output is a bare script, so the recorded output script is
	// the script code being satisfied.
	sig, err := txscript.RawTxInSignature(tx, 0, escrowOut.PkScript, txscript.SigHashAll, privKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign claim: %w", err)
	}

	claimScript, err := txscript.NewScriptBuilder().
		AddData(secret).
		AddData(sig).
		AddData(privKey.PubKey().SerializeCompressed()).
		AddInt64(0).
		Script()
	if err != nil {
		return nil, fmt.Errorf("failed to build unlocking script: %w", err)
	}
	tx.TxIn[0].SignatureScript = claimScript

	return tx, nil
}

// ExtractSecret recovers the swap secret from a broadcast secret-spend
// transaction. It scans the pushed elements of the spend's unlocking script
// for a value whose double-SHA256 equals secretHash, so it works regardless
// of how the claiming party ordered its script.
func ExtractSecret(spendTx *wire.MsgTx, secretHash []byte) ([]byte, error) {
	if len(secretHash) != SecretHashSize {
		return nil, fmt.Errorf("secret hash must be %d bytes, got %d", SecretHashSize, len(secretHash))
	}

	for _, txin := range spendTx.TxIn {
		elems, err := txscript.PushedData(txin.SignatureScript)
		if err != nil {
			continue
		}
		for _, elem := range elems {
			if len(elem) == 0 {
				continue
			}
			if helpers.BytesEqual(chainhash.DoubleHashB(elem), secretHash) {
				return elem, nil
			}
		}
	}

	return nil, ErrSecretNotFound
}
