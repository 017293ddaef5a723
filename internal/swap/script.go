// Package swap - escrow script construction and secret handling.
package swap

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"

	"github.com/crosslock-exchange/crosslock/pkg/helpers"
)

const (
	// SecretSize is the byte length of the swap secret.
	SecretSize = 32

	// SecretHashSize is the byte length of the double-SHA256 commitment
	// to the secret.
	SecretHashSize = 32
)

// BuildEscrowScript builds the dual-path locking script securing an escrow
// output. Both parties must reproduce this script bit-identically from the
// same (own, peer, secretHash) tuple; it is the trust anchor of the whole
// protocol, since disagreement on the script makes the escrow unspendable by
// the intended paths.
//
// The script encodes two mutually exclusive spend conditions, selected by the
// leading element of the unlocking script:
//
//	OP_IF
//	    OP_2DUP
//	    OP_HASH160 <peer pubkey hash> OP_EQUALVERIFY
//	    OP_HASH160 <own pubkey hash>  OP_EQUALVERIFY
//	    2 OP_CHECKMULTISIG
//	OP_ELSE
//	    OP_DUP
//	    OP_HASH160 <peer pubkey hash> OP_EQUALVERIFY
//	    OP_CHECKSIGVERIFY
//	    OP_HASH256 <secret hash> OP_EQUAL
//	OP_ENDIF
//
// Cooperative path (OP_IF): 2-of-2 multisignature over the peer's and the
// funder's keys, both hash-matched against the committed addresses first.
// Secret-reveal path (OP_ELSE): the peer's signature plus a value whose
// double-SHA256 equals secretHash.
func BuildEscrowScript(own, peer *btcutil.AddressPubKeyHash, secretHash []byte) ([]byte, error) {
	if own == nil || peer == nil {
		return nil, fmt.Errorf("own and peer addresses are required")
	}
	if len(secretHash) != SecretHashSize {
		return nil, fmt.Errorf("secret hash must be %d bytes, got %d", SecretHashSize, len(secretHash))
	}
	if helpers.IsZeroBytes(secretHash) {
		return nil, fmt.Errorf("secret hash is all zeroes")
	}

	builder := txscript.NewScriptBuilder()

	// Cooperative branch
	builder.AddOp(txscript.OP_IF)
	builder.AddOp(txscript.OP_2DUP)
	builder.AddOp(txscript.OP_HASH160)
	builder.AddData(peer.ScriptAddress())
	builder.AddOp(txscript.OP_EQUALVERIFY)
	builder.AddOp(txscript.OP_HASH160)
	builder.AddData(own.ScriptAddress())
	builder.AddOp(txscript.OP_EQUALVERIFY)
	builder.AddInt64(2)
	builder.AddOp(txscript.OP_CHECKMULTISIG)

	// Secret-reveal branch
	builder.AddOp(txscript.OP_ELSE)
	builder.AddOp(txscript.OP_DUP)
	builder.AddOp(txscript.OP_HASH160)
	builder.AddData(peer.ScriptAddress())
	builder.AddOp(txscript.OP_EQUALVERIFY)
	builder.AddOp(txscript.OP_CHECKSIGVERIFY)
	builder.AddOp(txscript.OP_HASH256)
	builder.AddData(secretHash)
	builder.AddOp(txscript.OP_EQUAL)

	builder.AddOp(txscript.OP_ENDIF)

	return builder.Script()
}

// GenerateSecret generates a cryptographically secure swap secret and its
// double-SHA256 commitment. The initiator mints the secret; only the hash is
// published before funds move.
func GenerateSecret() (secret, hash []byte, err error) {
	secret, err = helpers.GenerateSecureRandom(SecretSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate secret: %w", err)
	}
	return secret, chainhash.DoubleHashB(secret), nil
}

// HashSecret returns the double-SHA256 commitment to a secret, matching the
// OP_HASH256 check in the escrow script.
func HashSecret(secret []byte) []byte {
	return chainhash.DoubleHashB(secret)
}

// VerifySecret checks if a secret matches the expected hash in constant time.
func VerifySecret(secret, expectedHash []byte) bool {
	if len(secret) != SecretSize || len(expectedHash) != SecretHashSize {
		return false
	}
	return helpers.ConstantTimeCompare(chainhash.DoubleHashB(secret), expectedHash)
}
