// Package swap - transaction wire helpers.
package swap

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// SerializeTx serializes a transaction to hex for exchange with the peer or
// a broadcaster.
func SerializeTx(tx *wire.MsgTx) (string, error) {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return "", fmt.Errorf("failed to serialize transaction: %w", err)
	}
	return hex.EncodeToString(buf.Bytes()), nil
}

// DeserializeTx deserializes a transaction from hex.
func DeserializeTx(hexStr string) (*wire.MsgTx, error) {
	data, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to deserialize: %w", err)
	}
	return tx, nil
}
