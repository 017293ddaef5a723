// Package swap - coin selection for escrow funding.
package swap

import (
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// SelectCoins greedily accumulates unspent outputs, in the order supplied,
// until their total meets or exceeds the target quantity. It returns the
// selected inputs and the accumulated total.
//
// No re-ordering is applied: the wallet's own ordering is taken as-is, so
// there is no minimal-change or privacy strategy here. That is a documented
// limitation of the protocol, not a bug.
func SelectCoins(utxos []UTXO, target uint64) ([]*wire.TxIn, uint64, error) {
	var (
		txins   []*wire.TxIn
		totalIn uint64
	)

	for _, utxo := range utxos {
		outpoint := utxo.OutPoint
		txins = append(txins, wire.NewTxIn(&outpoint, nil, nil))
		totalIn += utxo.Amount
		if totalIn >= target {
			return txins, totalIn, nil
		}
	}

	return nil, 0, fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, target, totalIn)
}
