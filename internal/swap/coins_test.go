package swap

import (
	"errors"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

func makeUTXOs(amounts ...uint64) []UTXO {
	utxos := make([]UTXO, len(amounts))
	for i, amount := range amounts {
		var hash chainhash.Hash
		hash[0] = byte(i + 1)
		utxos[i] = UTXO{
			OutPoint: wire.OutPoint{Hash: hash, Index: 0},
			Amount:   amount,
		}
	}
	return utxos
}

func TestSelectCoins(t *testing.T) {
	tests := []struct {
		name      string
		amounts   []uint64
		target    uint64
		wantCount int
		wantTotal uint64
		wantErr   error
	}{
		{
			name:      "accumulate until covered",
			amounts:   []uint64{30, 50, 20},
			target:    40,
			wantCount: 2,
			wantTotal: 80,
		},
		{
			name:      "exact single output",
			amounts:   []uint64{30, 50, 20},
			target:    30,
			wantCount: 1,
			wantTotal: 30,
		},
		{
			name:      "needs full set",
			amounts:   []uint64{30, 50, 20},
			target:    100,
			wantCount: 3,
			wantTotal: 100,
		},
		{
			name:    "insufficient funds",
			amounts: []uint64{30, 50, 20},
			target:  1000,
			wantErr: ErrInsufficientFunds,
		},
		{
			name:    "empty set",
			amounts: nil,
			target:  1,
			wantErr: ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			utxos := makeUTXOs(tt.amounts...)
			txins, total, err := SelectCoins(utxos, tt.target)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(txins) != tt.wantCount {
				t.Errorf("selected %d inputs, want %d", len(txins), tt.wantCount)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}

			// Selection preserves supply order.
			for i, txin := range txins {
				if txin.PreviousOutPoint != utxos[i].OutPoint {
					t.Errorf("input %d spends %v, want %v", i, txin.PreviousOutPoint, utxos[i].OutPoint)
				}
			}
		})
	}
}
