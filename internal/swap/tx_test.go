package swap

import (
	"testing"
)

func TestSerializeTxRoundTrip(t *testing.T) {
	f := newRefundFixture(t)

	encoded, err := SerializeTx(f.fundingTx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := DeserializeTx(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decoded.TxHash() != f.fundingTx.TxHash() {
		t.Error("round trip changed the transaction hash")
	}
}

func TestDeserializeTxInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "not hex", in: "zz"},
		{name: "empty", in: ""},
		{name: "truncated", in: "0100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DeserializeTx(tt.in); err == nil {
				t.Error("invalid input accepted")
			}
		})
	}
}
