package wallet

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

func testRawKey(fill byte) []byte {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = fill
	}
	return raw
}

func TestKeyringImportKey(t *testing.T) {
	k := NewKeyring(testParams(t))

	addr, err := k.ImportKey(testRawKey(0x01))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same key, same address.
	again, err := NewKeyring(testParams(t)).ImportKey(testRawKey(0x01))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr.EncodeAddress() != again.EncodeAddress() {
		t.Error("importing the same key twice produced different addresses")
	}

	key, err := k.PrivateKey(addr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pkHash := btcutil.Hash160(key.PubKey().SerializeCompressed())
	if !bytes.Equal(pkHash, addr.ScriptAddress()) {
		t.Error("stored key does not match the returned address")
	}
}

func TestKeyringImportKeyBadLength(t *testing.T) {
	k := NewKeyring(testParams(t))
	if _, err := k.ImportKey(make([]byte, 16)); err == nil {
		t.Error("short key accepted")
	}
}

func TestKeyringAddresses(t *testing.T) {
	k := NewKeyring(testParams(t))

	first, err := k.ImportKey(testRawKey(0x01))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := k.ImportKey(testRawKey(0x02))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	addrs := k.Addresses()
	if len(addrs) != 2 {
		t.Fatalf("addresses = %d, want 2", len(addrs))
	}
	if addrs[0].EncodeAddress() != first.EncodeAddress() || addrs[1].EncodeAddress() != second.EncodeAddress() {
		t.Error("addresses not in import order")
	}

	change, err := k.ChangeAddress()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if change.EncodeAddress() != first.EncodeAddress() {
		t.Error("change address is not the first imported address")
	}
}

func TestKeyringChangeAddressEmpty(t *testing.T) {
	k := NewKeyring(testParams(t))
	if _, err := k.ChangeAddress(); err == nil {
		t.Error("empty keyring returned a change address")
	}
}

func TestKeyringSignTransaction(t *testing.T) {
	k := NewKeyring(testParams(t))
	addr, err := k.ImportKey(testRawKey(0x01))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pkScript, err := txscript.PayToAddrScript(addr)
	if err != nil {
		t.Fatalf("failed to build script: %v", err)
	}

	var hash chainhash.Hash
	hash[0] = 0x01
	outpoint := wire.OutPoint{Hash: hash, Index: 0}
	if err := k.AddUTXO(outpoint, 50000, addr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(&outpoint, nil, nil))
	tx.AddTxOut(wire.NewTxOut(49000, pkScript))

	signed, complete, err := k.SignTransaction(tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !complete {
		t.Fatal("signing reported incomplete")
	}

	fetcher := txscript.NewCannedPrevOutputFetcher(pkScript, 50000)
	vm, err := txscript.NewEngine(pkScript, signed, 0, txscript.StandardVerifyFlags, nil, nil, 50000, fetcher)
	if err != nil {
		t.Fatalf("failed to create script engine: %v", err)
	}
	if err := vm.Execute(); err != nil {
		t.Errorf("signed input failed to execute: %v", err)
	}
}
