// Package wallet - fixed-key wallet for deterministic setups.
package wallet

import (
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/crosslock-exchange/crosslock/internal/chain"
	"github.com/crosslock-exchange/crosslock/internal/swap"
)

// Keyring is a wallet over a fixed set of imported raw keys, with no
// derivation. It implements swap.Wallet the same way the HD wallet does and
// exists for regtest fixtures and deterministic test setups.
type Keyring struct {
	mu sync.Mutex

	params *chain.Params
	keys   map[string]*btcec.PrivateKey
	addrs  []*btcutil.AddressPubKeyHash
	utxos  map[wire.OutPoint]trackedUTXO
}

// NewKeyring creates an empty keyring for a chain.
func NewKeyring(params *chain.Params) *Keyring {
	return &Keyring{
		params: params,
		keys:   make(map[string]*btcec.PrivateKey),
		utxos:  make(map[wire.OutPoint]trackedUTXO),
	}
}

// ImportKey adds a raw 32-byte private key and returns its P2PKH address.
func (k *Keyring) ImportKey(raw []byte) (*btcutil.AddressPubKeyHash, error) {
	if len(raw) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(raw))
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	privKey := secp256k1.PrivKeyFromBytes(raw)
	pkHash := btcutil.Hash160(privKey.PubKey().SerializeCompressed())
	addr, err := btcutil.NewAddressPubKeyHash(pkHash, k.params.ChaincfgParams())
	if err != nil {
		return nil, fmt.Errorf("failed to build address: %w", err)
	}

	k.keys[string(pkHash)] = privKey
	k.addrs = append(k.addrs, addr)
	return addr, nil
}

// Addresses returns the imported addresses in import order.
func (k *Keyring) Addresses() []*btcutil.AddressPubKeyHash {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]*btcutil.AddressPubKeyHash(nil), k.addrs...)
}

// ChangeAddress returns the first imported address. A keyring has no
// derivation, so change goes back to a known key. Implements swap.Wallet.
func (k *Keyring) ChangeAddress() (btcutil.Address, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if len(k.addrs) == 0 {
		return nil, fmt.Errorf("keyring has no keys")
	}
	return k.addrs[0], nil
}

// PrivateKey returns the key for an imported address. Implements swap.Wallet.
func (k *Keyring) PrivateKey(addr btcutil.Address) (*btcec.PrivateKey, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	key, ok := k.keys[string(addr.ScriptAddress())]
	if !ok {
		return nil, fmt.Errorf("address %s is not in this keyring", addr.EncodeAddress())
	}
	return key, nil
}

// AddUTXO registers a spendable output paying to an imported address.
func (k *Keyring) AddUTXO(outpoint wire.OutPoint, amount uint64, addr btcutil.Address) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, ok := k.keys[string(addr.ScriptAddress())]; !ok {
		return fmt.Errorf("address %s is not in this keyring", addr.EncodeAddress())
	}
	pkScript, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return fmt.Errorf("failed to build output script: %w", err)
	}

	k.utxos[outpoint] = trackedUTXO{
		amount:   amount,
		pkScript: pkScript,
		addrKey:  string(addr.ScriptAddress()),
	}
	return nil
}

// ListUnspent returns the tracked unspent outputs. Implements swap.Wallet.
func (k *Keyring) ListUnspent() ([]swap.UTXO, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	utxos := make([]swap.UTXO, 0, len(k.utxos))
	for outpoint, u := range k.utxos {
		utxos = append(utxos, swap.UTXO{OutPoint: outpoint, Amount: u.amount})
	}
	return utxos, nil
}

// SignTransaction signs every input that spends a tracked output. Implements
// swap.Wallet.
func (k *Keyring) SignTransaction(tx *wire.MsgTx) (*wire.MsgTx, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	signed := tx.Copy()
	complete := true

	for i, txin := range signed.TxIn {
		u, ok := k.utxos[txin.PreviousOutPoint]
		if !ok {
			complete = false
			continue
		}
		key := k.keys[u.addrKey]
		sigScript, err := txscript.SignatureScript(signed, i, u.pkScript, txscript.SigHashAll, key, true)
		if err != nil {
			return nil, false, fmt.Errorf("failed to sign input %d: %w", i, err)
		}
		signed.TxIn[i].SignatureScript = sigScript
	}

	return signed, complete, nil
}
