// Package wallet provides the key-owning collaborator for swap construction:
// a BIP39/BIP44 HD wallet producing legacy P2PKH addresses, tracking unspent
// outputs, and signing its own inputs. Private keys never leave the package
// boundary except through the explicit PrivateKey accessor the swap builders
// use to sign escrow spends.
package wallet

import (
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/tyler-smith/go-bip39"

	"github.com/crosslock-exchange/crosslock/internal/chain"
	"github.com/crosslock-exchange/crosslock/internal/swap"
)

// bip44Purpose is the derivation purpose for legacy P2PKH addresses.
const bip44Purpose = 44

// trackedUTXO is an unspent output the wallet knows it can spend.
type trackedUTXO struct {
	amount   uint64
	pkScript []byte
	addrKey  string // hash160 of the owning pubkey
}

// Wallet is an HD wallet for one Bitcoin-family chain.
type Wallet struct {
	mu sync.Mutex

	params    *chain.Params
	masterKey *hdkeychain.ExtendedKey

	// keys indexes derived private keys by pubkey hash160.
	keys map[string]*btcec.PrivateKey

	// addrs remembers derivation order for external addresses.
	addrs []*btcutil.AddressPubKeyHash

	nextExternal uint32
	nextChange   uint32

	utxos map[wire.OutPoint]trackedUTXO
}

// GenerateMnemonic generates a new 24-word BIP39 mnemonic.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}

// ValidateMnemonic checks if a mnemonic is valid.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// NewFromMnemonic creates a wallet from a BIP39 mnemonic.
func NewFromMnemonic(mnemonic, passphrase string, params *chain.Params) (*Wallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	return NewFromSeed(bip39.NewSeed(mnemonic, passphrase), params)
}

// NewFromSeed creates a wallet from a raw BIP39 seed.
func NewFromSeed(seed []byte, params *chain.Params) (*Wallet, error) {
	masterKey, err := hdkeychain.NewMaster(seed, params.ChaincfgParams())
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	return &Wallet{
		params:    params,
		masterKey: masterKey,
		keys:      make(map[string]*btcec.PrivateKey),
		utxos:     make(map[wire.OutPoint]trackedUTXO),
	}, nil
}

// Params returns the wallet's chain parameters.
func (w *Wallet) Params() *chain.Params {
	return w.params
}

// deriveKey derives m/44'/coin'/0'/change/index.
func (w *Wallet) deriveKey(change, index uint32) (*btcec.PrivateKey, error) {
	path := []uint32{
		hdkeychain.HardenedKeyStart + bip44Purpose,
		hdkeychain.HardenedKeyStart + w.params.CoinType,
		hdkeychain.HardenedKeyStart, // account 0
		change,
		index,
	}

	key := w.masterKey
	for _, step := range path {
		var err error
		key, err = key.Derive(step)
		if err != nil {
			return nil, fmt.Errorf("failed to derive key step %d: %w", step, err)
		}
	}
	return key.ECPrivKey()
}

// deriveAddress derives a key, registers it in the key index, and returns
// its P2PKH address.
func (w *Wallet) deriveAddress(change, index uint32) (*btcutil.AddressPubKeyHash, error) {
	privKey, err := w.deriveKey(change, index)
	if err != nil {
		return nil, err
	}

	pkHash := btcutil.Hash160(privKey.PubKey().SerializeCompressed())
	addr, err := btcutil.NewAddressPubKeyHash(pkHash, w.params.ChaincfgParams())
	if err != nil {
		return nil, fmt.Errorf("failed to build address: %w", err)
	}
	w.keys[string(pkHash)] = privKey
	return addr, nil
}

// NextAddress derives the next external receive address.
func (w *Wallet) NextAddress() (*btcutil.AddressPubKeyHash, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	addr, err := w.deriveAddress(0, w.nextExternal)
	if err != nil {
		return nil, err
	}
	w.nextExternal++
	w.addrs = append(w.addrs, addr)
	return addr, nil
}

// ChangeAddress derives a fresh internal change address. Implements
// swap.Wallet.
func (w *Wallet) ChangeAddress() (btcutil.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	addr, err := w.deriveAddress(1, w.nextChange)
	if err != nil {
		return nil, err
	}
	w.nextChange++
	return addr, nil
}

// PrivateKey returns the signing key for one of the wallet's addresses.
// Implements swap.Wallet.
func (w *Wallet) PrivateKey(addr btcutil.Address) (*btcec.PrivateKey, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	key, ok := w.keys[string(addr.ScriptAddress())]
	if !ok {
		return nil, fmt.Errorf("address %s is not owned by this wallet", addr.EncodeAddress())
	}
	return key, nil
}

// AddUTXO registers a spendable output paying to one of the wallet's
// addresses. The surrounding layer feeds these from whatever chain view it
// has; the wallet itself never talks to a node.
func (w *Wallet) AddUTXO(outpoint wire.OutPoint, amount uint64, addr btcutil.Address) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.keys[string(addr.ScriptAddress())]; !ok {
		return fmt.Errorf("address %s is not owned by this wallet", addr.EncodeAddress())
	}
	pkScript, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return fmt.Errorf("failed to build output script: %w", err)
	}

	w.utxos[outpoint] = trackedUTXO{
		amount:   amount,
		pkScript: pkScript,
		addrKey:  string(addr.ScriptAddress()),
	}
	return nil
}

// RemoveUTXO forgets an output, typically after it has been spent.
func (w *Wallet) RemoveUTXO(outpoint wire.OutPoint) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.utxos, outpoint)
}

// ListUnspent returns the wallet's tracked unspent outputs. Implements
// swap.Wallet. Outputs are returned in an unspecified order.
func (w *Wallet) ListUnspent() ([]swap.UTXO, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	utxos := make([]swap.UTXO, 0, len(w.utxos))
	for outpoint, u := range w.utxos {
		utxos = append(utxos, swap.UTXO{OutPoint: outpoint, Amount: u.amount})
	}
	return utxos, nil
}

// SignTransaction signs every input that spends a tracked output and reports
// whether the result is completely signed. Implements swap.Wallet. The input
// transaction is left untouched; a signed copy is returned.
func (w *Wallet) SignTransaction(tx *wire.MsgTx) (*wire.MsgTx, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	signed := tx.Copy()
	complete := true

	for i, txin := range signed.TxIn {
		u, ok := w.utxos[txin.PreviousOutPoint]
		if !ok {
			complete = false
			continue
		}
		key := w.keys[u.addrKey]
		sigScript, err := txscript.SignatureScript(signed, i, u.pkScript, txscript.SigHashAll, key, true)
		if err != nil {
			return nil, false, fmt.Errorf("failed to sign input %d: %w", i, err)
		}
		signed.TxIn[i].SignatureScript = sigScript
	}

	return signed, complete, nil
}
