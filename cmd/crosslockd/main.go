// Package main provides the crosslock command line driver. It is the
// surrounding layer around the swap core: it owns all IO, printing and
// persistence, while the core packages stay side-effect free.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"

	"github.com/crosslock-exchange/crosslock/internal/chain"
	"github.com/crosslock-exchange/crosslock/internal/config"
	"github.com/crosslock-exchange/crosslock/internal/storage"
	"github.com/crosslock-exchange/crosslock/internal/swap"
	"github.com/crosslock-exchange/crosslock/pkg/helpers"
	"github.com/crosslock-exchange/crosslock/pkg/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

func usage() {
	fmt.Println("Usage: crosslockd [flags] cmd [cmd args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  secret")
	fmt.Println("  script <own address> <peer address> <secret hash>")
	fmt.Println("  audit <funding tx hex> <amount in coins> <funder address> <funder peer address> <secret hash>")
	fmt.Println("  validate-refund <refund tx hex>")
	fmt.Println("  extract-secret <spend tx hex> <secret hash>")
	fmt.Println("  sessions")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func main() {
	var (
		dataDir     = flag.String("data-dir", "~/.crosslock", "Data directory")
		configFile  = flag.String("config", "", "Config file path (default: <data-dir>/config.yaml)")
		logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error), overrides config")
		showVersion = flag.Bool("version", false, "Show version and exit")
	)
	flag.Usage = usage
	flag.Parse()

	log := logging.New(&logging.Config{Level: "info"})

	if *showVersion {
		log.Infof("crosslockd %s (commit: %s)", version, commit)
		os.Exit(0)
	}

	dir := config.ExpandPath(*dataDir)
	cfgPath := *configFile
	if cfgPath == "" {
		cfgPath = filepath.Join(dir, "config.yaml")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	log.SetLevel(logging.ParseLevel(level))

	params, err := cfg.ChainParams()
	if err != nil {
		log.Fatalf("%v", err)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	if err := runCommand(cfg, params, dir, args, log); err != nil {
		log.Fatalf("%v", err)
	}
}

func runCommand(cfg *config.Config, params *chain.Params, dataDir string, args []string, log *logging.Logger) error {
	switch args[0] {
	case "secret":
		return cmdSecret()
	case "script":
		if len(args) != 4 {
			return fmt.Errorf("script: expected 3 arguments, got %d", len(args)-1)
		}
		return cmdScript(params, args[1], args[2], args[3])
	case "audit":
		if len(args) != 6 {
			return fmt.Errorf("audit: expected 5 arguments, got %d", len(args)-1)
		}
		return cmdAudit(params, args[1], args[2], args[3], args[4], args[5], log.Component("audit"))
	case "validate-refund":
		if len(args) != 2 {
			return fmt.Errorf("validate-refund: expected 1 argument, got %d", len(args)-1)
		}
		return cmdValidateRefund(cfg, args[1], log.Component("refund"))
	case "extract-secret":
		if len(args) != 3 {
			return fmt.Errorf("extract-secret: expected 2 arguments, got %d", len(args)-1)
		}
		return cmdExtractSecret(args[1], args[2])
	case "sessions":
		return cmdSessions(dataDir, params, log.Component("storage"))
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func cmdSecret() error {
	secret, hash, err := swap.GenerateSecret()
	if err != nil {
		return err
	}
	fmt.Printf("secret:      %x\n", secret)
	fmt.Printf("secret hash: %x\n", hash)
	return nil
}

func decodePKHAddress(s string, params *chain.Params) (*btcutil.AddressPubKeyHash, error) {
	addr, err := btcutil.DecodeAddress(s, params.ChaincfgParams())
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", s, err)
	}
	pkh, ok := addr.(*btcutil.AddressPubKeyHash)
	if !ok {
		return nil, fmt.Errorf("address %q is not pay-to-pubkey-hash", s)
	}
	return pkh, nil
}

func decodeSecretHash(s string) ([]byte, error) {
	hash, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid secret hash hex: %w", err)
	}
	if len(hash) != swap.SecretHashSize {
		return nil, fmt.Errorf("secret hash must be %d bytes, got %d", swap.SecretHashSize, len(hash))
	}
	return hash, nil
}

func cmdScript(params *chain.Params, ownStr, peerStr, hashStr string) error {
	own, err := decodePKHAddress(ownStr, params)
	if err != nil {
		return err
	}
	peer, err := decodePKHAddress(peerStr, params)
	if err != nil {
		return err
	}
	secretHash, err := decodeSecretHash(hashStr)
	if err != nil {
		return err
	}

	script, err := swap.BuildEscrowScript(own, peer, secretHash)
	if err != nil {
		return err
	}
	disasm, err := txscript.DisasmString(script)
	if err != nil {
		return err
	}
	fmt.Printf("escrow script: %x\n", script)
	fmt.Printf("disassembly:   %s\n", disasm)
	return nil
}

func cmdAudit(params *chain.Params, txHex, amountStr, ownStr, peerStr, hashStr string, log *logging.Logger) error {
	tx, err := swap.DeserializeTx(txHex)
	if err != nil {
		return err
	}
	amount, err := helpers.ParseAmount(amountStr, params.Decimals)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	own, err := decodePKHAddress(ownStr, params)
	if err != nil {
		return err
	}
	peer, err := decodePKHAddress(peerStr, params)
	if err != nil {
		return err
	}
	secretHash, err := decodeSecretHash(hashStr)
	if err != nil {
		return err
	}

	if err := swap.AuditEscrowTx(tx, amount, own, peer, secretHash); err != nil {
		return err
	}
	log.Info("funding transaction pays the agreed escrow",
		"txid", tx.TxHash().String(),
		"amount", helpers.FormatAmount(amount, params.Decimals))
	return nil
}

func cmdValidateRefund(cfg *config.Config, txHex string, log *logging.Logger) error {
	tx, err := swap.DeserializeTx(txHex)
	if err != nil {
		return err
	}

	validator := &swap.RefundValidator{
		MinLockAhead: cfg.MinLockAhead(),
		MaxLockAhead: cfg.MaxLockAhead(),
		Now:          time.Now,
	}
	if err := validator.Validate(tx); err != nil {
		return err
	}
	log.Info("refund transaction accepted",
		"txid", tx.TxHash().String(),
		"locktime", time.Unix(int64(tx.LockTime), 0).UTC().Format(time.DateTime))
	return nil
}

func cmdExtractSecret(txHex, hashStr string) error {
	tx, err := swap.DeserializeTx(txHex)
	if err != nil {
		return err
	}
	secretHash, err := decodeSecretHash(hashStr)
	if err != nil {
		return err
	}

	secret, err := swap.ExtractSecret(tx, secretHash)
	if err != nil {
		return err
	}
	fmt.Printf("secret: %x\n", secret)
	return nil
}

func cmdSessions(dataDir string, params *chain.Params, log *logging.Logger) error {
	log.Debug("opening session store", "dir", dataDir)
	store, err := storage.New(&storage.Config{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.ListSessions("")
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions")
		return nil
	}
	for _, s := range sessions {
		fmt.Printf("%s  %-11s %-16s %s  peer=%s\n",
			s.ID, s.Role, s.State,
			helpers.FormatAmount(s.Amount, params.Decimals), s.PeerAddress)
	}
	return nil
}
