package wallet

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestEncryptDecryptMnemonic(t *testing.T) {
	seed, err := EncryptMnemonic(testMnemonic, "correct horse battery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(seed.Ciphertext), "abandon") {
		t.Error("ciphertext leaks mnemonic words")
	}

	got, err := DecryptMnemonic(seed, "correct horse battery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != testMnemonic {
		t.Error("decrypted mnemonic does not match")
	}
}

func TestDecryptMnemonicWrongPassword(t *testing.T) {
	seed, err := EncryptMnemonic(testMnemonic, "correct horse battery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := DecryptMnemonic(seed, "incorrect horse battery"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestEncryptMnemonicRejections(t *testing.T) {
	if _, err := EncryptMnemonic(testMnemonic, "short"); err == nil {
		t.Error("short password accepted")
	}
	if _, err := EncryptMnemonic("not a mnemonic", "correct horse battery"); err == nil {
		t.Error("invalid mnemonic accepted")
	}
}

func TestDecryptMnemonicUnsupportedVersion(t *testing.T) {
	seed, err := EncryptMnemonic(testMnemonic, "correct horse battery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seed.Version = 2
	if _, err := DecryptMnemonic(seed, "correct horse battery"); err == nil {
		t.Error("unknown seed version accepted")
	}
}

func TestSaveLoadEncryptedSeed(t *testing.T) {
	seed, err := EncryptMnemonic(testMnemonic, "correct horse battery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "wallet", "seed.json")
	if err := SaveEncryptedSeed(seed, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := LoadEncryptedSeed(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := DecryptMnemonic(loaded, "correct horse battery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != testMnemonic {
		t.Error("round trip through disk changed the mnemonic")
	}
}

func TestLoadEncryptedSeedMissing(t *testing.T) {
	if _, err := LoadEncryptedSeed(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("missing seed file did not error")
	}
}
