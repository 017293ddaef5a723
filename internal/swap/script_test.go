package swap

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/txscript"
)

func TestBuildEscrowScriptDeterminism(t *testing.T) {
	w := newTestWallet(t)
	own := w.newAddress()
	peer := w.newAddress()
	_, secretHash, err := GenerateSecret()
	if err != nil {
		t.Fatalf("failed to generate secret: %v", err)
	}

	first, err := BuildEscrowScript(own, peer, secretHash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := BuildEscrowScript(own, peer, secretHash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("two builds of the same script differ:\n%x\n%x", first, second)
	}
}

func TestBuildEscrowScriptRoleAsymmetry(t *testing.T) {
	w := newTestWallet(t)
	a := w.newAddress()
	b := w.newAddress()
	_, secretHash, err := GenerateSecret()
	if err != nil {
		t.Fatalf("failed to generate secret: %v", err)
	}

	ab, err := BuildEscrowScript(a, b, secretHash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := BuildEscrowScript(b, a, secretHash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bytes.Equal(ab, ba) {
		t.Error("scripts with swapped roles must differ")
	}
}

func TestBuildEscrowScriptStructure(t *testing.T) {
	w := newTestWallet(t)
	own := w.newAddress()
	peer := w.newAddress()
	_, secretHash, err := GenerateSecret()
	if err != nil {
		t.Fatalf("failed to generate secret: %v", err)
	}

	script, err := BuildEscrowScript(own, peer, secretHash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	disasm, err := txscript.DisasmString(script)
	if err != nil {
		t.Fatalf("script does not disassemble: %v", err)
	}

	for _, op := range []string{"OP_IF", "OP_2DUP", "OP_CHECKMULTISIG", "OP_ELSE", "OP_CHECKSIGVERIFY", "OP_HASH256", "OP_ENDIF"} {
		if !containsString(disasm, op) {
			t.Errorf("disassembly missing %s: %s", op, disasm)
		}
	}
}

func TestBuildEscrowScriptValidation(t *testing.T) {
	w := newTestWallet(t)
	own := w.newAddress()
	peer := w.newAddress()

	tests := []struct {
		name       string
		secretHash []byte
	}{
		{name: "nil hash", secretHash: nil},
		{name: "short hash", secretHash: make([]byte, 20)},
		{name: "long hash", secretHash: make([]byte, 33)},
		{name: "all-zero hash", secretHash: make([]byte, 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildEscrowScript(own, peer, tt.secretHash); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	if _, err := BuildEscrowScript(nil, peer, make([]byte, SecretHashSize)); err == nil {
		t.Error("expected error for nil own address")
	}
}

func TestGenerateSecret(t *testing.T) {
	secret, hash, err := GenerateSecret()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(secret) != SecretSize {
		t.Errorf("secret length = %d, want %d", len(secret), SecretSize)
	}
	if len(hash) != SecretHashSize {
		t.Errorf("hash length = %d, want %d", len(hash), SecretHashSize)
	}
	if !bytes.Equal(HashSecret(secret), hash) {
		t.Error("hash does not commit to secret")
	}
}

func TestVerifySecret(t *testing.T) {
	secret, hash, err := GenerateSecret()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !VerifySecret(secret, hash) {
		t.Error("valid secret rejected")
	}

	wrong := append([]byte(nil), secret...)
	wrong[0] ^= 0xff
	if VerifySecret(wrong, hash) {
		t.Error("tampered secret accepted")
	}
	if VerifySecret(secret[:16], hash) {
		t.Error("truncated secret accepted")
	}
}
