package crypto

import (
	"bytes"
	"testing"
)

func TestGenerateIdentityKeys_ShapesAndUniqueness(t *testing.T) {
	kc := NewKeyChain()

	id1, err := kc.GenerateIdentityKeys()
	if err != nil {
		t.Fatalf("GenerateIdentityKeys error: %v", err)
	}
	id2, err := kc.GenerateIdentityKeys()
	if err != nil {
		t.Fatalf("GenerateIdentityKeys error: %v", err)
	}

	if len(id1.EncryptionPublic) != 32 || len(id1.EncryptionPrivate) != 32 {
		t.Fatalf("encryption key lengths = %d/%d, want 32/32",
			len(id1.EncryptionPublic), len(id1.EncryptionPrivate))
	}
	if len(id1.SigningPublic) != 32 || len(id1.SigningPrivate) != 64 {
		t.Fatalf("signing key lengths = %d/%d, want 32/64",
			len(id1.SigningPublic), len(id1.SigningPrivate))
	}

	if bytes.Equal(id1.EncryptionPrivate, id2.EncryptionPrivate) {
		t.Fatalf("expected distinct encryption keys per call")
	}
	if bytes.Equal(id1.SigningPrivate, id2.SigningPrivate) {
		t.Fatalf("expected distinct signing keys per call")
	}
}

func TestGenerateDeviceKeys_Shapes(t *testing.T) {
	kc := NewKeyChain()

	dk, err := kc.GenerateDeviceKeys()
	if err != nil {
		t.Fatalf("GenerateDeviceKeys error: %v", err)
	}

	if len(dk.Public) != 32 || len(dk.Private) != 32 {
		t.Fatalf("device key lengths = %d/%d, want 32/32", len(dk.Public), len(dk.Private))
	}
}

func TestSignVerify_RoundTrip(t *testing.T) {
	kc := NewKeyChain()

	id, err := kc.GenerateIdentityKeys()
	if err != nil {
		t.Fatalf("GenerateIdentityKeys error: %v", err)
	}

	msg := []byte("device approval request")
	sig, err := Sign(id.SigningPrivate, msg)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	if !Verify(id.SigningPublic, msg, sig) {
		t.Fatalf("expected signature to verify")
	}
	if Verify(id.SigningPublic, []byte("other message"), sig) {
		t.Fatalf("expected signature over different message to fail")
	}

	sig[0] ^= 0x01
	if Verify(id.SigningPublic, msg, sig) {
		t.Fatalf("expected tampered signature to fail")
	}
}

func TestSign_RejectsShortKey(t *testing.T) {
	if _, err := Sign([]byte("short"), []byte("msg")); err == nil {
		t.Fatalf("expected error for wrong-size signing key")
	}
}
