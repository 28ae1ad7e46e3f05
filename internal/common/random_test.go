package common

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

// ---------- RandomString ----------

func TestRandomString_UsesOnlyAlphabet(t *testing.T) {
	for i := 0; i < 200; i++ {
		s, err := RandomString(SafeAlphabet, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(s) != 7 {
			t.Fatalf("expected length 7, got %d", len(s))
		}
		for _, r := range s {
			if !strings.ContainsRune(SafeAlphabet, r) {
				t.Fatalf("character %q is outside the safe alphabet", r)
			}
		}
	}
}

func TestRandomString_SafeAlphabetHasNoAmbiguousChars(t *testing.T) {
	for _, r := range "01ILO" {
		if strings.ContainsRune(SafeAlphabet, r) {
			t.Fatalf("ambiguous character %q in alphabet", r)
		}
	}
}

func TestRandomString_EmptyAlphabet(t *testing.T) {
	_, err := RandomString("", 5)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestRandomString_EntropyHint(t *testing.T) {
	a, _ := RandomString(SafeAlphabet, 16)
	b, _ := RandomString(SafeAlphabet, 16)
	if a == b {
		t.Logf("warning: two RandomString(16) results are identical; extremely unlikely")
	}
}

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}
