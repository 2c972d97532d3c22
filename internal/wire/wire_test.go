package wire

import (
	"bytes"
	"strings"
	"testing"
)

func TestUpdateRoundtrip(t *testing.T) {
	enc, err := EncodeUpdate("paris", []byte{0x01, 0x02})
	if err != nil {
		t.Fatalf("EncodeUpdate: %v", err)
	}
	key, payload, err := DecodeUpdate(enc)
	if err != nil {
		t.Fatalf("DecodeUpdate: %v", err)
	}
	if key != "paris" || !bytes.Equal(payload, []byte{0x01, 0x02}) {
		t.Fatalf("roundtrip mismatch: key=%q payload=%v", key, payload)
	}
}

func TestUpdateEmptyPayload(t *testing.T) {
	enc, err := EncodeUpdate("k", nil)
	if err != nil {
		t.Fatalf("EncodeUpdate: %v", err)
	}
	key, payload, err := DecodeUpdate(enc)
	if err != nil || key != "k" || len(payload) != 0 {
		t.Fatalf("empty payload roundtrip: key=%q payload=%v err=%v", key, payload, err)
	}
}

// DecodeUpdate must reject trailing bytes (strict framing).
func TestDecodeUpdateRejectsTrailing(t *testing.T) {
	enc, err := EncodeUpdate("x", []byte("v"))
	if err != nil {
		t.Fatalf("EncodeUpdate: %v", err)
	}
	enc = append(enc, 0xDE, 0xAD)
	if _, _, err := DecodeUpdate(enc); err == nil {
		t.Fatalf("DecodeUpdate should reject trailing bytes")
	}
}

func TestDecodeUpdateRejectsGarbage(t *testing.T) {
	cases := map[string][]byte{
		"empty":       nil,
		"not_magic":   []byte("not-wire-format"),
		"short":       {'F', 'E', 'E', 'D', 1},
		"bad_version": {'F', 'E', 'E', 'D', 9, 1, 0, 1, 'k', 0, 0, 0, 0},
		"bad_kind":    {'F', 'E', 'E', 'D', 1, 9, 0, 1, 'k', 0, 0, 0, 0},
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := DecodeUpdate(b); err == nil {
				t.Fatalf("DecodeUpdate should fail")
			}
		})
	}
}

func TestDecodeUpdateTruncated(t *testing.T) {
	enc, err := EncodeUpdate("berlin", []byte("payload-bytes"))
	if err != nil {
		t.Fatalf("EncodeUpdate: %v", err)
	}
	// every strict prefix must fail cleanly
	for i := 0; i < len(enc); i++ {
		if _, _, err := DecodeUpdate(enc[:i]); err == nil {
			t.Fatalf("DecodeUpdate accepted truncated envelope of %d bytes", i)
		}
	}
}

// EncodeUpdate should error on invalid key lengths (0 and > 0xFFFF),
// and succeed on boundary length 0xFFFF.
func TestEncodeUpdateKeyLengthValidation(t *testing.T) {
	if _, err := EncodeUpdate("", []byte("x")); err == nil {
		t.Fatalf("EncodeUpdate should error on empty key")
	}

	longKey := strings.Repeat("a", 0x10000)
	if _, err := EncodeUpdate(longKey, []byte("x")); err == nil {
		t.Fatalf("EncodeUpdate should error on key length > 0xFFFF")
	}

	boundaryKey := strings.Repeat("b", 0xFFFF)
	if _, err := EncodeUpdate(boundaryKey, []byte("x")); err != nil {
		t.Fatalf("EncodeUpdate should succeed at 0xFFFF key length, got err: %v", err)
	}
}
