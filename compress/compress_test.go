package compress_test

import (
	"bytes"
	"testing"

	"github.com/arman-bd/httpmorph-go/compress"
)

func TestRoundTripEachCoding(t *testing.T) {
	original := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 200)

	for _, coding := range []compress.Coding{compress.Gzip, compress.Deflate, compress.Brotli} {
		t.Run(string(coding), func(t *testing.T) {
			encoded, err := compress.EncodeAll(coding, original)
			if err != nil {
				t.Fatalf("EncodeAll: %v", err)
			}
			if bytes.Equal(encoded, original) {
				t.Fatalf("encoded output equals input; compression didn't run")
			}
			decoded, err := compress.DecodeAll(coding, encoded)
			if err != nil {
				t.Fatalf("DecodeAll: %v", err)
			}
			if !bytes.Equal(decoded, original) {
				t.Fatalf("round-trip mismatch: got %d bytes, want %d", len(decoded), len(original))
			}
		})
	}
}

func TestIdentityIsPassthrough(t *testing.T) {
	data := []byte("no compression here")
	decoded, err := compress.DecodeAll(compress.Identity, data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, data) {
		t.Error("identity coding must return the input unchanged")
	}
}

func TestUnsupportedCodingErrors(t *testing.T) {
	_, err := compress.NewReader("lzma", bytes.NewReader(nil))
	if err == nil {
		t.Fatal("expected an error for an unsupported coding")
	}
}

func TestLargeBodyRequiringMultipleGrows(t *testing.T) {
	// Mirrors the 100KB response regression this engine's receive-buffer
	// logic was once bitten by: decoding a payload much larger than any
	// single read must not truncate or corrupt the tail.
	original := bytes.Repeat([]byte{0x41}, 100_000)
	encoded, err := compress.EncodeAll(compress.Gzip, original)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := compress.DecodeAll(compress.Gzip, encoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != len(original) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(original))
	}
}
