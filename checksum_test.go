package fsops

import (
	"strings"
	"testing"
)

func TestCalculateChecksum(t *testing.T) {
	tests := []struct {
		algo ChecksumAlgorithm
		want string
	}{
		{ChecksumMD5, "5d41402abc4b2a76b9719d911017c592"},
		{ChecksumSHA1, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{ChecksumSHA256, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
	}

	for _, tt := range tests {
		t.Run(string(tt.algo), func(t *testing.T) {
			got, err := CalculateChecksum(strings.NewReader("hello"), tt.algo)
			if err != nil {
				t.Fatalf("CalculateChecksum failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("checksum = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCalculateChecksumDeterministic(t *testing.T) {
	for _, algo := range []ChecksumAlgorithm{ChecksumCRC32, ChecksumXXHash, ChecksumSHA512} {
		t.Run(string(algo), func(t *testing.T) {
			a, err := CalculateChecksum(strings.NewReader("hello"), algo)
			if err != nil {
				t.Fatalf("CalculateChecksum failed: %v", err)
			}
			b, err := CalculateChecksum(strings.NewReader("hello"), algo)
			if err != nil {
				t.Fatalf("CalculateChecksum failed: %v", err)
			}
			if a != b {
				t.Errorf("checksum not deterministic: %s vs %s", a, b)
			}
			if a == "" {
				t.Error("empty checksum")
			}
		})
	}
}

func TestCalculateChecksumUnsupported(t *testing.T) {
	_, err := CalculateChecksum(strings.NewReader("hello"), "whirlpool")
	if err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
}

func TestCalculateChecksumsSinglePass(t *testing.T) {
	algos := []ChecksumAlgorithm{ChecksumMD5, ChecksumSHA256, ChecksumXXHash}

	sums, err := CalculateChecksums(strings.NewReader("hello"), algos)
	if err != nil {
		t.Fatalf("CalculateChecksums failed: %v", err)
	}
	if len(sums) != len(algos) {
		t.Fatalf("got %d checksums, want %d", len(sums), len(algos))
	}

	// Multi-pass and single-pass must agree
	for _, algo := range algos {
		single, err := CalculateChecksum(strings.NewReader("hello"), algo)
		if err != nil {
			t.Fatalf("CalculateChecksum(%s) failed: %v", algo, err)
		}
		if sums[algo] != single {
			t.Errorf("%s: multi-pass %s != single-pass %s", algo, sums[algo], single)
		}
	}
}

func TestCalculateChecksumsEmpty(t *testing.T) {
	if _, err := CalculateChecksums(strings.NewReader("hello"), nil); err == nil {
		t.Fatal("expected error for empty algorithm list")
	}
}
