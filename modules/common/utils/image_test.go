package utils

import (
	"bytes"
	"testing"
)

func TestConvertImageToBase64(t *testing.T) {
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	encoded := ConvertImageToBase64(data)
	if encoded == "" {
		t.Fatal("ConvertImageToBase64() returned empty string")
	}

	decoded, err := DecodeBase64Image(encoded)
	if err != nil {
		t.Fatalf("DecodeBase64Image() error: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("round-trip = %v, want %v", decoded, data)
	}
}

func TestDecodeBase64Image(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{
			name:  "plain base64",
			input: "aGVsbG8=",
			want:  []byte("hello"),
		},
		{
			name:  "data URL prefix is stripped",
			input: "data:image/png;base64,aGVsbG8=",
			want:  []byte("hello"),
		},
		{
			name:  "surrounding whitespace",
			input: "  aGVsbG8=\n",
			want:  []byte("hello"),
		},
		{
			name:    "invalid base64",
			input:   "not-valid-base64!!!",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBase64Image(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeBase64Image() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !bytes.Equal(got, tt.want) {
				t.Errorf("DecodeBase64Image() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString() = %q, want %q", got, "short")
	}
	if got := TruncateString("abcdefghij", 4); got != "abcd..." {
		t.Errorf("TruncateString() = %q, want %q", got, "abcd...")
	}
}
