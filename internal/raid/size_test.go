package raid

import "testing"

func TestParseSizeToBytes(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"", 0},
		{"512", 512},
		{"512 B", 512},
		{"1 KB", 1024},
		{"1.5 MB", 1572864},
		{"278.875 GB", 299439751168},
		{"1 TB", 1099511627776},
		{"2T", 2199023255552},
		{"1 PB", 1125899906842624},
		{"12 XB", 12},
		{"abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseSizeToBytes(tt.input); got != tt.expected {
				t.Errorf("ParseSizeToBytes(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}
