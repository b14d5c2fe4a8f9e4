package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayBytes(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "0 bytes"},
		{1, "1 bytes"},
		{1023, "1023 bytes"},
		{1024, "1.00 kB"},
		{1536, "1.50 kB"},
		{1024 * 1024, "1.00 MB"},
		{72372224, "69.02 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{4724464025, "4.40 GB"},
		{-2048, "-2.00 kB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, DisplayBytes(tt.n), tt.n)
	}
}
