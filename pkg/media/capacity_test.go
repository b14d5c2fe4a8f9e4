package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacity(t *testing.T) {
	tests := []struct {
		mediaType string
		expected  int64
	}{
		{"cdr-74", 332800 * 2048},
		{"cdrw-74", 332800 * 2048},
		{"cdr-80", 358400 * 2048},
		{"cdrw-80", 358400 * 2048},
		{"dvd+r", 4724464025},
		{"dvd+rw", 4724464025},
	}
	for _, tt := range tests {
		capacity, err := Capacity(tt.mediaType)
		require.NoError(t, err, tt.mediaType)
		assert.Equal(t, tt.expected, capacity, tt.mediaType)
	}

	_, err := Capacity("floppy")
	assert.Error(t, err)
	_, err = Capacity("")
	assert.Error(t, err)
}

func TestUsableCapacity(t *testing.T) {
	usable, err := UsableCapacity(650_000_000, 4.0)
	require.NoError(t, err)
	assert.Equal(t, int64(624_000_000), usable)

	usable, err = UsableCapacity(1000, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), usable)

	usable, err = UsableCapacity(1000, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(500), usable)

	usable, err = UsableCapacity(0, 10)
	require.NoError(t, err)
	assert.Zero(t, usable)
}

func TestUsableCapacityRejectsBadCushion(t *testing.T) {
	for _, cushion := range []float64{-0.1, 100, 150} {
		_, err := UsableCapacity(1000, cushion)
		assert.Error(t, err, cushion)
	}
	_, err := UsableCapacity(-1, 4.0)
	assert.Error(t, err)
}
