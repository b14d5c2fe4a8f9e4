package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticipates(t *testing.T) {
	tests := []struct {
		mode        string
		full        bool
		startOfWeek bool
		expected    bool
	}{
		{"daily", false, false, true},
		{"daily", false, true, true},
		{"incr", false, false, true},
		{"incr", false, true, true},
		{"weekly", false, false, false},
		{"weekly", false, true, true},
		{"weekly", true, false, true},
	}
	for _, tt := range tests {
		got := participates(tt.mode, tt.full, tt.startOfWeek)
		assert.Equal(t, tt.expected, got, "mode=%s full=%v startOfWeek=%v", tt.mode, tt.full, tt.startOfWeek)
	}
}
