package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		valid    bool
	}{
		{"plain local number", "09123456789", "09123456789", true},
		{"spaces and dashes stripped", "0912-345-6789", "09123456789", true},
		{"country prefix converted", "+63 912 345 6789", "09123456789", true},
		{"too short", "0912345", "0912345", false},
		{"too long", "091234567890", "091234567890", false},
		{"letters only", "not-a-phone", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, valid := NormalizePhone(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.valid, valid)
		})
	}
}
