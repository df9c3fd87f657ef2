package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/regform/pkg/sanitizer"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "regular address", input: "alice@example.com", expected: "a****@example.com"},
		{name: "single character local part", input: "a@b.com", expected: "*@b.com"},
		{name: "trims whitespace", input: "  bob@example.com ", expected: "b**@example.com"},
		{name: "unicode local part", input: "ёлка@example.com", expected: "ё***@example.com"},
		{name: "no at sign", input: "plainaddress", expected: "plainaddress"},
		{name: "empty local part", input: "@example.com", expected: "@example.com"},
		{name: "two at signs", input: "a@b@c.com", expected: "a@b@c.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizer.MaskEmail(tt.input))
		})
	}
}

func TestMaskString(t *testing.T) {
	assert.Equal(t, "al*ce", sanitizer.MaskString("alice", 2))
	assert.Equal(t, "****", sanitizer.MaskString("abcd", 2))
	assert.Equal(t, "a***e", sanitizer.MaskString("alice", -1))
	assert.Equal(t, "", sanitizer.MaskString("", 1))
}
