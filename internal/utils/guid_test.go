package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGUIDGenerator_Generate(t *testing.T) {
	g := NewGUIDGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		guid := g.Generate()
		require.Len(t, guid, 12)
		assert.True(t, ValidGUID(guid), "generated guid %q should be valid", guid)
		assert.False(t, seen[guid], "guid %q generated twice", guid)
		seen[guid] = true
	}
}

func TestValidGUID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"RootGUID", "root________", true},
		{"Generated", "AZaz09-_AZaz", true},
		{"TooShort", "abc", false},
		{"TooLong", "abcdefghijklm", false},
		{"IllegalChar", "abcdefghijk!", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidGUID(tt.in))
		})
	}
}

func TestPayloadsEqual(t *testing.T) {
	assert.True(t, PayloadsEqual([]byte("abc"), []byte("abc")))
	assert.False(t, PayloadsEqual([]byte("abc"), []byte("abd")))
	assert.True(t, PayloadsEqual(nil, nil))
}
