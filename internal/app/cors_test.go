package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"shop.example.com", "*.subkart.app", "localhost:*"}

	assert.True(t, originAllowed(patterns, "https://shop.example.com"))
	assert.True(t, originAllowed(patterns, "https://admin.subkart.app"))
	assert.True(t, originAllowed(patterns, "http://localhost:3000"))
	assert.True(t, originAllowed(patterns, "localhost:5173"), "scheme-less origins match on the raw value")

	assert.False(t, originAllowed(patterns, "https://evil.example.org"))
	assert.False(t, originAllowed(patterns, "https://admin.example.com"))
	assert.False(t, originAllowed(nil, "https://shop.example.com"))
}

func TestMatchOriginPattern(t *testing.T) {
	assert.True(t, matchOriginPattern("shop.example.com", "shop.example.com"))
	assert.True(t, matchOriginPattern("*.example.com", "admin.example.com"))
	assert.True(t, matchOriginPattern("localhost:*", "localhost:3000"))
	assert.False(t, matchOriginPattern("*.example.com", "example.org"))
	assert.False(t, matchOriginPattern("shop.example.com", "admin.example.com"))
}
