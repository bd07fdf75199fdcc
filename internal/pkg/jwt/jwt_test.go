package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	tok, err := Sign("user-123", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestParseExpired(t *testing.T) {
	tok, err := Sign("user-123", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExpired))
	assert.False(t, errors.Is(err, ErrMalformed))
}

func TestParseMalformed(t *testing.T) {
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := Parse(tok)
		require.Error(t, err, "token %q", tok)
		assert.True(t, errors.Is(err, ErrMalformed), "token %q", tok)
	}
}

func TestParseTamperedSignature(t *testing.T) {
	tok, err := Sign("user-123", time.Hour)
	require.NoError(t, err)

	tampered := tok[:len(tok)-2] + "xx"
	_, err = Parse(tampered)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}
