package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.NotContains(t, hash, "correct horse battery staple")

	// Salted: hashing the same password twice never yields the same string.
	hash2, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		encoded  string
		want     bool
		wantErr  bool
	}{
		{name: "correct password", password: "s3cret", encoded: hash, want: true},
		{name: "wrong password", password: "s3cret!", encoded: hash, want: false},
		{name: "empty password", password: "", encoded: hash, want: false},
		{name: "not a hash", password: "s3cret", encoded: "plaintext", wantErr: true},
		{name: "wrong algorithm", password: "s3cret", encoded: "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA", wantErr: true},
		{name: "corrupt salt", password: "s3cret", encoded: "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := VerifyPassword(tt.password, tt.encoded)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
