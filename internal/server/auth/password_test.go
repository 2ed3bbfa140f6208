package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2"))
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}

func TestCheckPassword_LegacyPlaintext(t *testing.T) {
	// accounts migrated from the old system store the password verbatim
	assert.True(t, CheckPassword("hunter2", "hunter2"))
	assert.False(t, CheckPassword("hunter2", "other"))
	assert.False(t, CheckPassword("", "x"))
}
