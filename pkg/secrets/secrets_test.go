package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "caregate/pkg/domain-errors"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.NotContains(t, hash, "correct horse")

	require.NoError(t, Verify("correct horse battery staple", hash))

	err = Verify("wrong password", hash)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestHashRejectsEmpty(t *testing.T) {
	_, err := Hash("")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestHashRejectsOverlongCredential(t *testing.T) {
	// bcrypt caps input at 72 bytes.
	_, err := Hash(strings.Repeat("x", 100))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestGenerate(t *testing.T) {
	first, err := Generate()
	require.NoError(t, err)
	second, err := Generate()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.GreaterOrEqual(t, len(first), 32)

	// Generated credentials stay within bcrypt's input limit.
	hash, err := Hash(first)
	require.NoError(t, err)
	require.NoError(t, Verify(first, hash))
}
