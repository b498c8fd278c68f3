package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTxHash(t *testing.T) {
	assert.NoError(t, TxHash("0xabcdef0123456789abcdef"))
	assert.Error(t, TxHash("0xshort"))
	assert.Error(t, TxHash(""))
	// Whitespace padding does not make a hash longer.
	assert.Error(t, TxHash("  0xshort  "+strings.Repeat(" ", 20)))
}

func TestHasSpecialChar(t *testing.T) {
	assert.True(t, HasSpecialChar("pa$sword"))
	assert.True(t, HasSpecialChar("hello!"))
	assert.False(t, HasSpecialChar("password123"))
	assert.False(t, HasSpecialChar(""))
}
