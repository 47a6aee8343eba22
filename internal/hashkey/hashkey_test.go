package hashkey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash_Deterministic(t *testing.T) {
	inputs := []string{"", "a", "why do you want this role", "ümlaut ünïcode"}
	for _, in := range inputs {
		assert.Equal(t, Hash(in), Hash(in))
	}
}

func TestHash_KnownValues(t *testing.T) {
	// FNV-1a 32-bit offset basis for the empty string.
	assert.Equal(t, "ztntfp", Hash(""))
	assert.NotEqual(t, Hash("a"), Hash("b"))
}

func TestHash_Base36Alphabet(t *testing.T) {
	h := Hash("Tell us about yourself")
	assert.NotEmpty(t, h)
	assert.LessOrEqual(t, len(h), 7)
	for _, c := range h {
		assert.True(t, strings.ContainsRune("0123456789abcdefghijklmnopqrstuvwxyz", c), "unexpected rune %q", c)
	}
}

func TestPrefixed(t *testing.T) {
	assert.True(t, strings.HasPrefix(Prefixed("q_", "email"), "q_"))
	assert.Equal(t, "q_"+Hash("email"), Prefixed("q_", "email"))
}
