package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysymForName_NamedKeys(t *testing.T) {
	sym, ok := KeysymForName("Return")
	assert.True(t, ok)
	assert.Equal(t, uint32(0xff0d), sym)
}

func TestKeysymForName_Letters(t *testing.T) {
	sym, ok := KeysymForName("A")
	assert.True(t, ok)
	assert.Equal(t, uint32('a'), sym)
}

func TestKeysymForName_SinglePrintableChar(t *testing.T) {
	sym, ok := KeysymForName("-")
	assert.True(t, ok)
	assert.Equal(t, uint32('-'), sym)
}

func TestKeysymForName_Unknown(t *testing.T) {
	_, ok := KeysymForName("NotAKey")
	assert.False(t, ok)
}
