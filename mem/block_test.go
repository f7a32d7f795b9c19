package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock_Zero(t *testing.T) {
	var b Block
	assert.True(t, b.IsZero())
	assert.Zero(t, b.Size())
	assert.Zero(t, b.Addr())
}

func TestBlock_Accessors(t *testing.T) {
	buf := make([]byte, 64)
	b := NewBlock(buf, 8)

	require.False(t, b.IsZero())
	assert.Equal(t, 64, b.Size())
	assert.Equal(t, 8, b.Align())
	assert.NotZero(t, b.Addr())

	// Writes through Bytes land in the backing storage.
	b.Bytes()[0] = 0xAB
	assert.Equal(t, byte(0xAB), buf[0])
}

func TestBlock_AddrIdentity(t *testing.T) {
	buf := make([]byte, 32)
	b1 := NewBlock(buf, 8)
	b2 := NewBlock(buf, 8)
	assert.Equal(t, b1.Addr(), b2.Addr(), "same backing storage, same address")

	other := NewBlock(make([]byte, 32), 8)
	assert.NotEqual(t, b1.Addr(), other.Addr())
}
