package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve(t *testing.T) {
	buf, release, err := Reserve(1 << 16)
	require.NoError(t, err)
	require.Len(t, buf, 1<<16)

	// Region is zeroed and writable.
	assert.Zero(t, buf[0])
	assert.Zero(t, buf[len(buf)-1])
	buf[0] = 0xFF
	buf[len(buf)-1] = 0xFF

	require.NoError(t, release())
}

func TestReserve_BadSize(t *testing.T) {
	_, _, err := Reserve(0)
	assert.Error(t, err)
	_, _, err = Reserve(-1)
	assert.Error(t, err)
}

func TestReserve_ReleaseTwice(t *testing.T) {
	buf, release, err := Reserve(4096)
	require.NoError(t, err)
	_ = buf
	require.NoError(t, release())
	require.NoError(t, release(), "second release is a no-op")
}
