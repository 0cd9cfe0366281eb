package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHeader_Basic(t *testing.T) {
	raw := rawHeader(0x1234, 0x8180, 1, 2, 0, 0)
	c := newCursor(raw)
	h, err := decodeHeader(c)
	require.NoError(t, err)

	assert.Equal(t, uint16(0x1234), h.ID)
	assert.True(t, h.QR)
	assert.Equal(t, OpcodeQuery, h.Opcode)
	assert.False(t, h.AA)
	assert.False(t, h.TC)
	assert.True(t, h.RD)
	assert.True(t, h.RA)
	assert.Equal(t, uint8(0), h.Z)
	assert.Equal(t, RCodeNoError, h.RCode)
	assert.Equal(t, uint16(1), h.QDCount)
	assert.Equal(t, uint16(2), h.ANCount)
	assert.Equal(t, HeaderSize, c.offset())
}

func TestDecodeHeader_UnknownOpcodeAndRCode(t *testing.T) {
	// Opcode bits = 1111 (15, unknown), RCode bits = 1111 (15, unknown).
	flags := uint16(0x7800 | 0x000F)
	raw := rawHeader(0, flags, 0, 0, 0, 0)
	h, err := decodeHeader(newCursor(raw))
	require.NoError(t, err)

	assert.False(t, h.Opcode.IsKnown())
	assert.Equal(t, Opcode(15), h.Opcode)
	assert.False(t, h.RCode.IsKnown())
	assert.Equal(t, RCode(15), h.RCode)
}

func TestDecodeHeader_ZBitsPreserved(t *testing.T) {
	flags := uint16(0x0070) // all three Z bits set
	h, err := decodeHeader(newCursor(rawHeader(0, flags, 0, 0, 0, 0)))
	require.NoError(t, err)
	assert.Equal(t, uint8(0x7), h.Z)
}

func TestDecodeHeader_ShortHeader(t *testing.T) {
	for _, n := range []int{0, 1, 8, 11} {
		_, err := decodeHeader(newCursor(make([]byte, n)))
		require.Error(t, err)
		pe, ok := err.(*ParseError)
		require.True(t, ok)
		assert.Equal(t, ShortHeader, pe.Kind)
	}
}

func TestDecodeHeader_ExactlyTwelveBytes(t *testing.T) {
	_, err := decodeHeader(newCursor(make([]byte, 12)))
	require.NoError(t, err)
}
