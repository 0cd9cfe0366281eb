package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeName_Simple(t *testing.T) {
	raw := rawName("www", "example", "com")
	n, wireLen, err := decodeName(newCursor(raw), 0)
	require.NoError(t, err)
	assert.Equal(t, len(raw), wireLen)
	assert.Equal(t, "www.example.com.", n.String())
	require.Len(t, n.Labels, 4)
	assert.Equal(t, []byte("www"), n.Labels[0].Data)
	assert.True(t, n.Labels[3].IsRoot())
}

func TestDecodeName_Root(t *testing.T) {
	n, wireLen, err := decodeName(newCursor([]byte{0x00}), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, wireLen)
	assert.Equal(t, ".", n.String())
	assert.True(t, n.Labels[0].IsRoot())
}

func TestDecodeName_Compression(t *testing.T) {
	// "example.com." at offset 0, then "www" pointing back to offset 0.
	base := rawName("example", "com")
	raw := append(append([]byte{}, base...), append([]byte("\x03www"), rawPointer(0)...)...)

	ptrStart := len(base)
	n, wireLen, err := decodeName(newCursor(raw), ptrStart)
	require.NoError(t, err)
	assert.Equal(t, 6, wireLen, "on-wire length is just the www label + 2-byte pointer")
	assert.Equal(t, "www.example.com.", n.String())
}

func TestDecodeName_PointerChain(t *testing.T) {
	// offset 0: "com."
	// offset 5: "example" -> pointer to 0
	// offset 15: "www" -> pointer to 5
	comName := rawName("com")
	exampleName := append(append([]byte{}, []byte("\x07example")...), rawPointer(0)...)
	raw := append(append([]byte{}, comName...), exampleName...)
	wwwOffset := len(raw)
	raw = append(raw, append([]byte("\x03www"), rawPointer(len(comName))...)...)

	n, _, err := decodeName(newCursor(raw), wwwOffset)
	require.NoError(t, err)
	assert.Equal(t, "www.example.com.", n.String())
}

func TestDecodeName_BadPointer_Forward(t *testing.T) {
	raw := append(rawPointer(10), make([]byte, 10)...)
	_, _, err := decodeName(newCursor(raw), 0)
	require.Error(t, err)
	pe := err.(*ParseError)
	assert.Equal(t, BadPointer, pe.Kind)
	assert.Equal(t, 0, pe.From)
	assert.Equal(t, 10, pe.To)
}

func TestDecodeName_BadPointer_SelfReference(t *testing.T) {
	// Scenario 4 from spec.md §8: a 14-byte datagram, header declares
	// QDCOUNT=1, then at offset 12 a pointer to itself (offset 12).
	raw := append(rawHeader(0, 0, 1, 0, 0, 0), rawPointer(12)...)
	raw = append(raw, u16(1)...)
	raw = append(raw, u16(1)...)

	_, err := Parse(raw)
	require.Error(t, err)
	pe := err.(*ParseError)
	assert.True(t, pe.Kind == BadPointer || pe.Kind == PointerLoop)
}

func TestDecodeName_PointerLoop(t *testing.T) {
	// offset 0 points to offset 2, offset 2 points back to offset 0. The
	// strict backward-only rule (spec.md §4.3) means any would-be cycle
	// is caught the moment it stops being strictly decreasing: hop
	// 0->2 is itself a forward pointer, so this is rejected as
	// BadPointer rather than ever reaching a second visit of offset 0 —
	// the two errors are, per spec.md §9's Open Question note,
	// "equivalent framings of the same defect".
	raw := make([]byte, 4)
	copy(raw[0:2], rawPointer(2))
	copy(raw[2:4], rawPointer(0))
	_, _, err := decodeName(newCursor(raw), 0)
	require.Error(t, err)
	assert.Equal(t, BadPointer, err.(*ParseError).Kind)
}

func TestDecodeName_ReservedLabelType(t *testing.T) {
	for _, tag := range []byte{0x40, 0x80} {
		raw := []byte{tag, 0x00}
		_, _, err := decodeName(newCursor(raw), 0)
		require.Error(t, err)
		pe := err.(*ParseError)
		assert.Equal(t, ReservedLabelType, pe.Kind)
		assert.Equal(t, tag, pe.Tag)
	}
}

func TestDecodeName_Truncated(t *testing.T) {
	raw := []byte{0x05, 'a', 'b'} // claims 5 bytes, only 2 available
	_, _, err := decodeName(newCursor(raw), 0)
	require.Error(t, err)
	assert.Equal(t, Truncated, err.(*ParseError).Kind)
}

func TestDecodeName_TooLong(t *testing.T) {
	// 4 labels of 63 bytes each plus root = 4*64+1 = 257 > 255.
	label := make([]byte, 63)
	for i := range label {
		label[i] = 'a'
	}
	var raw []byte
	for i := 0; i < 4; i++ {
		raw = append(raw, byte(len(label)))
		raw = append(raw, label...)
	}
	raw = append(raw, 0)

	_, _, err := decodeName(newCursor(raw), 0)
	require.Error(t, err)
	assert.Equal(t, NameTooLong, err.(*ParseError).Kind)
}

func TestDecodeName_EscapesNonPrintableAndDots(t *testing.T) {
	raw := rawName("a.b", "c")
	n, _, err := decodeName(newCursor(raw), 0)
	require.NoError(t, err)
	assert.Equal(t, `a\.b.c.`, n.String())
}

func TestDecodeName_VisitedSetBoundsPointerHops(t *testing.T) {
	// A long but strictly-backward chain of pointers must still resolve
	// (no false PointerLoop) as long as it stays within the cap: each
	// pointer targets the previous pointer's own offset, eventually
	// bottoming out at the root byte.
	const n = 50
	raw := []byte{0x00} // offset 0: root
	prevOffset := 0
	var lastOffset int
	for i := 0; i < n; i++ {
		lastOffset = len(raw)
		raw = append(raw, rawPointer(prevOffset)...)
		prevOffset = lastOffset
	}

	_, _, err := decodeName(newCursor(raw), lastOffset)
	require.NoError(t, err)
}
