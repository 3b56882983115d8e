package binio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Bytes([]byte{0xDE, 0xAD}))
	require.NoError(t, w.Byte(7))
	require.NoError(t, w.Uint16(65535))
	require.NoError(t, w.Int64(-42))
	require.NoError(t, w.Uvarint(300))
	require.NoError(t, w.String("GRCh38"))
	require.NoError(t, w.String(""))

	r := NewReader(&buf)

	b2, err := r.Bytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD}, b2)

	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(7), b)

	u16, err := r.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), u16)

	i64, err := r.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(-42), i64)

	uv, err := r.Uvarint()
	require.NoError(t, err)
	assert.Equal(t, uint64(300), uv)

	s, err := r.String()
	require.NoError(t, err)
	assert.Equal(t, "GRCh38", s)

	s, err = r.String()
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestReader_ShortReads(t *testing.T) {
	r := NewReader(strings.NewReader("x"))
	_, err := r.Uint16()
	assert.Error(t, err)

	r = NewReader(strings.NewReader(""))
	_, err = r.ReadByte()
	assert.Error(t, err)

	// Length prefix says 100 bytes, stream holds 3.
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Uvarint(100))
	require.NoError(t, w.Bytes([]byte("abc")))
	_, err = NewReader(&buf).String()
	assert.Error(t, err)
}

func TestReader_StringLengthLimit(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Uvarint(1<<30))

	_, err := NewReader(&buf).String()
	assert.Error(t, err, "absurd lengths rejected before allocation")
}
