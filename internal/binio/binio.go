// Package binio provides the low-level primitives shared by the cache and
// prediction binary formats: little-endian fixed-width fields and
// uvarint-length-prefixed strings.
package binio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ByteOrder is the byte order used by all varsight binary formats.
var ByteOrder = binary.LittleEndian

// Reader wraps an io.Reader with the byte-level read primitives the binary
// cache formats need. All methods fail on short reads.
type Reader struct {
	r io.Reader
	b [8]byte
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read passes through to the underlying reader. The Reader keeps no
// lookahead buffer, so mixed-mode consumers (a gob decoder following
// field-level reads) see a consistent stream position.
func (r *Reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

// ReadByte reads a single byte (implements io.ByteReader for uvarint decoding).
func (r *Reader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(r.r, r.b[:1]); err != nil {
		return 0, err
	}
	return r.b[0], nil
}

// Bytes reads exactly n bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	if _, err := io.ReadFull(r.r, r.b[:2]); err != nil {
		return 0, err
	}
	return ByteOrder.Uint16(r.b[:2]), nil
}

// Int64 reads a little-endian int64.
func (r *Reader) Int64() (int64, error) {
	if _, err := io.ReadFull(r.r, r.b[:8]); err != nil {
		return 0, err
	}
	return int64(ByteOrder.Uint64(r.b[:8])), nil
}

// Uvarint reads an unsigned varint.
func (r *Reader) Uvarint() (uint64, error) {
	return binary.ReadUvarint(r)
}

// String reads a uvarint-length-prefixed UTF-8 string.
func (r *Reader) String() (string, error) {
	n, err := r.Uvarint()
	if err != nil {
		return "", err
	}
	const maxStringLen = 1 << 20
	if n > maxStringLen {
		return "", fmt.Errorf("string length %d exceeds limit", n)
	}
	buf, err := r.Bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Writer wraps an io.Writer with the matching write primitives.
type Writer struct {
	w io.Writer
	b [binary.MaxVarintLen64]byte
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Bytes writes raw bytes.
func (w *Writer) Bytes(p []byte) error {
	_, err := w.w.Write(p)
	return err
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) error {
	w.b[0] = b
	_, err := w.w.Write(w.b[:1])
	return err
}

// Uint16 writes a little-endian uint16.
func (w *Writer) Uint16(v uint16) error {
	ByteOrder.PutUint16(w.b[:2], v)
	_, err := w.w.Write(w.b[:2])
	return err
}

// Int64 writes a little-endian int64.
func (w *Writer) Int64(v int64) error {
	ByteOrder.PutUint64(w.b[:8], uint64(v))
	_, err := w.w.Write(w.b[:8])
	return err
}

// Uvarint writes an unsigned varint.
func (w *Writer) Uvarint(v uint64) error {
	n := binary.PutUvarint(w.b[:], v)
	_, err := w.w.Write(w.b[:n])
	return err
}

// String writes a uvarint-length-prefixed UTF-8 string.
func (w *Writer) String(s string) error {
	if err := w.Uvarint(uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w.w, s)
	return err
}
