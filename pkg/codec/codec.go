// Package codec encodes engine records as borsh with an 8-byte account
// discriminator, the layout the on-chain program persists.
package codec

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"lukechampine.com/uint128"
)

// Discriminator returns sha256("account:<name>")[:8].
func Discriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var d [8]byte
	copy(d[:], sum[:8])
	return d
}

// Writer accumulates borsh fields and keeps the first error.
type Writer struct {
	buf bytes.Buffer
	enc *bin.Encoder
	err error
}

// NewWriter starts a record of the given account type.
func NewWriter(name string) *Writer {
	w := &Writer{}
	w.enc = bin.NewBorshEncoder(&w.buf)
	d := Discriminator(name)
	w.err = w.enc.WriteBytes(d[:], false)
	return w
}

// Put encodes a fixed-size value.
func (w *Writer) Put(v interface{}) {
	if w.err != nil {
		return
	}
	w.err = w.enc.Encode(v)
}

// PutU128 encodes a 128-bit value as two little-endian words.
func (w *Writer) PutU128(v uint128.Uint128) {
	w.Put(v.Lo)
	w.Put(v.Hi)
}

// Bytes returns the encoded record.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", w.err)
	}
	return w.buf.Bytes(), nil
}

// Reader decodes borsh fields and keeps the first error.
type Reader struct {
	dec *bin.Decoder
	err error
}

// NewReader checks the discriminator of data against the account type.
func NewReader(name string, data []byte) (*Reader, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("record too short: %d bytes", len(data))
	}
	want := Discriminator(name)
	if !bytes.Equal(data[:8], want[:]) {
		return nil, fmt.Errorf("discriminator mismatch for %s", name)
	}
	return &Reader{dec: bin.NewBorshDecoder(data[8:])}, nil
}

// Get decodes into the pointer v.
func (r *Reader) Get(v interface{}) {
	if r.err != nil {
		return
	}
	r.err = r.dec.Decode(v)
}

// GetU128 decodes a 128-bit value written by PutU128.
func (r *Reader) GetU128() uint128.Uint128 {
	var lo, hi uint64
	r.Get(&lo)
	r.Get(&hi)
	return uint128.New(lo, hi)
}

// Err returns the first decode error.
func (r *Reader) Err() error {
	if r.err != nil {
		return fmt.Errorf("failed to decode record: %w", r.err)
	}
	return nil
}
