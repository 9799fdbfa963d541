package modelfmt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"golang.org/x/crypto/blake2b"
)

// Write writes a snapshot to w and returns the BLAKE2b-256 hash of the
// complete encoding. Writes are deterministic: the same snapshot always
// produces the same bytes and hash.
func Write(w io.Writer, s *Snapshot) ([32]byte, error) {
	encoded, err := Encode(s)
	if err != nil {
		return [32]byte{}, err
	}

	if _, err := w.Write(encoded); err != nil {
		return [32]byte{}, fmt.Errorf("writing snapshot: %w", err)
	}

	return blake2b.Sum256(encoded), nil
}

// Encode renders the full snapshot encoding, header included.
func Encode(s *Snapshot) ([]byte, error) {
	body, err := encMode.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot body: %w", err)
	}
	if len(body) > math.MaxUint32 {
		return nil, fmt.Errorf("snapshot body %d bytes exceeds maximum %d", len(body), math.MaxUint32)
	}

	var buf bytes.Buffer
	buf.Grow(len(Magic) + 8 + len(body))
	buf.WriteString(Magic)

	var header [8]byte
	binary.LittleEndian.PutUint16(header[0:2], Version)
	binary.LittleEndian.PutUint16(header[2:4], uint16(0)) // flags, reserved
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(body)))
	buf.Write(header[:])

	buf.Write(body)
	return buf.Bytes(), nil
}

// Hash returns the snapshot's BLAKE2b-256 hash without writing it anywhere.
func Hash(s *Snapshot) ([32]byte, error) {
	encoded, err := Encode(s)
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(encoded), nil
}
