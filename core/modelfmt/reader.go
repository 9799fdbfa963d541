package modelfmt

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// Read reads one snapshot from r, verifying magic and version, and
// returns it together with the BLAKE2b-256 hash of the encoding actually
// read.
func Read(r io.Reader) (*Snapshot, [32]byte, error) {
	var zero [32]byte

	prefix := make([]byte, len(Magic)+8)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return nil, zero, fmt.Errorf("reading snapshot header: %w", err)
	}

	if string(prefix[:len(Magic)]) != Magic {
		return nil, zero, fmt.Errorf("bad magic %q, want %q", prefix[:len(Magic)], Magic)
	}

	version := binary.LittleEndian.Uint16(prefix[len(Magic):])
	if version != Version {
		return nil, zero, fmt.Errorf("unsupported snapshot version 0x%04x, want 0x%04x", version, Version)
	}

	flags := Flags(binary.LittleEndian.Uint16(prefix[len(Magic)+2:]))
	if flags != 0 {
		return nil, zero, fmt.Errorf("unsupported snapshot flags 0x%04x", uint16(flags))
	}

	bodyLen := binary.LittleEndian.Uint32(prefix[len(Magic)+4:])
	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, zero, fmt.Errorf("reading snapshot body: %w", err)
	}

	var s Snapshot
	if err := cbor.Unmarshal(body, &s); err != nil {
		return nil, zero, fmt.Errorf("decoding snapshot body: %w", err)
	}

	hasher, err := blake2b.New256(nil)
	if err != nil {
		return nil, zero, fmt.Errorf("creating hasher: %w", err)
	}
	hasher.Write(prefix)
	hasher.Write(body)

	var sum [32]byte
	copy(sum[:], hasher.Sum(nil))
	return &s, sum, nil
}
