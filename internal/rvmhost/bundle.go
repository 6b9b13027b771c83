package rvmhost

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

func init() {
	gob.Register(&Bundle{})
}

// bundleMagic and bundleVersion frame a serialized Bundle exactly the way
// the teacher frames a compiled Funxy program (internal/vm/bundle.go
// Serialize/DeserializeAny): a 4-byte magic, a 1-byte version, then a
// gob-encoded payload. Distinct magic bytes ("RVMB" vs "FXYB") since the
// two formats are not interchangeable.
var bundleMagic = [4]byte{'R', 'V', 'M', 'B'}

const bundleVersionV1 byte = 0x01

// Bundle is a distributable collection of compiled packed programs,
// addressed by name — the RVM's equivalent of the teacher's multi-module
// Bundle, minus the module-dependency graph a general-purpose language
// needs and an RVM program never has (each packed program is already
// fully self-contained or reaches other programs only through its own
// literal pool's deferred thunks).
type Bundle struct {
	// Programs maps a name (an exported type's `__type` program, typically)
	// to its raw Packed Program value, ready for rvm.Decode.
	Programs map[string][]any

	// SourceFile records where the bundle was compiled from, carried
	// through for diagnostics the way the teacher's Bundle.SourceFile is.
	SourceFile string
}

// Serialize encodes b as magic + version + gob payload.
func (b *Bundle) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(bundleMagic[:])
	buf.WriteByte(bundleVersionV1)

	enc := gob.NewEncoder(buf)
	if err := enc.Encode(b); err != nil {
		return nil, fmt.Errorf("rvmhost: bundle gob encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeBundle reads back a Bundle produced by Serialize.
func DeserializeBundle(data []byte) (*Bundle, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("rvmhost: bundle data too short")
	}
	if !bytes.Equal(data[:4], bundleMagic[:]) {
		return nil, fmt.Errorf("rvmhost: invalid magic number, expected %q", bundleMagic)
	}

	version := data[4]
	if version != bundleVersionV1 {
		return nil, fmt.Errorf("rvmhost: unsupported bundle version %d (this binary supports version %d)", version, bundleVersionV1)
	}

	dec := gob.NewDecoder(bytes.NewReader(data[5:]))
	var b Bundle
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("rvmhost: bundle gob decoding failed: %w", err)
	}
	if b.Programs == nil {
		b.Programs = make(map[string][]any)
	}
	return &b, nil
}

// Program looks up a named program's raw Packed Program value.
func (b *Bundle) Program(name string) ([]any, bool) {
	p, ok := b.Programs[name]
	return p, ok
}
