package kcore

import (
	"bytes"
	"encoding/binary"
)

// Name holds a Topic's own name per spec.md §6: the in-memory
// representation carries a trailing NUL byte past the logical length, so
// higher layers can treat the payload as a C-string without copying.
// Strings that arrive off the wire never carry that guarantee, so
// equality against them must use length+bytes comparison, never
// NUL-terminated comparison.
type Name struct {
	b []byte // logical bytes plus one trailing NUL; len(b) == Len()+1
}

func newName(s string) Name {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return Name{b: b}
}

// String returns the logical name, without the trailing NUL.
func (n Name) String() string {
	if len(n.b) == 0 {
		return ""
	}
	return string(n.b[:len(n.b)-1])
}

// Len returns the logical byte length, excluding the trailing NUL.
func (n Name) Len() int {
	if len(n.b) == 0 {
		return 0
	}
	return len(n.b) - 1
}

// EqualWireString reports whether n equals the payload of a
// length-prefixed Kafka protocol string that has already been sliced off
// the wire (no trailing NUL). This is length+bytes comparison, never a
// NUL-terminated C-string compare (spec.md §6).
func (n Name) EqualWireString(wire []byte) bool {
	if n.Len() != len(wire) {
		return false
	}
	return bytes.Equal(n.b[:n.Len()], wire)
}

// ReadProtocolString reads one Kafka-protocol string (a 16-bit
// big-endian length prefix followed by that many bytes, no trailing
// NUL) off the front of buf, returning the string payload and the
// remaining buffer. This is the wire-layer counterpart to Name: the
// length prefix is the only piece of "wire codec" this package touches,
// since resolving a wire string to a Topic (FindByProtocolString) is
// in scope but decoding full Kafka requests/responses is not (spec.md
// §1).
func ReadProtocolString(buf []byte) (value, rest []byte, err error) {
	if len(buf) < 2 {
		return nil, nil, ErrShortBuffer
	}
	n := int(binary.BigEndian.Uint16(buf))
	if len(buf) < 2+n {
		return nil, nil, ErrShortBuffer
	}
	return buf[2 : 2+n], buf[2+n:], nil
}
