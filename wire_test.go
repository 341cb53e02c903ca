package kcore

import "testing"

func TestNameEqualWireString(t *testing.T) {
	n := newName("orders")

	if !n.EqualWireString([]byte("orders")) {
		t.Fatal("expected match against identical wire payload")
	}
	if n.EqualWireString([]byte("orders\x00")) {
		t.Fatal("trailing NUL must not be treated as part of the wire payload")
	}
	if n.EqualWireString([]byte("order")) {
		t.Fatal("prefix must not match")
	}
	if n.Len() != len("orders") {
		t.Fatalf("Len() = %d, want %d", n.Len(), len("orders"))
	}
}

func TestReadProtocolString(t *testing.T) {
	buf := []byte{0x00, 0x05, 'h', 'e', 'l', 'l', 'o', 0xAA, 0xBB}

	value, rest, err := ReadProtocolString(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(value) != "hello" {
		t.Fatalf("value = %q, want %q", value, "hello")
	}
	if len(rest) != 2 || rest[0] != 0xAA || rest[1] != 0xBB {
		t.Fatalf("rest = %v, want [0xAA 0xBB]", rest)
	}
}

func TestReadProtocolStringShortBuffer(t *testing.T) {
	if _, _, err := ReadProtocolString([]byte{0x00}); err != ErrShortBuffer {
		t.Fatalf("err = %v, want ErrShortBuffer", err)
	}
	if _, _, err := ReadProtocolString([]byte{0x00, 0x05, 'h', 'i'}); err != ErrShortBuffer {
		t.Fatalf("err = %v, want ErrShortBuffer", err)
	}
}
