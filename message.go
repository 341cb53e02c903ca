package kcore

// Message is the minimal unit this core moves between queues. Message
// payload construction and wire encoding are out of scope (spec.md §1);
// this core only ever copies *Message pointers between FIFOs unchanged.
type Message struct {
	Key       []byte
	Value     []byte
	Partition int32
}
