package kcore

import "errors"

// Sentinel errors reported by this core, per spec.md §6/§7. Lookup misses
// are never raised as errors (they come back as absent optionals); the
// first three are the synchronous/contract failures the core does
// report, and ErrShortBuffer is the wire-string parsing error.
var (
	// ErrInvalidConfig is returned by CreateOrFind when a TopicConfig
	// fails validation (spec.md §4.D).
	ErrInvalidConfig = errors.New("kcore: invalid argument")

	// ErrUnknownTopic is returned by PartitionCountUpdate when the named
	// topic is not locally known (spec.md §4.E).
	ErrUnknownTopic = errors.New("kcore: unknown topic")

	// ErrNoUnassignedPartition is returned by Topic.RequireUAMoveMsgs when
	// a Topic has no unassigned slot left (Topic.UAMoveMsgs reports the
	// same case as false) (spec.md §4.C).
	ErrNoUnassignedPartition = errors.New("kcore: no unassigned partition")

	// ErrShortBuffer is returned by ReadProtocolString when the buffer is
	// too small to contain the declared length-prefixed string.
	ErrShortBuffer = errors.New("kcore: short protocol buffer")
)
