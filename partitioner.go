package kcore

import "math/rand"

// Partitioner chooses a destination partition for a message, mirroring
// the Partitioner interface shape used throughout the corpus (e.g.
// sarama's Partitioner consumed via Config.Producer.Partitioner) rather
// than a bare function value, even though spec.md §4.D describes it
// informally as "a partitioner function".
//
// Partition returns msg_partitioner's contract from spec.md §6: the
// chosen partition id, or -1 if the requested partition is currently
// unavailable.
type Partitioner interface {
	Partition(topic string, key []byte, msg *Message, numPartitions int32) int32
}

type uniformRandomPartitioner struct{}

// NewUniformRandomPartitioner returns the default partitioner installed
// by CreateOrFind when a TopicConfig supplies none (spec.md §4.D).
func NewUniformRandomPartitioner() Partitioner { return uniformRandomPartitioner{} }

func (uniformRandomPartitioner) Partition(_ string, _ []byte, _ *Message, numPartitions int32) int32 {
	if numPartitions <= 0 {
		return -1
	}
	return int32(rand.Intn(int(numPartitions)))
}

// PartitionerFunc adapts a plain function to a Partitioner, for callers
// who prefer to supply spec.md's informal "partitioner function" shape
// directly.
type PartitionerFunc func(topic string, key []byte, msg *Message, numPartitions int32) int32

func (f PartitionerFunc) Partition(topic string, key []byte, msg *Message, numPartitions int32) int32 {
	return f(topic, key, msg, numPartitions)
}
