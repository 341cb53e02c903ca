package kcore

import "testing"

func TestUniformRandomPartitionerRange(t *testing.T) {
	p := NewUniformRandomPartitioner()
	for i := 0; i < 100; i++ {
		got := p.Partition("t", nil, nil, 4)
		if got < 0 || got >= 4 {
			t.Fatalf("Partition() = %d, out of range [0,4)", got)
		}
	}
}

func TestUniformRandomPartitionerZeroPartitions(t *testing.T) {
	p := NewUniformRandomPartitioner()
	if got := p.Partition("t", nil, nil, 0); got != -1 {
		t.Fatalf("Partition() = %d, want -1 for zero partitions", got)
	}
}

func TestPartitionerFuncAdapter(t *testing.T) {
	var p Partitioner = PartitionerFunc(func(topic string, _ []byte, _ *Message, _ int32) int32 {
		if topic == "special" {
			return 7
		}
		return 0
	})
	if got := p.Partition("special", nil, nil, 10); got != 7 {
		t.Fatalf("Partition() = %d, want 7", got)
	}
}
