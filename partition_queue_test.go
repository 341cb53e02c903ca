package kcore

import "testing"

func TestMsgQueueHeadAndTailOrdering(t *testing.T) {
	q := newMsgQueue()
	a, b, c := &Message{Key: []byte("a")}, &Message{Key: []byte("b")}, &Message{Key: []byte("c")}

	q.enqueueTail(a)
	q.enqueueTail(b)
	q.enqueueHead(c)

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}

	want := []*Message{c, a, b}
	for i, w := range want {
		got, ok := q.dequeue()
		if !ok {
			t.Fatalf("dequeue %d: empty", i)
		}
		if got != w {
			t.Fatalf("dequeue %d = %v, want %v", i, got, w)
		}
	}
	if _, ok := q.dequeue(); ok {
		t.Fatal("expected empty queue")
	}
}

func TestMsgQueueSpliceHeadPreservesOrder(t *testing.T) {
	dst := newMsgQueue()
	dst.enqueueTail(&Message{Key: []byte("d1")})

	other := newMsgQueue()
	other.enqueueTail(&Message{Key: []byte("o1")})
	other.enqueueTail(&Message{Key: []byte("o2")})

	dst.spliceHead(other)

	if other.Len() != 0 {
		t.Fatalf("other.Len() = %d, want 0 (drained)", other.Len())
	}

	wantKeys := []string{"o1", "o2", "d1"}
	for _, want := range wantKeys {
		m, ok := dst.dequeue()
		if !ok || string(m.Key) != want {
			t.Fatalf("dequeue = %v, want key %q", m, want)
		}
	}
}

func TestMsgQueueMoveMsgsFromDrainsSource(t *testing.T) {
	dst := newMsgQueue()
	dst.enqueueTail(&Message{Key: []byte("d1")})

	src := newMsgQueue()
	src.enqueueTail(&Message{Key: []byte("s1")})
	src.enqueueTail(&Message{Key: []byte("s2")})

	dst.moveMsgsFrom(src)

	if src.Len() != 0 {
		t.Fatalf("src.Len() = %d, want 0", src.Len())
	}
	wantKeys := []string{"d1", "s1", "s2"}
	for _, want := range wantKeys {
		m, ok := dst.dequeue()
		if !ok || string(m.Key) != want {
			t.Fatalf("dequeue = %v, want key %q", m, want)
		}
	}
}

func TestMsgQueueDrainAndPurge(t *testing.T) {
	q := newMsgQueue()
	q.enqueueTail(&Message{Key: []byte("a")})
	q.enqueueTail(&Message{Key: []byte("b")})

	out := q.drain()
	if len(out) != 2 {
		t.Fatalf("drain() returned %d messages, want 2", len(out))
	}
	if q.Len() != 0 {
		t.Fatalf("queue not empty after drain: Len() = %d", q.Len())
	}

	q.enqueueTail(&Message{Key: []byte("c")})
	q.purge()
	if q.Len() != 0 {
		t.Fatalf("queue not empty after purge: Len() = %d", q.Len())
	}
}

func TestFifoTailEnqueueHeadDequeue(t *testing.T) {
	f := newFIFO()
	f.enqueue(&Message{Key: []byte("1")})
	f.enqueue(&Message{Key: []byte("2")})
	f.enqueue(&Message{Key: []byte("3")})

	if f.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", f.Len())
	}

	msgs := f.drainMessages()
	wantKeys := []string{"1", "2", "3"}
	for i, want := range wantKeys {
		if string(msgs[i].Key) != want {
			t.Fatalf("msgs[%d].Key = %q, want %q", i, msgs[i].Key, want)
		}
	}
	if f.Len() != 0 {
		t.Fatalf("Len() = %d after drainMessages, want 0", f.Len())
	}
}

func TestFifoDequeueEmpty(t *testing.T) {
	f := newFIFO()
	if _, ok := f.dequeue(); ok {
		t.Fatal("expected empty fifo to report ok=false")
	}
}
