package kcore

import (
	"container/list"

	"github.com/eapache/queue"
)

// msgQueue is the abstract FIFO collaborator spec.md §6 names
// (msgq_init/enq/insert/deq/concat/move/purge). It backs a Partition's
// pending queue (msgq), the one queue in this core that needs both head
// insertion (enqueue_head, splice_head — returning failed UA messages to
// the front) and tail insertion (enqueue_tail, move_msgs_from). A ring
// buffer like eapache/queue (used below for the tail-only queues) cannot
// do O(1) head insertion, so this is built on container/list instead.
type msgQueue struct {
	l *list.List
}

func newMsgQueue() *msgQueue { return &msgQueue{l: list.New()} }

func (q *msgQueue) Len() int { return q.l.Len() }

func (q *msgQueue) enqueueTail(m *Message) { q.l.PushBack(m) }
func (q *msgQueue) enqueueHead(m *Message) { q.l.PushFront(m) }

func (q *msgQueue) dequeue() (*Message, bool) {
	e := q.l.Front()
	if e == nil {
		return nil, false
	}
	q.l.Remove(e)
	return e.Value.(*Message), true
}

// spliceHead prepends other onto the head of q, preserving other's
// internal order, and drains other to empty. Used to preserve order when
// messages are returned to the UA slot after a failed partitioning
// attempt (spec.md §4.B).
func (q *msgQueue) spliceHead(other *msgQueue) {
	if other.l.Len() == 0 {
		return
	}
	other.l.PushBackList(q.l)
	q.l, other.l = other.l, list.New()
}

// moveMsgsFrom concatenates src onto the tail of q, draining src. Callers
// must hold both queues' partition locks (spec.md §4.B); used during
// shrink.
func (q *msgQueue) moveMsgsFrom(src *msgQueue) {
	if src.l.Len() == 0 {
		return
	}
	q.l.PushBackList(src.l)
	src.l.Init()
}

func (q *msgQueue) purge() { q.l.Init() }

// drain empties q and returns its contents in order. Used (through
// Partition.drainPending) by assign_unassigned, which inspects every
// message before deciding where it goes next, and by shrink to discard
// messages when there is no unassigned slot.
func (q *msgQueue) drain() []*Message {
	if q.l.Len() == 0 {
		return nil
	}
	out := make([]*Message, 0, q.l.Len())
	for e := q.l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Message))
	}
	q.purge()
	return out
}

// fifo is a tail-enqueue/head-dequeue-only queue backed by
// github.com/eapache/queue, grounded on sarama's own internal producer
// (other_examples/.../signalfx-sarama__async_producer.go), which uses
// the same library for its per-broker message buffer. It backs
// Partition.xmitMsgq and Partition.fetchq, neither of which spec.md ever
// asks to prepend to, and the Client's async leader-requery backlog.
type fifo struct {
	q *queue.Queue
}

func newFIFO() *fifo { return &fifo{q: queue.New()} }

func (f *fifo) Len() int { return f.q.Length() }

func (f *fifo) enqueue(v any) { f.q.Add(v) }

func (f *fifo) dequeue() (any, bool) {
	if f.q.Length() == 0 {
		return nil, false
	}
	return f.q.Remove(), true
}

func (f *fifo) purge() {
	for f.q.Length() > 0 {
		f.q.Remove()
	}
}

// drainMessages empties a message-typed fifo and returns its contents in
// order.
func (f *fifo) drainMessages() []*Message {
	if f.q.Length() == 0 {
		return nil
	}
	out := make([]*Message, 0, f.q.Length())
	for f.q.Length() > 0 {
		out = append(out, f.q.Remove().(*Message))
	}
	return out
}
