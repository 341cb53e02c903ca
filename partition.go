package kcore

import (
	"sync"
	"sync/atomic"
)

// UA is the sentinel partition id for the unassigned holding slot
// (spec.md §3/§6), a reserved negative value distinct from any valid
// partition id.
const UA int32 = -1

// PartitionFlags is the bitfield over {DESIRED, UNKNOWN} from spec.md §3.
// Other bits are reserved.
type PartitionFlags uint8

const (
	// FlagDesired marks a partition the application has asked for.
	FlagDesired PartitionFlags = 1 << iota
	// FlagUnknown marks a partition currently on the Topic's desired
	// list rather than installed in partitions[]. Invariant: a
	// Partition is linked in desired iff both FlagDesired and
	// FlagUnknown are set.
	FlagUnknown
)

// Has reports whether flag is set.
func (f PartitionFlags) Has(flag PartitionFlags) bool { return f&flag != 0 }

// FetchState is the consumer-side fetch state machine variable from
// spec.md §3, starting at FetchStateNone. The state machine's internals
// beyond the initial value are owned by the broker subsystem (out of
// scope per spec.md §1); this core only stores and exposes the variable.
type FetchState int32

const (
	FetchStateNone FetchState = iota
	FetchStateActive
	FetchStateStopped
)

// Partition is the Toppar object from spec.md §3/§4.B: per-(topic,
// partition) state holding the pending queue, the in-flight transmit
// queue, the consumer delivery queue, flags, an optional leader link,
// and a lock — plus the refcounted handle shared with Topic.
type Partition struct {
	refCount

	// parent is a back-pointer for name/config/logger access, not a
	// counted reference: a Topic already holds a strong reference to
	// every Partition it owns (partitions[]/desired/unassigned), so
	// having the Partition hold one back would form the same kind of
	// cycle spec.md §4.A calls out for Partition<->Broker, except here
	// there is no per-pair teardown protocol (like delegate) to break
	// it. Topic's own teardown (removeAllPartitionsLocked, run from
	// Close()/destroy) is what actually keeps Partitions from outliving
	// their Topic.
	parent *Topic
	id     int32

	mu    sync.Mutex
	flags PartitionFlags

	msgq     *msgQueue // pending, awaiting transmit
	xmitMsgq *fifo     // handed to the broker for transmit
	fetchq   *fifo     // delivered to the application (consumer side)

	fetchState FetchState

	// leader is mutated only under the owning Topic's write lock
	// (spec.md §5); atomic.Pointer lets broker I/O threads read it
	// without taking any lock, at the cost of needing to re-read between
	// queue operations, exactly as spec.md §5 requires.
	leader atomic.Pointer[Broker]
}

func newPartition(parent *Topic, id int32, flags PartitionFlags) *Partition {
	p := &Partition{
		parent:     parent,
		id:         id,
		flags:      flags,
		msgq:       newMsgQueue(),
		xmitMsgq:   newFIFO(),
		fetchq:     newFIFO(),
		fetchState: FetchStateNone,
	}
	p.refCount = newRefCount(func() {})
	return p
}

// ID returns the partition id, or UA for the unassigned slot.
func (p *Partition) ID() int32 { return p.id }

// Keep adds a reference to the partition.
func (p *Partition) Keep() { p.keep() }

// Drop releases the caller's reference to the partition.
func (p *Partition) Drop() { p.drop() }

// Flags returns a snapshot of the partition's flags.
func (p *Partition) Flags() PartitionFlags {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flags
}

func (p *Partition) setFlag(f PartitionFlags) {
	p.mu.Lock()
	p.flags |= f
	p.mu.Unlock()
}

func (p *Partition) clearFlag(f PartitionFlags) {
	p.mu.Lock()
	p.flags &^= f
	p.mu.Unlock()
}

// Leader returns the partition's current leader broker, or nil. Safe to
// call without any lock; re-read between operations per spec.md §5.
func (p *Partition) Leader() *Broker { return p.leader.Load() }

// FetchState returns the consumer-side fetch state machine variable.
func (p *Partition) FetchState() FetchState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetchState
}

// SetFetchState sets the consumer-side fetch state machine variable.
func (p *Partition) SetFetchState(s FetchState) {
	p.mu.Lock()
	p.fetchState = s
	p.mu.Unlock()
}

// EnqueueTail appends m to the pending queue. Never fails, never blocks
// beyond the partition mutex (spec.md §4.B).
func (p *Partition) EnqueueTail(m *Message) {
	p.mu.Lock()
	p.msgq.enqueueTail(m)
	p.mu.Unlock()
}

// EnqueueHead prepends m to the pending queue.
func (p *Partition) EnqueueHead(m *Message) {
	p.mu.Lock()
	p.msgq.enqueueHead(m)
	p.mu.Unlock()
}

// Dequeue pops the head of the pending queue.
func (p *Partition) Dequeue() (*Message, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.msgq.dequeue()
}

// SpliceHead prepends an external queue onto the head of p's pending
// queue, emptying other (spec.md §4.B). other must not be backed by any
// partition currently locked by this goroutine.
func (p *Partition) SpliceHead(other *msgQueue) {
	p.mu.Lock()
	p.msgq.spliceHead(other)
	p.mu.Unlock()
}

// MsgCount returns the total number of messages currently held across
// all three of the partition's queues — the quantity spec.md §8's
// message-conservation property is stated over.
func (p *Partition) MsgCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.msgq.Len() + p.xmitMsgq.Len() + p.fetchq.Len()
}

// PendingLen returns the pending queue's length.
func (p *Partition) PendingLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.msgq.Len()
}

// Xmit moves up to n messages from the pending queue to the in-flight
// transmit queue, returning how many were moved. This is the operation a
// broker I/O thread performs to pull work (spec.md §1/§6).
func (p *Partition) Xmit(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	moved := 0
	for moved < n {
		m, ok := p.msgq.dequeue()
		if !ok {
			break
		}
		p.xmitMsgq.enqueue(m)
		moved++
	}
	return moved
}

// XmitDequeue pops one message off the in-flight transmit queue (the
// broker subsystem does this once a produce request actually goes out).
func (p *Partition) XmitDequeue() (*Message, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.xmitMsgq.dequeue()
	if !ok {
		return nil, false
	}
	return v.(*Message), true
}

// Deliver pushes a fetched record into the consumer delivery queue.
func (p *Partition) Deliver(m *Message) {
	p.mu.Lock()
	p.fetchq.enqueue(m)
	p.mu.Unlock()
}

// Fetch pops one delivered record off the consumer delivery queue.
func (p *Partition) Fetch() (*Message, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.fetchq.dequeue()
	if !ok {
		return nil, false
	}
	return v.(*Message), true
}

// PurgeAll empties all three queues, for spec.md §4.C's
// remove_all_partitions.
func (p *Partition) PurgeAll() {
	p.mu.Lock()
	p.msgq.purge()
	p.xmitMsgq.purge()
	p.fetchq.purge()
	p.mu.Unlock()
}

// drainPending empties the pending queue and returns its contents. It is
// used by assign_unassigned, which inspects every message before
// re-routing it, and by shrink (partition_count_update) to discard an
// obsolete partition's messages when the topic has no unassigned slot.
func (p *Partition) drainPending() []*Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.msgq.drain()
}

// moveAllMsgs concatenates src's pending queue onto the tail of dst's,
// draining src (spec.md §4.B move_msgs_from). Both partitions' locks are
// required; they are always acquired in ascending-id order here so the
// lock order is encoded once in this function rather than left to call
// sites, per spec.md §9's guidance. UA's id (-1) sorts first, which is
// consistent and deadlock-free since ids form a stable total order.
func moveAllMsgs(dst, src *Partition) {
	first, second := dst, src
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	if second != first {
		second.mu.Lock()
	}
	dst.msgq.moveMsgsFrom(src.msgq)
	if second != first {
		second.mu.Unlock()
	}
	first.mu.Unlock()
}
