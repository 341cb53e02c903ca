package kcore

import (
	"sync"
	"sync/atomic"
)

// Broker is the collaborator surface spec.md §6 names
// (broker_find_by_nodeid, toppars_wlock/toppars_unlock). Its TCP session
// and request/response plumbing belong to the broker subsystem, out of
// scope here (spec.md §1); this core only owns the toppars membership
// used for delegation (spec.md §4.F) and participates in the
// Partition<->Broker keep/drop pair spec.md §9 describes — field shape
// grounded on dcrodman-franz-go/pkg/kgo/broker.go's broker struct
// (nodeID/host/port).
type Broker struct {
	refCount

	NodeID int32
	Host   string
	Port   int32

	topparsMu sync.RWMutex
	// toppars is keyed by *Partition rather than partition id: a broker
	// leads partitions from many topics at once, and partition ids are
	// only unique within their own topic, so two different topics' p0
	// would otherwise collide on the same map key.
	toppars   map[*Partition]struct{}
	topparCnt int32
}

// NewBroker constructs a Broker collaborator handle. The returned
// Broker starts with one reference, owned by whatever registers it
// (typically Client.RegisterBroker).
func NewBroker(nodeID int32, host string, port int32) *Broker {
	b := &Broker{NodeID: nodeID, Host: host, Port: port, toppars: make(map[*Partition]struct{})}
	b.refCount = newRefCount(func() {})
	return b
}

// Keep adds a reference to the broker.
func (b *Broker) Keep() { b.keep() }

// Drop releases the caller's reference to the broker.
func (b *Broker) Drop() { b.drop() }

// ToppartsWLock acquires the broker's toppars write lock, per spec.md
// §6's toppars_wlock() collaborator interface.
func (b *Broker) ToppartsWLock() { b.topparsMu.Lock() }

// ToppartsUnlock releases the toppars write lock.
func (b *Broker) ToppartsUnlock() { b.topparsMu.Unlock() }

// ToppArCount returns the broker's delegated-partition count. Invariant
// (spec.md §8): always equals len(toppars), checked outside of a
// toppars_wlock-held critical section.
func (b *Broker) ToppArCount() int32 { return atomic.LoadInt32(&b.topparCnt) }

// HasToppar reports whether p is currently linked into b's toppars.
func (b *Broker) HasToppar(p *Partition) bool {
	b.topparsMu.RLock()
	defer b.topparsMu.RUnlock()
	_, ok := b.toppars[p]
	return ok
}

func brokerNodeID(b *Broker) int32 {
	if b == nil {
		return -1
	}
	return b.NodeID
}

// Delegate implements spec.md §4.F delegate: transfers p between
// brokers. Caller must already hold the Topic's write lock; the
// partition's own lock is not required, since the Topic write lock
// already excludes concurrent mutation of the leader field (spec.md
// §4.F's closing note). Steps follow spec.md §4.F exactly.
func (t *Topic) Delegate(_ *TopicWriteGuard, p *Partition, newLeader *Broker) {
	old := p.leader.Load()
	if old == newLeader {
		return
	}

	p.keep() // temporary reference surviving the transitions below

	if old != nil {
		old.ToppartsWLock()
		delete(old.toppars, p)
		atomic.AddInt32(&old.topparCnt, -1)
		old.ToppartsUnlock()

		p.leader.Store(nil)
		p.drop()   // the reference old was holding on p
		old.drop() // the reference p was holding on old
	}

	if newLeader != nil {
		newLeader.ToppartsWLock()
		p.keep() // reference held on behalf of newLeader
		newLeader.toppars[p] = struct{}{}
		atomic.AddInt32(&newLeader.topparCnt, 1)
		newLeader.ToppartsUnlock()

		newLeader.keep() // reference held on behalf of p
		p.leader.Store(newLeader)
	}

	t.logger.Log(LogLevelDebug, "partition delegated", "tag", "BRKDELGT", "topic", t.Name(), "partition", p.id, "leader", brokerNodeID(newLeader))

	p.drop() // the temporary reference from above
}
