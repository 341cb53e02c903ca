package kcore

import "sync"

// TopicWriteGuard is proof that the holder's goroutine holds a Topic's
// write lock. Operations spec.md marks "caller must hold write lock"
// (desired_add, desired_remove, remove_all_partitions, assign_unassigned,
// delegate) take one as a parameter instead of relying on call-site
// discipline; the partition_count_update resize takes the write lock
// itself inside Client.PartitionCountUpdate. This encodes the lock-order
// contract from spec.md §9 in the type system.
type TopicWriteGuard struct{ t *Topic }

// TopicReadGuard is proof of at least a read lock, accepted by
// operations spec.md allows under either lock (lookup_partition,
// desired_lookup).
type TopicReadGuard struct{ t *Topic }

// topicLock is satisfied by both guard kinds.
type topicLock interface{ topic() *Topic }

func (g *TopicWriteGuard) topic() *Topic { return g.t }
func (g *TopicReadGuard) topic() *Topic  { return g.t }

// Lock acquires the Topic's write lock and returns proof of that to pass
// to write-only operations.
func (t *Topic) Lock() *TopicWriteGuard {
	t.mu.Lock()
	return &TopicWriteGuard{t: t}
}

// Unlock releases the write lock.
func (g *TopicWriteGuard) Unlock() { g.t.mu.Unlock() }

// RLock acquires the Topic's read lock.
func (t *Topic) RLock() *TopicReadGuard {
	t.mu.RLock()
	return &TopicReadGuard{t: t}
}

// RUnlock releases the read lock.
func (g *TopicReadGuard) RUnlock() { g.t.mu.RUnlock() }

// Topic is the Topic object from spec.md §3/§4.C: the partition array,
// the desired list, the unassigned slot, config, and a multi-reader/
// single-writer lock, plus the refcounted handle.
type Topic struct {
	refCount

	name Name
	cfg  TopicConfig

	logger Logger

	mu sync.RWMutex // multi-reader/single-writer, per spec.md §3

	n          int32
	partitions []*Partition
	desired    []*Partition
	unassigned *Partition
}

func newTopic(name string, tc TopicConfig, logger Logger) *Topic {
	t := &Topic{
		name:   newName(name),
		cfg:    tc,
		logger: logger,
	}
	t.refCount = newRefCount(t.destroy)
	t.unassigned = newPartition(t, UA, 0)
	return t
}

// Name returns the topic's logical name.
func (t *Topic) Name() string { return t.name.String() }

// Config returns the topic's configuration snapshot.
func (t *Topic) Config() TopicConfig { return t.cfg }

// destroy runs once the last reference to the Topic itself drops
// (registry entry already gone; see Client.Close). It only needs to
// release the Topic's own references to its partitions — the registry
// unlink happens explicitly in Close, not here, since relying on this
// refcount callback to reach zero to do it would require every
// partition to also hold a reference back to the Topic, which this
// design deliberately avoids (see Partition.parent).
func (t *Topic) destroy() {
	g := t.Lock()
	t.removeAllPartitionsLocked()
	g.Unlock()

	t.logger.Log(LogLevelDebug, "topic destroyed", "tag", "TOPIC", "topic", t.name.String())
}

// N returns the current partition count. Caller must hold a lock.
func (t *Topic) N(_ topicLock) int32 { return t.n }

// LookupPartition implements spec.md §4.C lookup_partition: if id is in
// [0, N), returns partitions[id]; else, if uaOnMiss, returns the
// unassigned slot; else returns false. The returned reference is kept;
// callers must Drop it. Caller must hold the Topic's read or write lock.
func (t *Topic) LookupPartition(_ topicLock, id int32, uaOnMiss bool) (*Partition, bool) {
	if id >= 0 && id < t.n {
		p := t.partitions[id]
		p.keep()
		return p, true
	}
	if uaOnMiss && t.unassigned != nil {
		t.unassigned.keep()
		return t.unassigned, true
	}
	return nil, false
}

// DesiredLookup implements spec.md §4.C desired_lookup: returns the
// Partition on the desired list with id, if any. The returned reference
// is kept. Caller must hold a lock.
func (t *Topic) DesiredLookup(_ topicLock, id int32) (*Partition, bool) {
	for _, p := range t.desired {
		if p.id == id {
			p.keep()
			return p, true
		}
	}
	return nil, false
}

// Drop releases the caller's reference to the topic.
func (t *Topic) Drop() { t.drop() }

// Keep adds a reference to the topic.
func (t *Topic) Keep() { t.keep() }
