package kcore

// DesiredAdd implements spec.md §4.C desired_add: idempotent.
//
//  1. If the partition already exists in partitions[], sets its DESIRED
//     flag and returns it.
//  2. Else if it already exists on desired, returns it.
//  3. Else creates a new Partition with flags {DESIRED, UNKNOWN}, links
//     it into desired, and returns it.
//
// Caller must hold the write lock. The returned reference is kept.
func (t *Topic) DesiredAdd(g *TopicWriteGuard, id int32) *Partition {
	if id >= 0 && id < t.n {
		p := t.partitions[id]
		p.setFlag(FlagDesired)
		p.keep()
		t.logger.Log(LogLevelDebug, "partition already live, marked desired", "tag", "DESP", "topic", t.Name(), "partition", id)
		return p
	}

	if p, ok := t.DesiredLookup(g, id); ok {
		return p
	}

	p := newPartition(t, id, FlagDesired|FlagUnknown)
	t.desired = append(t.desired, p)
	p.keep() // the handle returned to the caller, beyond the desired list's own reference
	t.logger.Log(LogLevelDebug, "new desired partition", "tag", "DESP", "topic", t.Name(), "partition", id)
	return p
}

// DesiredRemove implements spec.md §4.C desired_remove: clears DESIRED.
// If p is also UNKNOWN, unlinks it from the desired list (dropping one
// reference, potentially destroying it). Idempotent on partitions not
// marked desired. Caller must hold the write lock.
func (t *Topic) DesiredRemove(g *TopicWriteGuard, p *Partition) {
	p.clearFlag(FlagDesired)
	if !p.Flags().Has(FlagUnknown) {
		return
	}
	if t.removeDesiredSlot(p) {
		p.drop()
	}
}

// removeDesiredSlot removes p from the desired list without touching its
// refcount, reporting whether it was found. Used both by DesiredRemove
// (which then drops the list's reference) and by the grow path in
// partition_count_update (which transfers the list's reference directly
// to the partitions[] slot instead of dropping it).
func (t *Topic) removeDesiredSlot(p *Partition) bool {
	for i, d := range t.desired {
		if d == p {
			t.desired = append(t.desired[:i], t.desired[i+1:]...)
			return true
		}
	}
	return false
}

// UAMoveMsgs implements spec.md §4.C ua_move_msgs: drains mq into the
// unassigned partition's pending queue, returning false if the Topic has
// no unassigned slot.
func (t *Topic) UAMoveMsgs(_ topicLock, mq *msgQueue) bool {
	if t.unassigned == nil {
		return false
	}
	t.unassigned.mu.Lock()
	t.unassigned.msgq.moveMsgsFrom(mq)
	t.unassigned.mu.Unlock()
	return true
}

// RequireUAMoveMsgs wraps UAMoveMsgs, returning ErrNoUnassignedPartition
// instead of false, for callers that prefer spec.md §6's sentinel-error
// reporting style over a bare boolean.
func (t *Topic) RequireUAMoveMsgs(g topicLock, mq *msgQueue) error {
	if !t.UAMoveMsgs(g, mq) {
		return ErrNoUnassignedPartition
	}
	return nil
}

// RemoveAllPartitions implements spec.md §4.C remove_all_partitions:
// purges all messages from every partition, including unassigned, nulls
// out the partition array and the UA pointer, and drops the Topic's
// references to them. Used on teardown. Caller must hold the write lock.
func (t *Topic) RemoveAllPartitions(_ *TopicWriteGuard) { t.removeAllPartitionsLocked() }

func (t *Topic) removeAllPartitionsLocked() {
	for _, p := range t.partitions {
		p.PurgeAll()
		p.drop()
	}
	t.partitions = nil
	t.n = 0

	for _, p := range t.desired {
		p.PurgeAll()
		p.drop()
	}
	t.desired = nil

	if t.unassigned != nil {
		t.unassigned.PurgeAll()
		t.unassigned.drop()
		t.unassigned = nil
	}
}

// AssignUnassigned implements spec.md §4.C assign_unassigned: reruns the
// partitioner over every message currently in unassigned.msgq. Messages
// the partitioner reports unavailable for (-1) are prepended back onto
// unassigned.msgq in their original relative order — i.e. retried first
// next time (spec.md §5, §8 scenario 6). Caller must hold the write
// lock, since routing touches other partitions' queues.
func (t *Topic) AssignUnassigned(_ *TopicWriteGuard) {
	if t.unassigned == nil {
		return
	}

	pending := t.unassigned.drainPending()
	if len(pending) == 0 {
		return
	}

	failed := newMsgQueue()
	var routed int
	for _, m := range pending {
		id := t.cfg.Partitioner.Partition(t.Name(), m.Key, m, t.n)
		if id < 0 || id >= t.n {
			failed.enqueueTail(m)
			continue
		}
		t.partitions[id].EnqueueTail(m)
		routed++
	}

	failedCount := failed.Len()
	if failedCount > 0 {
		t.unassigned.SpliceHead(failed)
	}

	// Unlike the source this was distilled from, which logs the
	// (by-then-zero) count of the queue it just moved from rather than
	// the actual failure count (spec.md §9, a noted cosmetic bug), this
	// logs the real failedCount.
	t.logger.Log(LogLevelDebug, "reassigned unassigned messages", "tag", "ASSIGNUA", "topic", t.Name(), "routed", routed, "failed", failedCount)
}
