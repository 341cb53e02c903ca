package kcore

// TopicUpdate implements spec.md §4.E topic_update: an individual
// per-partition leader assertion from the metadata subsystem. Unknown
// topics are logged and ignored rather than treated as an error, since
// a stale or out-of-order metadata fact for a topic nobody asked for is
// expected traffic, not a caller mistake.
//
// errCode supplements the distilled spec (SPEC_FULL.md "Supplemented
// features"): zero means no error; any other value is the partition's
// Kafka error code off the wire, classified with kerr and logged at warn
// level on the TOPICUPD channel. The error code does not otherwise change
// how the leader update is applied, and nothing is returned to the caller.
func (cl *Client) TopicUpdate(name string, partition int32, leaderID int32, errCode int16) {
	t, ok := cl.Find(name)
	if !ok {
		cl.cfg.logger.Log(LogLevelDebug, "topic_update for unknown topic, ignored", "tag", "TOPICUPD", "topic", name)
		return
	}
	defer t.Drop()

	if ec := classifyErrorCode(errCode); ec != nil {
		cl.cfg.logger.Log(LogLevelWarn, "topic_update carries partition error", "tag", "TOPICUPD", "topic", name, "partition", partition, "err", ec)
	}

	g := t.Lock()
	p, ok := t.LookupPartition(g, partition, false)
	if !ok {
		g.Unlock()
		cl.cfg.logger.Log(LogLevelDebug, "topic_update for unknown partition, ignored", "tag", "TOPICUPD", "topic", name, "partition", partition)
		return
	}
	defer p.Drop()

	broker, found := cl.FindBroker(leaderID)
	if leaderID == UA || !found {
		t.Delegate(g, p, nil)
		g.Unlock()
		cl.TriggerLeaderQuery(name)
		return
	}

	if p.Leader() == broker {
		g.Unlock()
		return
	}

	t.Delegate(g, p, broker)
	g.Unlock()
}

// PartitionCountUpdate implements spec.md §4.E partition_count_update:
// asserts the topic's total partition count, reconciling the
// partitions[] array, the desired list and unassigned's pending queue
// exactly as spec.md describes.
func (cl *Client) PartitionCountUpdate(name string, newN int32) (changed bool, err error) {
	t, ok := cl.Find(name)
	if !ok {
		return false, ErrUnknownTopic
	}
	defer t.Drop()

	g := t.Lock()
	defer g.Unlock()

	oldN := t.n
	if newN == oldN {
		return false, nil
	}

	next := make([]*Partition, newN)

	var i int32
	for ; i < oldN && i < newN; i++ {
		next[i] = t.partitions[i]
	}

	for ; i < newN; i++ {
		if p, ok := t.DesiredLookup(g, i); ok {
			p.clearFlag(FlagUnknown)
			t.removeDesiredSlot(p)
			next[i] = p // the desired list's own reference transfers to the slot
			p.drop()    // release DesiredLookup's extra kept reference; the list's former reference now backs next[i]
		} else {
			next[i] = newPartition(t, i, 0)
		}
	}

	for i = newN; i < oldN; i++ {
		obsolete := t.partitions[i]
		if t.unassigned != nil {
			moveAllMsgs(t.unassigned, obsolete) // spec.md §4.B move_msgs_from, used during shrink
		} else {
			obsolete.drainPending()
		}
		if obsolete.Flags().Has(FlagDesired) {
			obsolete.setFlag(FlagUnknown)
			t.desired = append(t.desired, obsolete)
		} else {
			obsolete.drop()
		}
	}

	t.partitions = next
	t.n = newN

	cl.cfg.logger.Log(LogLevelInfo, "partition count updated", "tag", "PARTCNT", "topic", name, "old_n", oldN, "new_n", newN)
	return true, nil
}
