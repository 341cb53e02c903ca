package kcore

import "testing"

// TestDelegateEstablishesAndMovesLeadership covers spec scenario 4:
// leader migration between two known brokers.
func TestDelegateEstablishesAndMovesLeadership(t *testing.T) {
	top := newTestTopic()
	defer top.Drop()

	g := top.Lock()
	p0 := top.DesiredAdd(g, 0)
	g.Unlock()
	defer p0.Drop()

	b7 := NewBroker(7, "host-a", 9092)
	b9 := NewBroker(9, "host-b", 9092)

	wg := top.Lock()
	top.Delegate(wg, p0, b7)
	wg.Unlock()

	if p0.Leader() != b7 {
		t.Fatal("p0.Leader() != b7 after first delegate")
	}
	if !b7.HasToppar(p0) {
		t.Fatal("b7 should have toppar p0")
	}
	if b7.ToppArCount() != 1 {
		t.Fatalf("b7.ToppArCount() = %d, want 1", b7.ToppArCount())
	}

	wg2 := top.Lock()
	top.Delegate(wg2, p0, b9)
	wg2.Unlock()

	if b7.HasToppar(p0) {
		t.Fatal("b7 should no longer have toppar p0")
	}
	if b7.ToppArCount() != 0 {
		t.Fatalf("b7.ToppArCount() = %d, want 0", b7.ToppArCount())
	}
	if !b9.HasToppar(p0) {
		t.Fatal("b9 should have toppar p0")
	}
	if b9.ToppArCount() != 1 {
		t.Fatalf("b9.ToppArCount() = %d, want 1", b9.ToppArCount())
	}
	if p0.Leader() != b9 {
		t.Fatal("p0.Leader() != b9 after second delegate")
	}
}

// TestDelegateNilThenBrokerEquivalentToDirect covers the universal
// property: delegate(p, null) then delegate(p, b) == delegate(p, b).
func TestDelegateNilThenBrokerEquivalentToDirect(t *testing.T) {
	top1 := newTestTopic()
	defer top1.Drop()
	top2 := newTestTopic()
	defer top2.Drop()

	g1 := top1.Lock()
	p1 := top1.DesiredAdd(g1, 0)
	g1.Unlock()
	defer p1.Drop()

	g2 := top2.Lock()
	p2 := top2.DesiredAdd(g2, 0)
	g2.Unlock()
	defer p2.Drop()

	b := NewBroker(1, "h", 9092)

	wg1 := top1.Lock()
	top1.Delegate(wg1, p1, nil)
	top1.Delegate(wg1, p1, b)
	wg1.Unlock()

	wg2 := top2.Lock()
	top2.Delegate(wg2, p2, b)
	wg2.Unlock()

	if p1.Leader() != p2.Leader() {
		t.Fatal("delegate(nil) then delegate(b) diverged from direct delegate(b)")
	}
	if b.ToppArCount() != 2 {
		t.Fatalf("b.ToppArCount() = %d, want 2 (one per partition)", b.ToppArCount())
	}

	// p1 and p2 both carry partition id 0, from two different topics.
	// Per spec §8 invariant 4, a broker's toppar membership must
	// distinguish them rather than collapse onto a shared id key.
	if !b.HasToppar(p1) {
		t.Fatal("b should have toppar p1 (topic1's partition 0)")
	}
	if !b.HasToppar(p2) {
		t.Fatal("b should have toppar p2 (topic2's partition 0)")
	}
}

func TestDelegateSameLeaderIsNoop(t *testing.T) {
	top := newTestTopic()
	defer top.Drop()

	g := top.Lock()
	p := top.DesiredAdd(g, 0)
	g.Unlock()
	defer p.Drop()

	b := NewBroker(1, "h", 9092)

	wg := top.Lock()
	top.Delegate(wg, p, b)
	wg.Unlock()

	before := b.ToppArCount()

	wg2 := top.Lock()
	top.Delegate(wg2, p, b)
	wg2.Unlock()

	if b.ToppArCount() != before {
		t.Fatalf("ToppArCount changed on no-op delegate: %d -> %d", before, b.ToppArCount())
	}
}
