package kcore

import (
	"sync"
	"time"

	"github.com/eapache/go-resiliency/breaker"
	"github.com/google/uuid"
)

// Client is the client registry from spec.md §4.D: a process-local table
// of live Topics, keyed by name, plus the Broker table the metadata
// applier consults to resolve leader ids. Grounded on
// rodaine-franz-go/pkg/kgo/metadata.go's own topics table
// (c.loadTopics()/c.cloneTopics()/c.topics.Store(...)).
type Client struct {
	cfg cfg

	mu     sync.Mutex
	topics map[string]*Topic

	brokersMu sync.RWMutex
	brokers   map[int32]*Broker

	requeryMu      sync.Mutex
	requeryPending map[string]bool
	requeryQueue   *fifo
	requeryBreaker *breaker.Breaker
}

// NewClient builds a Client. There is no implicit process-wide registry
// (spec.md §9): every Client owns its own topics table.
func NewClient(opts ...Opt) *Client {
	c := defaultCfg()
	for _, o := range opts {
		o.apply(&c)
	}
	return &Client{
		cfg:            c,
		topics:         make(map[string]*Topic),
		brokers:        make(map[int32]*Broker),
		requeryPending: make(map[string]bool),
		requeryQueue:   newFIFO(),
		requeryBreaker: breaker.New(3, 1, 10*time.Second),
	}
}

// CreateOrFind implements spec.md §4.D create_or_find: subsequent calls
// with the same name return the existing handle with an incremented
// refcount. Rejects invalid configuration synchronously.
func (cl *Client) CreateOrFind(name string, tc TopicConfig) (*Topic, error) {
	if err := validateTopicConfig(name, tc); err != nil {
		return nil, err
	}
	if tc.Partitioner == nil {
		tc.Partitioner = NewUniformRandomPartitioner()
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if t, ok := cl.topics[name]; ok {
		t.keep()
		return t, nil
	}

	t := newTopic(name, tc, cl.cfg.logger)
	cl.topics[name] = t
	t.keep() // the handle returned to the caller, beyond the registry's own reference
	cl.cfg.logger.Log(LogLevelInfo, "topic created", "tag", "TOPIC", "topic", name)
	return t, nil
}

// Find implements spec.md §4.D find.
func (cl *Client) Find(name string) (*Topic, bool) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	t, ok := cl.topics[name]
	if !ok {
		return nil, false
	}
	t.keep()
	return t, true
}

// FindByProtocolString implements spec.md §4.D find_by_protocol_string:
// compares the payload of a non-NUL-terminated wire string, with its
// length prefix already stripped (as returned by ReadProtocolString),
// against every tracked topic's name using
// length+bytes equality, never a NUL-terminated C-string comparison,
// since wire strings carry no such guarantee.
func (cl *Client) FindByProtocolString(wire []byte) (*Topic, bool) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	for _, t := range cl.topics {
		if t.name.EqualWireString(wire) {
			t.keep()
			return t, true
		}
	}
	return nil, false
}

// Close implements the teardown order from spec.md §9 (run after the
// metadata applier and broker I/O have already been stopped by the
// caller). Per spec.md §3's lifecycle text, a topic "unlinks from the
// client registry" as soon as its last reference drops; Close drops the
// registry's own reference for every topic, so the registry unlink must
// happen here too rather than waiting on the refcount to reach zero,
// which it may not do yet if the caller is still holding its own handle.
// The map is cleared up front, under cl.mu, so no Find/CreateOrFind can
// observe a topic that Close is in the middle of tearing down.
func (cl *Client) Close() {
	cl.mu.Lock()
	topics := make([]*Topic, 0, len(cl.topics))
	for _, t := range cl.topics {
		topics = append(topics, t)
	}
	cl.topics = make(map[string]*Topic)
	cl.mu.Unlock()

	for _, t := range topics {
		t.drop()
	}
}

// RegisterBroker adds b to the client's broker table, per spec.md §6's
// broker_find_by_nodeid(rk, id) collaborator.
func (cl *Client) RegisterBroker(b *Broker) {
	cl.brokersMu.Lock()
	cl.brokers[b.NodeID] = b
	cl.brokersMu.Unlock()
}

func (cl *Client) lookupRegisteredBroker(nodeID int32) (*Broker, bool) {
	cl.brokersMu.RLock()
	defer cl.brokersMu.RUnlock()
	b, ok := cl.brokers[nodeID]
	return b, ok
}

// FindBroker resolves a node id to a Broker via the configured finder
// hook (WithBrokerFinder), defaulting to the client's own registry.
func (cl *Client) FindBroker(nodeID int32) (*Broker, bool) {
	return cl.cfg.findBroker(cl, nodeID)
}

// requeryJob tags an asynchronous leader re-query with a correlation id
// (google/uuid, used corpus-wide for this purpose). The id is written to
// the log only when the breaker rejects the job (see drainRequeryQueue).
type requeryJob struct {
	topic string
	id    string
}

// TriggerLeaderQuery implements the "asynchronous metadata re-query"
// side effect from spec.md §4.E: fire-and-forget, and deduplicated per
// topic so a storm of lost-leader events collapses into one outstanding
// query. Queries run through a circuit breaker (eapache/go-resiliency,
// grounded the same way the msgq dependency is: sarama's own internal
// producer wraps broker-facing retry paths in a breaker). The query hook
// returns no error, so every run counts as a success and the breaker
// never opens on its own; it does not detect a failing metadata
// subsystem.
func (cl *Client) TriggerLeaderQuery(topic string) {
	cl.requeryMu.Lock()
	if cl.requeryPending[topic] {
		cl.requeryMu.Unlock()
		return
	}
	cl.requeryPending[topic] = true
	cl.requeryQueue.enqueue(&requeryJob{topic: topic, id: uuid.NewString()})
	cl.requeryMu.Unlock()

	go cl.drainRequeryQueue()
}

func (cl *Client) drainRequeryQueue() {
	for {
		cl.requeryMu.Lock()
		v, ok := cl.requeryQueue.dequeue()
		cl.requeryMu.Unlock()
		if !ok {
			return
		}
		job := v.(*requeryJob)

		err := cl.requeryBreaker.Run(func() error {
			cl.cfg.topicLeaderQuery(cl, job.topic)
			return nil
		})

		cl.requeryMu.Lock()
		delete(cl.requeryPending, job.topic)
		cl.requeryMu.Unlock()

		if err != nil {
			cl.cfg.logger.Log(LogLevelDebug, "leader re-query suppressed by open breaker", "tag", "METADATA", "topic", job.topic, "id", job.id, "err", err)
		}
	}
}
