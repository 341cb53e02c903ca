package kcore

import (
	"fmt"
	"time"
)

// TopicConfig is the per-topic configuration snapshot from spec.md §3/§4.D
// (message timeout, request timeout, partitioner). It is validated once,
// synchronously, when a topic is created.
type TopicConfig struct {
	// MessageTimeout corresponds to spec.md's message_timeout_ms.
	MessageTimeout time.Duration
	// RequestTimeout corresponds to spec.md's request_timeout_ms.
	RequestTimeout time.Duration
	// Partitioner chooses destination partitions for enqueued messages.
	// If nil, CreateOrFind installs a uniform random partitioner
	// (spec.md §4.D).
	Partitioner Partitioner
}

func validateTopicConfig(name string, tc TopicConfig) error {
	if name == "" {
		return fmt.Errorf("%w: topic name must not be empty", ErrInvalidConfig)
	}
	if tc.MessageTimeout <= 0 {
		return fmt.Errorf("%w: message_timeout_ms must be > 0", ErrInvalidConfig)
	}
	if tc.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request_timeout_ms must be > 0", ErrInvalidConfig)
	}
	return nil
}

// cfg is the client-wide configuration, built from functional options in
// the teacher's own style (pkg/kgo's cfg struct populated by Opt
// closures, referenced throughout pkg/kgo/txn.go as cl.cfg.*).
type cfg struct {
	logger Logger

	// metadataMinAge/metadataMaxAge mirror pkg/kgo/metadata.go's
	// c.cfg.client.metadataMinAge/metadataMaxAge. They are stored only;
	// nothing in this package reads them, and re-query timing does not
	// depend on them.
	metadataMinAge time.Duration
	metadataMaxAge time.Duration

	// topicLeaderQuery is the asynchronous, fire-and-forget collaborator
	// hook from spec.md §6 (topic_leader_query(rk, topic)).
	topicLeaderQuery func(cl *Client, topic string)

	// findBroker is the broker_find_by_nodeid(rk, id) collaborator hook
	// from spec.md §6. The default implementation consults the client's
	// own broker registry (RegisterBroker/FindBroker); callers with an
	// external broker subsystem can override it.
	findBroker func(cl *Client, nodeID int32) (*Broker, bool)
}

func defaultCfg() cfg {
	return cfg{
		logger:           nopLogger{},
		metadataMinAge:   250 * time.Millisecond,
		metadataMaxAge:   5 * time.Minute,
		topicLeaderQuery: func(*Client, string) {},
		findBroker:       func(cl *Client, nodeID int32) (*Broker, bool) { return cl.lookupRegisteredBroker(nodeID) },
	}
}

// Opt configures a Client, following the teacher's functional-options
// convention (NewClient(opts ...Opt)).
type Opt interface {
	apply(*cfg)
}

type optFunc func(*cfg)

func (f optFunc) apply(c *cfg) { f(c) }

// WithLogger installs a Logger. The default is a no-op logger.
func WithLogger(l Logger) Opt {
	return optFunc(func(c *cfg) { c.logger = l })
}

// WithMetadataMinAge stores the metadata minimum age. The value is kept
// in the client config only; nothing in this package reads it.
func WithMetadataMinAge(d time.Duration) Opt {
	return optFunc(func(c *cfg) { c.metadataMinAge = d })
}

// WithMetadataMaxAge stores the metadata maximum age. The value is kept
// in the client config only; nothing in this package reads it.
func WithMetadataMaxAge(d time.Duration) Opt {
	return optFunc(func(c *cfg) { c.metadataMaxAge = d })
}

// WithTopicLeaderQueryFunc installs the collaborator hook invoked
// whenever the metadata applier needs an asynchronous leader re-query
// (spec.md §4.E).
func WithTopicLeaderQueryFunc(fn func(cl *Client, topic string)) Opt {
	return optFunc(func(c *cfg) { c.topicLeaderQuery = fn })
}

// WithBrokerFinder overrides how the metadata applier resolves a leader
// id to a Broker. The default consults the client's own broker registry.
func WithBrokerFinder(fn func(cl *Client, nodeID int32) (*Broker, bool)) Opt {
	return optFunc(func(c *cfg) { c.findBroker = fn })
}
