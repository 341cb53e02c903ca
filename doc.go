// Package kcore implements the topic/partition metadata and routing core
// of a Kafka producer/consumer client: the in-memory model that maps a
// logical topic onto a set of partitions, each with a leader broker
// assignment, pending message queues, and a desired/known lifecycle
// state.
//
// The package mediates between three collaborators it does not itself
// implement: an application that creates topics and enqueues/consumes
// messages, a metadata subsystem that reports partition counts and leader
// assignments, and a broker subsystem that owns TCP sessions and drains
// partition queues. Wire-level protocol encoding, broker connection
// lifecycle, and message payload construction are all out of scope; see
// Broker and Partitioner for the seams where those collaborators plug in.
package kcore
