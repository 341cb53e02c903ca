package kcore

import "github.com/twmb/franz-go/pkg/kerr"

// classifyErrorCode turns a raw Kafka protocol error code carried on a
// topic_update fact (the per-partition error supplement from
// SPEC_FULL.md) into an error value, using kerr's static table the same
// way pkg/kgo itself does throughout metadata.go. Code zero ("no
// error") returns nil.
func classifyErrorCode(code int16) error {
	if code == 0 {
		return nil
	}
	return kerr.ErrorForCode(code)
}
