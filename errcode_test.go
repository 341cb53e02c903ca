package kcore

import "testing"

func TestClassifyErrorCodeZeroIsNil(t *testing.T) {
	if err := classifyErrorCode(0); err != nil {
		t.Fatalf("classifyErrorCode(0) = %v, want nil", err)
	}
}

func TestClassifyErrorCodeNonZero(t *testing.T) {
	// 3 is UnknownTopicOrPartition in the Kafka protocol error table.
	if err := classifyErrorCode(3); err == nil {
		t.Fatal("expected a non-nil classified error for code 3")
	}
}
