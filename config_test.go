package kcore

import "testing"

func TestValidateTopicConfig(t *testing.T) {
	cases := []struct {
		name    string
		tc      TopicConfig
		wantErr bool
	}{
		{"empty name", TopicConfig{MessageTimeout: 1, RequestTimeout: 1}, true},
		{"zero message timeout", TopicConfig{MessageTimeout: 0, RequestTimeout: 1}, true},
		{"zero request timeout", TopicConfig{MessageTimeout: 1, RequestTimeout: 0}, true},
		{"valid", TopicConfig{MessageTimeout: 1, RequestTimeout: 1}, false},
	}
	for _, c := range cases {
		name := c.name
		if name != "empty name" {
			name = "t"
		} else {
			name = ""
		}
		err := validateTopicConfig(name, c.tc)
		if (err != nil) != c.wantErr {
			t.Errorf("%s: err = %v, wantErr = %v", c.name, err, c.wantErr)
		}
	}
}

func TestWithLoggerOption(t *testing.T) {
	l := NewBasicLogger(nil, LogLevelDebug)
	cl := NewClient(WithLogger(l))
	defer cl.Close()

	if cl.cfg.logger != Logger(l) {
		t.Fatal("WithLogger did not install the provided logger")
	}
}
