package core

import "encoding/json"

// Status is the admin view of one search engine core.
// Values are kept as raw JSON since the engine mixes numbers and strings.
type Status struct {
	name      string
	startTime json.RawMessage
	index     map[string]json.RawMessage
}

// NewStatus creates a core status.
func NewStatus(name string, startTime json.RawMessage, index map[string]json.RawMessage) Status {
	if index == nil {
		index = map[string]json.RawMessage{}
	}
	return Status{name: name, startTime: startTime, index: index}
}

// Name returns the core name.
func (s Status) Name() string { return s.name }

// StartTime returns the raw start time, nil when absent.
func (s Status) StartTime() json.RawMessage { return s.startTime }

// IndexValue returns a raw index statistic and whether it was reported.
func (s Status) IndexValue(key string) (json.RawMessage, bool) {
	v, ok := s.index[key]
	return v, ok
}
