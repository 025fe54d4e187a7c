package service

import "sync/atomic"

// Sequence hands out monotonically increasing document numbers. Counters
// are in-process; persistence across restarts is out of scope for now.
type Sequence struct {
	counter atomic.Int64
}

// NewSequence creates a sequence whose first Next call returns start+1.
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.counter.Store(start)
	return s
}

// Next returns the next number in the sequence.
func (s *Sequence) Next() int {
	return int(s.counter.Add(1))
}
