package matching

import "sync/atomic"

// Sequence hands out collision-free monotonically increasing IDs. Safe for
// concurrent use.
type Sequence struct {
	n atomic.Uint64
}

func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}
