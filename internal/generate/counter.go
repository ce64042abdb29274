package generate

import "sync/atomic"

// Counter hands out strictly increasing identifiers. Increments are
// atomic so uniqueness holds even if synthesis is ever parallelized
// across nodes.
type Counter struct {
	n atomic.Int64
}

// Next returns the next value, starting at 0.
func (c *Counter) Next() int64 {
	return c.n.Add(1) - 1
}

// Value returns the number of identifiers handed out so far.
func (c *Counter) Value() int64 {
	return c.n.Load()
}
