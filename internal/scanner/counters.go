package scanner

import "sync/atomic"

const counterStripes = 16

// paddedInt64 occupies a full cache line so neighbouring stripes never
// false-share.
type paddedInt64 struct {
	v atomic.Int64
	_ [56]byte
}

// counter is a striped accumulator: each worker adds to its own stripe, so
// hot-path increments never serialize on a single contended cache line.
// Addition is associative and commutative, so the reduced total is exact
// regardless of interleaving.
type counter struct {
	stripes [counterStripes]paddedInt64
}

// add increments the stripe owned by the given worker.
func (c *counter) add(worker int, delta int64) {
	c.stripes[worker%counterStripes].v.Add(delta)
}

// total reduces all stripes. Mid-scan reads may trail in-flight adds, which
// is acceptable for advisory progress; after workers drain it is exact.
func (c *counter) total() int64 {
	var sum int64
	for i := range c.stripes {
		sum += c.stripes[i].v.Load()
	}
	return sum
}
