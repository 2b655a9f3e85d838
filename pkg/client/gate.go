package client

import "context"

// Gate is a FIFO-blocking in-flight concurrency limiter (spec.md §4.D,
// §5): unlike the teacher's ratelimit.ConcurrentLimiter, which rejects
// callers once its atomic counter hits the limit, Gate queues callers
// and admits them in roughly the order they arrived, using a buffered
// channel as a counting semaphore — idiomatic Go for this shape, and
// what the teacher's own channel-signaling (stopHealthCheck /
// healthCheckStopped) models for coordination.
type Gate struct {
	slots chan struct{}
}

// NewGate creates a gate admitting at most n concurrent holders.
func NewGate(n int) *Gate {
	if n <= 0 {
		n = 1
	}
	return &Gate{slots: make(chan struct{}, n)}
}

// Acquire blocks until a slot is free or ctx is done. The caller MUST
// call Release on every exit path, success or failure (spec.md §4.D).
func (g *Gate) Acquire(ctx context.Context) error {
	select {
	case g.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot acquired by Acquire.
func (g *Gate) Release() {
	select {
	case <-g.slots:
	default:
	}
}
