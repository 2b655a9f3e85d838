package pipeline

import (
	"log/slog"

	"github.com/shopware/sw-sync-cli/pkg/lookup"
	"github.com/shopware/sw-sync-cli/pkg/script"
)

// HostPool hands out one *script.Host per worker goroutine (spec.md
// §4.C "interpreter instance per worker") and reclaims it when the
// worker is done, the way the API client's Gate hands out in-flight
// slots — a buffered channel used as a borrow/return pool.
type HostPool struct {
	hosts chan *script.Host
	size  int
}

// NewHostPool creates n interpreters, each with serializeSrc/deserializeSrc
// loaded once (empty strings are a no-op load).
func NewHostPool(n int, tables *lookup.Tables, logger *slog.Logger, serializeSrc, deserializeSrc string) (*HostPool, error) {
	if n <= 0 {
		n = 1
	}
	hp := &HostPool{hosts: make(chan *script.Host, n), size: n}
	for i := 0; i < n; i++ {
		h := script.NewHost(tables, logger)
		if err := h.LoadSerialize(serializeSrc); err != nil {
			hp.Close()
			return nil, err
		}
		if err := h.LoadDeserialize(deserializeSrc); err != nil {
			hp.Close()
			return nil, err
		}
		hp.hosts <- h
	}
	return hp, nil
}

// Get borrows a host, blocking until one is free.
func (hp *HostPool) Get() *script.Host { return <-hp.hosts }

// Put returns a host borrowed via Get.
func (hp *HostPool) Put(h *script.Host) { hp.hosts <- h }

// Size is the number of interpreters in the pool (the transform
// concurrency level).
func (hp *HostPool) Size() int { return hp.size }

// Close drains and closes every interpreter. Safe to call once all
// borrowed hosts have been returned.
func (hp *HostPool) Close() {
	close(hp.hosts)
	for h := range hp.hosts {
		h.Close()
	}
}
