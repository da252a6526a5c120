// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mrsc

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// defaultCapacity is the bounded capacity of the shared request funnel
// allocated by New. NewCap exposes the bound.
const defaultCapacity = 1 << 10

// Server lifecycle states held in core.state.
const (
	coreOpen    uint32 = iota
	coreClosed         // Close was called; queued envelopes were abandoned
	coreDrained        // every producer handle was released and Recv drained the remainder
)

// core is the shared state between a Server and all Channel handles minted
// from it: the MPSC request funnel plus the lifecycle words. Allocated once
// inside the Server; handles hold a pointer.
type core[Req, Res any] struct {
	queue     lfq.Queue[*Request[Req, Res]]
	producers atomix.Uint32 // live Channel handles
	popped    atomix.Uint32 // set once the first handle has been minted
	inflight  atomix.Uint32 // submissions between lifecycle check and enqueue
	state     atomix.Uint32
}

// tryRecv is the non-blocking receive underneath Recv and TryRecv.
// Returns iox.ErrWouldBlock while the funnel is empty but connected.
// Before the first Pop the funnel counts as connected: the consumer waits
// for handles that are yet to be minted.
func (c *core[Req, Res]) tryRecv() (*Request[Req, Res], error) {
	req, err := c.queue.Dequeue()
	if err == nil {
		return req, nil
	}
	if c.state.Load() == coreOpen {
		if c.popped.Load() == 0 || c.producers.Load() > 0 || c.inflight.Load() != 0 {
			return nil, iox.ErrWouldBlock
		}
		// Every minted handle is gone. Wait out submissions that raced the
		// last handle release — the Drain contract forbids enqueues after
		// the threshold lift — then serve the remainder before reporting
		// the disconnect.
		if c.state.CompareAndSwap(coreOpen, coreDrained) {
			var bo iox.Backoff
			for c.inflight.Load() != 0 {
				bo.Wait()
			}
			c.drainThreshold()
		}
	}
	if req, err = c.queue.Dequeue(); err == nil {
		return req, nil
	}
	return nil, ErrDisconnected
}

// drainThreshold lifts the MPSC livelock threshold so the consumer can
// fully drain the queue. Only called once no further enqueue can start.
func (c *core[Req, Res]) drainThreshold() {
	if d, ok := c.queue.(lfq.Drainer); ok {
		d.Drain()
	}
}

// Server is the single consumer-side handle. It owns the receiving end of
// the shared request funnel and mints producer handles on demand.
//
// Exactly one goroutine may call Recv, TryRecv and Close. Concurrent
// consumers are not a supported configuration: they violate the underlying
// queue's single-consumer contract rather than partition the load.
type Server[Req, Res any] struct {
	core   core[Req, Res]
	serial Serial
}

// New creates a server with the default funnel capacity.
func New[Req, Res any]() *Server[Req, Res] {
	return NewCap[Req, Res](defaultCapacity)
}

// NewCap creates a server with a bounded funnel of the given capacity.
// Capacity rounds up to a power of two, minimum 2 (panics below that,
// like lfq). Submissions block on backpressure when the funnel is full.
func NewCap[Req, Res any](capacity int) *Server[Req, Res] {
	s := &Server[Req, Res]{serial: nextSerial()}
	s.core.queue = lfq.NewMPSC[*Request[Req, Res]](capacity)
	return s
}

// Serial returns the serial number assigned to this server.
func (s *Server[Req, Res]) Serial() Serial {
	return s.serial
}

// Pop mints a new producer handle sharing the request funnel. Callable any
// number of times, from any goroutine, before or after consuming starts.
// Handles minted after Close (or after Recv reported ErrDisconnected) fail
// every submission with ErrDisconnected.
func (s *Server[Req, Res]) Pop() *Channel[Req, Res] {
	s.core.producers.Add(1)
	s.core.popped.Store(1)
	return &Channel[Req, Res]{core: &s.core}
}

// Recv blocks until a request envelope is available and returns it in
// first-submitted order across all producer handles. Before the first Pop
// it simply blocks, waiting for handles yet to be minted. Fails with
// ErrDisconnected once at least one Channel handle was minted, every handle
// has been closed and the funnel is permanently empty, or after Close; that
// is the consumer loop's signal to exit, and the server is spent from then
// on.
func (s *Server[Req, Res]) Recv() (*Request[Req, Res], error) {
	var bo iox.Backoff
	for {
		req, err := s.core.tryRecv()
		if !lfq.IsWouldBlock(err) {
			return req, err
		}
		bo.Wait()
	}
}

// TryRecv is the non-blocking variant of Recv. Returns iox.ErrWouldBlock
// when no envelope is ready; see IsWouldBlock.
func (s *Server[Req, Res]) TryRecv() (*Request[Req, Res], error) {
	return s.core.tryRecv()
}

// Close releases the consumer side. Submissions racing the close are waited
// out, every still-queued envelope is abandoned so its Response unblocks
// with ErrDisconnected, and all later submissions fail with ErrDisconnected.
// Idempotent. Consumer-side operation: must not run concurrently with Recv
// or TryRecv.
func (s *Server[Req, Res]) Close() {
	c := &s.core
	if !c.state.CompareAndSwap(coreOpen, coreClosed) &&
		!c.state.CompareAndSwap(coreDrained, coreClosed) {
		return
	}
	// After the state flip no new submission passes its lifecycle check;
	// once inflight reaches zero no enqueue is running either, which is
	// what the Drain contract requires.
	var bo iox.Backoff
	for c.inflight.Load() != 0 {
		bo.Wait()
	}
	c.drainThreshold()
	for {
		req, err := c.queue.Dequeue()
		if err != nil {
			return
		}
		req.link.drop(linkServerGone)
	}
}
