// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mrsc

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Channel is a producer-side handle on a server's request funnel. Handles
// are cheap, refcounted capabilities: mint them with Server.Pop or Clone,
// release them with Close. A single handle may be used from multiple
// goroutines; the MPSC funnel serializes producers.
type Channel[Req, Res any] struct {
	core   *core[Req, Res]
	closed atomix.Uint32
}

// Req allocates a fresh reply link, wraps payload and the link's sending
// half into an envelope, pushes the envelope onto the funnel and returns
// the Response holding the receiving half. Does not wait for the reply;
// blocks only while the bounded funnel is full. Fails with ErrDisconnected
// when the server is gone, including when the server closes while the
// submission is waiting out backpressure.
func (ch *Channel[Req, Res]) Req(payload Req) (*Response[Res], error) {
	if ch.closed.Load() != 0 {
		return nil, ErrDisconnected
	}
	c := ch.core
	c.inflight.Add(1)
	defer c.inflight.Add(^uint32(0))
	if c.state.Load() != coreOpen {
		return nil, ErrDisconnected
	}
	req := &Request[Req, Res]{payload: payload, link: newLink[Res]()}
	var bo iox.Backoff
	for c.queue.Enqueue(&req) != nil {
		if c.state.Load() != coreOpen {
			return nil, ErrDisconnected
		}
		bo.Wait()
	}
	return &Response[Res]{link: req.link}, nil
}

// Clone returns an independent handle on the same funnel.
func (ch *Channel[Req, Res]) Clone() *Channel[Req, Res] {
	ch.core.producers.Add(1)
	return &Channel[Req, Res]{core: ch.core}
}

// Close releases the handle; idempotent. Submissions on a closed handle
// fail with ErrDisconnected. Releasing the last live handle lets a blocked
// or later Server.Recv drain the remainder and report ErrDisconnected.
func (ch *Channel[Req, Res]) Close() {
	if !ch.closed.CompareAndSwap(0, 1) {
		return
	}
	ch.core.producers.Add(^uint32(0))
}
