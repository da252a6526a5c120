// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mrsc provides multi-producer request/reply channels: any number of
// requester goroutines funnel typed requests into a single consumer, and every
// request carries its own private one-shot reply link, so the consumer answers
// the originating requester directly — no correlation IDs, no waiter maps,
// no locks.
//
// # Architecture
//
//   - Funnel: one bounded multi-producer single-consumer queue from
//     [code.hybscloud.com/lfq] carries [Request] envelopes from all
//     [Channel] handles to the owning [Server].
//   - Reply links: each submission allocates a fresh bounded SPSC queue plus
//     an atomic one-shot state word. One half rides inside the envelope, the
//     other half is handed back as a [Response]. Ownership transfer replaces
//     correlation bookkeeping.
//   - Blocking: queue operations are non-blocking; [Server.Recv],
//     [Response.Recv] and backpressured [Channel.Req] wait past the
//     would-block boundary with [code.hybscloud.com/iox.Backoff].
//   - Lifecycle: producer refcounts and state words on
//     [code.hybscloud.com/atomix] primitives detect disconnects
//     structurally. Every failure mode is an explicit error; nothing panics
//     on a peer going away.
//
// # Topology
//
// Exactly one goroutine consumes via [Server.Recv]. Any number of goroutines
// submit via [Channel.Req], on any number of handles. Envelopes arrive in
// queue order (FIFO across all producers); replies are strictly 1:1 per
// request with no cross-request ordering.
//
// # Example
//
//	server := mrsc.New[uint32, string]()
//	channel := server.Pop()
//
//	go func() {
//		req, err := server.Recv()
//		if err != nil {
//			return
//		}
//		req.Reply(fmt.Sprintf("hello %d", req.Get()))
//	}()
//
//	response, _ := channel.Req(123)
//	reply, _ := response.Recv() // "hello 123"
package mrsc
