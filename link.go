// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mrsc

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// replyCapacity is the bounded capacity of a reply link queue.
// 2 is the lfq minimum; at most one value ever crosses the link.
const replyCapacity = 2

// Reply link state machine. All transitions leave linkPending exactly once,
// arbitrated by CAS; every other state is terminal.
const (
	linkPending       uint32 = iota
	linkReplied              // reply enqueued (or about to land)
	linkRequesterGone        // Response closed before the exchange completed
	linkServerGone           // envelope dropped or server closed without replying
	linkSpent                // reply delivered to Recv; the handle is used up
)

// link is the one-shot transport pairing one Request envelope with one
// Response handle. The SPSC queue carries the single reply value from the
// consumer goroutine to the requester goroutine; the state word detects
// abandonment from either side without shared registries.
type link[Res any] struct {
	replies lfq.SPSC[Res]
	state   atomix.Uint32
}

// newLink allocates a fresh link. One is created per submission; the two
// halves are moved into the envelope and the returned Response.
func newLink[Res any]() *link[Res] {
	l := &link[Res]{}
	l.replies.Init(replyCapacity)
	return l
}

// send delivers the one reply. The CAS arbitrates between a second replier
// and a concurrent abandon; only the winner touches the queue.
func (l *link[Res]) send(v Res) error {
	if !l.state.CompareAndSwap(linkPending, linkReplied) {
		if l.state.Load() == linkRequesterGone {
			return ErrAbandoned
		}
		return ErrReplied
	}
	// Sole writer after winning the CAS, and at most one value per link:
	// the capacity-2 queue cannot reject this.
	l.replies.Enqueue(&v)
	return nil
}

// recv blocks until the reply lands or the sending half is known gone.
// A successful receive spends the link; later calls report ErrDisconnected.
func (l *link[Res]) recv() (Res, error) {
	var bo iox.Backoff
	for {
		v, err := l.replies.Dequeue()
		if err == nil {
			l.state.Store(linkSpent)
			return v, nil
		}
		switch l.state.Load() {
		case linkServerGone, linkRequesterGone, linkSpent:
			var zero Res
			return zero, ErrDisconnected
		}
		// linkPending: no reply yet. linkReplied: the value is still in
		// flight between the sender's CAS and its enqueue.
		bo.Wait()
	}
}

// drop marks the link terminal from the sending side without a reply.
// A send that already won the CAS keeps its delivered value.
func (l *link[Res]) drop(terminal uint32) {
	l.state.CompareAndSwap(linkPending, terminal)
}

// abandon marks the link terminal from the receiving side. An undelivered
// reply that already won the CAS is discarded with the link.
func (l *link[Res]) abandon() {
	if !l.state.CompareAndSwap(linkPending, linkRequesterGone) {
		l.state.CompareAndSwap(linkReplied, linkRequesterGone)
	}
}
