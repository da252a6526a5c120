// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mrsc

// Response is the requester-side handle holding the receiving half of a
// reply link, paired 1:1 with the envelope it was split from.
type Response[Res any] struct {
	link *link[Res]
}

// Recv blocks until the paired envelope is replied to and returns the
// reply value, exactly once. Fails with ErrDisconnected when the envelope
// was dropped without a reply (server closed, or the consumer released the
// envelope), and on a handle that is already spent or closed.
//
// This is the requester's only blocking point. There is no polling or
// timeout variant; callers needing a deadline compose their own timer
// around the handle.
func (r *Response[Res]) Recv() (Res, error) {
	return r.link.recv()
}

// Close abandons the wait. The consumer observes the abandonment, if at
// all, as ErrAbandoned from its Reply. Idempotent.
func (r *Response[Res]) Close() {
	r.link.abandon()
}
