// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mrsc

// Request is the envelope pulled by the consumer: the request payload plus
// the sending half of the one-shot reply link created at submission time.
// Reply or Close consumes the envelope; at most one reply ever wins.
type Request[Req, Res any] struct {
	payload Req
	link    *link[Res]
}

// Get returns the payload. Callable any number of times before the
// envelope is consumed.
func (r *Request[Req, Res]) Get() Req {
	return r.payload
}

// Take splits the envelope: the payload moves to the caller and the bare
// reply capability is returned as a Replier. The obligation to answer (or
// Close) travels with the Replier; the original envelope and the Replier
// share the same one-shot link.
func (r *Request[Req, Res]) Take() (Req, *Replier[Res]) {
	return r.payload, &Replier[Res]{link: r.link}
}

// Reply consumes the envelope and sends v to the paired Response. Fails
// with ErrAbandoned when the requester closed its Response first — the
// reply is discarded and the consumer loop continues. Fails with
// ErrReplied when the envelope was already consumed.
func (r *Request[Req, Res]) Reply(v Res) error {
	return r.link.send(v)
}

// Close abandons the envelope without replying; the paired Response.Recv
// unblocks with ErrDisconnected. Idempotent, no-op after a reply.
func (r *Request[Req, Res]) Close() {
	r.link.drop(linkServerGone)
}

// Replier is the reply capability split off an envelope by Take.
type Replier[Res any] struct {
	link *link[Res]
}

// Reply sends v to the paired Response; same one-shot semantics as
// Request.Reply.
func (r *Replier[Res]) Reply(v Res) error {
	return r.link.send(v)
}

// Close abandons the exchange without replying; same semantics as
// Request.Close.
func (r *Replier[Res]) Close() {
	r.link.drop(linkServerGone)
}
