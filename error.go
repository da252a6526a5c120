// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mrsc

import (
	"errors"

	"code.hybscloud.com/lfq"
)

var (
	// ErrDisconnected reports that the peer required for the operation is
	// provably gone: the server was closed or every producer handle was
	// released, or a request envelope was dropped without a reply.
	ErrDisconnected = errors.New("mrsc: peer disconnected")

	// ErrAbandoned reports that a reply could not be delivered because the
	// paired Response was closed first. Recoverable: the consumer loop
	// discards the reply and continues.
	ErrAbandoned = errors.New("mrsc: response abandoned")

	// ErrReplied reports a reply attempt on an envelope that was already
	// consumed by an earlier Reply or Close.
	ErrReplied = errors.New("mrsc: request already replied")
)

// IsWouldBlock reports whether err is the non-blocking boundary signal
// returned by [Server.TryRecv] when no envelope is ready.
// The sentinel is sourced from [code.hybscloud.com/iox] via lfq for
// ecosystem consistency.
func IsWouldBlock(err error) bool {
	return lfq.IsWouldBlock(err)
}
