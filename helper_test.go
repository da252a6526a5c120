// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mrsc_test

import (
	"code.hybscloud.com/mrsc"
)

// serve answers every envelope with f until the funnel disconnects.
// Run on its own goroutine; it returns once every producer handle is
// closed (or the server is closed), keeping leak checks clean.
func serve[Req, Res any](s *mrsc.Server[Req, Res], f func(Req) Res) {
	for {
		req, err := s.Recv()
		if err != nil {
			return
		}
		req.Reply(f(req.Get()))
	}
}
