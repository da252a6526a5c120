// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mrsc_test

import (
	"sync"
	"testing"
	"testing/quick"

	"code.hybscloud.com/mrsc"
)

// TestPropertyFunnelFIFO proves that for any arbitrarily generated sequence
// of integers submitted in order, the consumer observes exactly that
// sequence, and each reply reaches exactly the response of its own request.
func TestPropertyFunnelFIFO(t *testing.T) {
	skipRace(t)

	propertyFIFO := func(payload []int) bool {
		server := mrsc.NewCap[int, int](len(payload) + 2)
		channel := server.Pop()

		responses := make([]*mrsc.Response[int], 0, len(payload))
		for _, v := range payload {
			response, err := channel.Req(v)
			if err != nil {
				return false
			}
			responses = append(responses, response)
		}

		for i, want := range payload {
			req, err := server.Recv()
			if err != nil || req.Get() != want {
				return false
			}
			if req.Reply(i) != nil {
				return false
			}
		}

		for i, response := range responses {
			reply, err := response.Recv()
			if err != nil || reply != i {
				return false
			}
		}

		channel.Close()
		_, err := server.Recv()
		return err == mrsc.ErrDisconnected
	}

	if err := quick.Check(propertyFIFO, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyReplyMatching proves that under concurrent fan-in of
// arbitrary values, no reply ever crosses over to an unrelated
// request/response pair.
func TestPropertyReplyMatching(t *testing.T) {
	skipRace(t)

	propertyMatch := func(values []uint16) bool {
		server := mrsc.NewCap[uint16, uint32](len(values) + 2)
		root := server.Pop()
		go serve(server, func(v uint16) uint32 { return uint32(v)<<8 | 1 })

		var wg sync.WaitGroup
		ok := true
		var mu sync.Mutex
		for _, v := range values {
			wg.Add(1)
			go func(sent uint16) {
				defer wg.Done()
				channel := root.Clone()
				defer channel.Close()
				response, err := channel.Req(sent)
				if err != nil {
					mu.Lock()
					ok = false
					mu.Unlock()
					return
				}
				reply, err := response.Recv()
				if err != nil || reply != uint32(sent)<<8|1 {
					mu.Lock()
					ok = false
					mu.Unlock()
				}
			}(v)
		}
		wg.Wait()
		root.Close()

		mu.Lock()
		defer mu.Unlock()
		return ok
	}

	if err := quick.Check(propertyMatch, nil); err != nil {
		t.Error(err)
	}
}
