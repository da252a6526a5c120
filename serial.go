// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mrsc

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing server identifier.
// Each call to New or NewCap assigns the next serial value.
// Serials are diagnostic identity only; reply routing never uses them.
type Serial = uint32

// counter is the global monotonic counter for server serials.
var counter atomix.Uint32

// nextSerial returns the next monotonically increasing serial.
func nextSerial() Serial {
	return counter.Add(1)
}
