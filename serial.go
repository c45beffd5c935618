// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio

import (
	"strconv"

	"code.hybscloud.com/atomix"
)

// Serial identifies a Writer/Reader pair. Both ends of a pair share it,
// and each call to New yields a larger value than the previous one.
type Serial uint32

func (s Serial) String() string {
	return "body#" + strconv.FormatUint(uint64(s), 10)
}

var pairs atomix.Uint32

func nextSerial() Serial {
	return Serial(pairs.Add(1))
}
