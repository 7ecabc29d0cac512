/*
 * MinIO Cloud Storage, (C) 2020 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package simdjson

import "encoding/binary"

// jsonMarkupTable flags the six structural (operator) bytes of JSON.
var jsonMarkupTable = [256]bool{
	'{': true,
	'}': true,
	'[': true,
	']': true,
	',': true,
	':': true,
}

func jsonMarkup(b byte) bool {
	return jsonMarkupTable[b]
}

var whitespaceTable = [256]bool{
	' ':  true,
	'\t': true,
	'\n': true,
	'\r': true,
}

// classifyBlock scans a 64-byte block and returns one bit per classified
// byte in each of the four masks (bit i set means block[i] belongs to the
// class). It reads the block 8 bytes at a time and uses the SWAR
// byte-finding trick from bitutils.go instead of a per-byte branch chain -
// the closest a portable implementation gets to simdjson's vectorized
// nibble-table classification.
func classifyBlock(block *[64]byte) (whitespace, op, quote, backslash uint64) {
	for lane := 0; lane < 8; lane++ {
		w := binary.LittleEndian.Uint64(block[lane*8 : lane*8+8])

		var wsHit, opHit uint64
		wsHit |= hasByte(w, ' ')
		wsHit |= hasByte(w, '\t')
		wsHit |= hasByte(w, '\n')
		wsHit |= hasByte(w, '\r')

		opHit |= hasByte(w, '{')
		opHit |= hasByte(w, '}')
		opHit |= hasByte(w, '[')
		opHit |= hasByte(w, ']')
		opHit |= hasByte(w, ',')
		opHit |= hasByte(w, ':')

		qHit := hasByte(w, '"')
		bsHit := hasByte(w, '\\')

		shift := uint(lane * 8)
		whitespace |= extractMSBs(wsHit) << shift
		op |= extractMSBs(opHit) << shift
		quote |= extractMSBs(qHit) << shift
		backslash |= extractMSBs(bsHit) << shift
	}
	return
}
