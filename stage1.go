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

// Stage 1 walks the padded input 64 bytes at a time and produces a flat list
// of "structural indices": byte offsets of every structural character
// ({ } [ ] : ,) and every "pseudo-structural" scalar (the first byte of a
// number/true/false/null/string that isn't inside a string). Stage 2 then
// only ever looks at those offsets instead of re-scanning the input.
//
// This mirrors simdjson-go's findStructuralIndices, with the asm-backed
// find_structural_bits_in_slice replaced by the SWAR block classifier in
// classify.go; the carried state (odd backslash runs, in-quote state,
// pseudo-structural predecessor) follows the same per-block recurrence.

const blockSize = 64

type stage1Scanner struct {
	prevEndsOddBackslash uint64
	prevInsideQuote      uint64 // 0 or all-ones
	prevEndsPseudoPred   uint64 // 0 or 1
	errMask              uint64
}

// findOddBackslashSequences marks, for each backslash run of odd length,
// the bit position immediately following the run (the escaped byte).
// The algorithm and carried-state semantics are the classic simdjson
// odd-backslash scan; see stage1_test.go for worked examples ported from
// simdjson-go's find_odd_backslash_sequences_test.go fixtures.
func findOddBackslashSequences(backslash uint64, prevEndsOddBackslash *uint64) uint64 {
	const evenBits = 0x5555555555555555
	const oddBits = ^uint64(evenBits)

	startEdges := backslash &^ (backslash << 1)
	evenStartMask := evenBits ^ *prevEndsOddBackslash
	evenStarts := startEdges & evenStartMask
	oddStarts := startEdges &^ evenStartMask

	evenCarries := backslash + evenStarts

	oddCarries, overflow := addOverflow(backslash, oddStarts)
	oddCarries |= *prevEndsOddBackslash
	if overflow {
		*prevEndsOddBackslash = 1
	} else {
		*prevEndsOddBackslash = 0
	}

	evenCarryEnds := evenCarries &^ backslash
	oddCarryEnds := oddCarries &^ backslash

	evenStartOddEnd := evenCarryEnds & oddBits
	oddStartEvenEnd := oddCarryEnds & evenBits

	return evenStartOddEnd | oddStartEvenEnd
}

// findQuoteMaskAndBits returns the "inside a string" mask for the block
// (quoteMask, one bit per byte, set from a string's opening quote up to but
// not including its closing quote) and quoteBits (the raw, unescaped quote
// positions).
func findQuoteMaskAndBits(quote, oddEnds uint64, prevInsideQuote *uint64) (quoteMask, quoteBits uint64) {
	quoteBits = quote &^ oddEnds
	quoteMask = prefixXOR(quoteBits)
	quoteMask ^= *prevInsideQuote
	*prevInsideQuote = uint64(int64(quoteMask) >> 63)
	return quoteMask, quoteBits
}

// finalizeStructurals combines the raw operator mask with whitespace and the
// in-string mask to produce the final structural bitmap, including
// pseudo-structural scalars (the leading byte of numbers/atoms) and both the
// opening and the closing quote of every string.
func finalizeStructurals(structurals, whitespace, quoteMask, quoteBits uint64, prevEndsPseudoPred *uint64) uint64 {
	structurals &^= quoteMask
	structurals |= quoteBits

	pseudoPred := structurals | whitespace
	shiftedPseudoPred := (pseudoPred << 1) | *prevEndsPseudoPred
	*prevEndsPseudoPred = pseudoPred >> 63
	pseudoStructurals := shiftedPseudoPred &^ whitespace &^ quoteMask
	structurals |= pseudoStructurals
	return structurals
}

// findStructuralIndices scans buf (which must include at least minPadding
// zero bytes past the logical length n) and appends every structural byte
// offset found to dst, in increasing order. It returns the extended slice
// and an error if the input contains invalid escape sequences at the coarse
// bitmask level (unescaped control characters inside strings) or ends with
// an unterminated string.
func findStructuralIndices(buf []byte, n int, dst []uint32) ([]uint32, error) {
	var s stage1Scanner
	s.prevEndsPseudoPred = 1

	var block [blockSize]byte
	for pos := 0; pos < n; pos += blockSize {
		end := pos + blockSize
		var chunk []byte
		if end <= len(buf) {
			chunk = buf[pos:end]
		} else {
			// Final, possibly short block: copy into a zero-padded scratch block.
			for i := range block {
				block[i] = 0
			}
			copy(block[:], buf[pos:])
			chunk = block[:]
		}
		blk := (*[64]byte)(chunk)

		whitespace, op, quote, backslash := classifyBlock(blk)

		oddEnds := findOddBackslashSequences(backslash, &s.prevEndsOddBackslash)
		quoteMask, quoteBits := findQuoteMaskAndBits(quote, oddEnds, &s.prevInsideQuote)

		// Unescaped ASCII control characters (< 0x20) inside a string are illegal.
		controlMask := uint64(0)
		for i := 0; i < blockSize && pos+i < n; i++ {
			if chunk[i] < 0x20 {
				controlMask |= 1 << uint(i)
			}
		}
		if controlMask&quoteMask != 0 {
			s.errMask |= controlMask & quoteMask
		}

		structurals := finalizeStructurals(op, whitespace, quoteMask, quoteBits, &s.prevEndsPseudoPred)

		limit := blockSize
		if pos+blockSize > n {
			limit = n - pos
		}
		for structurals != 0 {
			bitIdx := trailingZeros64(structurals)
			if bitIdx >= limit {
				break
			}
			dst = append(dst, uint32(pos+bitIdx))
			structurals &= structurals - 1
		}
	}

	if s.errMask != 0 {
		return dst, newErr(ErrUnescapedControl, 0, "unescaped control character inside string")
	}
	if s.prevInsideQuote != 0 {
		return dst, newErr(ErrUnclosedString, n, "unterminated string at end of input")
	}
	if len(dst) == 0 {
		return dst, newErr(ErrEmpty, 0, "no structural characters found")
	}
	return dst, nil
}
