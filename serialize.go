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

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"unsafe"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

const (
	stringBits        = 14
	stringSize        = 1 << stringBits
	stringmask        = stringSize - 1
	serializedVersion = 3
)

// Serializer allows a parsed tape to be written to a compact binary form and
// read back without re-running stage 1 or stage 2. A Serializer can be
// reused, but not used concurrently.
type Serializer struct {
	sMsg []byte

	tagsBuf       []byte
	valuesBuf     []byte
	valuesCompBuf []byte
	tagsCompBuf   []byte

	compValues, compTags uint8
	compStrings          uint8
	fasterComp           bool

	stringWr     io.Writer
	stringsTable [stringSize]uint32
	stringBuf    []byte

	maxBlockSize uint64
}

// NewSerializer creates and initializes a Serializer with CompressDefault.
func NewSerializer() *Serializer {
	initSerializerOnce.Do(initSerializer)
	var s Serializer
	s.CompressMode(CompressDefault)
	s.maxBlockSize = 1 << 31
	return &s
}

// CompressMode selects the per-block compression algorithm.
type CompressMode uint8

const (
	// CompressNone applies no compression whatsoever.
	CompressNone CompressMode = iota
	// CompressFast applies light compression without string deduplication,
	// favoring deserialization speed.
	CompressFast
	// CompressDefault applies light compression and deduplicates strings.
	CompressDefault
	// CompressBest favors output size over speed.
	CompressBest
)

func (s *Serializer) CompressMode(c CompressMode) {
	switch c {
	case CompressNone:
		s.compValues = blockTypeUncompressed
		s.compTags = blockTypeUncompressed
		s.compStrings = blockTypeUncompressed
	case CompressFast:
		s.compValues = blockTypeS2
		s.compTags = blockTypeS2
		s.compStrings = blockTypeS2
		s.fasterComp = true
	case CompressDefault:
		s.compValues = blockTypeS2
		s.compTags = blockTypeS2
		s.compStrings = blockTypeS2
	case CompressBest:
		s.compValues = blockTypeZstd
		s.compTags = blockTypeZstd
		s.compStrings = blockTypeZstd
	default:
		panic("unknown compression mode")
	}
}

// MarshalBinary implements encoding.BinaryMarshaler using CompressDefault,
// for callers that want to cache a tape without managing a Serializer.
func (pj *ParsedJson) MarshalBinary() ([]byte, error) {
	return NewSerializer().Serialize(nil, *pj), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, replacing pj's tape,
// strings and message with the ones encoded in data.
func (pj *ParsedJson) UnmarshalBinary(data []byte) error {
	_, err := NewSerializer().Deserialize(data, pj)
	return err
}

// SerializeStream consumes a channel of parsed documents (as produced by
// ParseNDStream or ParseMany) and writes each as a compressed, self-describing
// block to dst, in arrival order. Consumed documents are pushed back onto
// reuse when possible so the producer can recycle their tape buffers.
func SerializeStream(dst io.Writer, in <-chan Stream, reuse chan<- *ParsedJson, concurrency int, comp CompressMode) error {
	return serializeStream(dst, in, reuse, concurrency, comp)
}

// serializeStream reads parsed documents from in, serializes each with its
// own Serializer (one per worker so string dictionaries stay independent)
// and writes the resulting blocks to dst in arrival order.
func serializeStream(dst io.Writer, in <-chan Stream, reuse chan<- *ParsedJson, concurrency int, comp CompressMode) error {
	if concurrency <= 0 {
		concurrency = (runtime.GOMAXPROCS(0) + 1) / 2
	}
	var wg sync.WaitGroup
	wg.Add(concurrency)
	type workload struct {
		pj  *ParsedJson
		dst chan []byte
	}
	readCh := make(chan workload, concurrency)
	writeCh := make(chan chan []byte, concurrency)
	dstPool := sync.Pool{New: func() interface{} { return make([]byte, 0, 64<<10) }}

	for i := 0; i < concurrency; i++ {
		go func() {
			s := NewSerializer()
			s.CompressMode(comp)
			defer wg.Done()
			for input := range readCh {
				res := s.Serialize(dstPool.Get().([]byte)[:0], *input.pj)
				input.dst <- res
				select {
				case reuse <- input.pj:
				default:
				}
			}
		}()
	}

	var writeErr error
	var wwg sync.WaitGroup
	wwg.Add(1)
	go func() {
		defer wwg.Done()
		for block := range writeCh {
			b := <-block
			n, err := dst.Write(b)
			if err != nil {
				writeErr = err
			} else if n != len(b) {
				writeErr = io.ErrShortWrite
			}
		}
	}()

	var readErr error
	var rwg sync.WaitGroup
	rwg.Add(1)
	go func() {
		defer rwg.Done()
		defer close(readCh)
		for block := range in {
			if block.Error != nil {
				readErr = block.Error
				continue
			}
			ch := make(chan []byte)
			writeCh <- ch
			readCh <- workload{pj: block.Value, dst: ch}
		}
	}()
	rwg.Wait()
	wg.Wait()
	close(writeCh)
	wwg.Wait()
	if readErr != nil && readErr != io.EOF {
		return readErr
	}
	return writeErr
}

// Serialize encodes pj into a self-contained block appended to dst.
//
// Layout:
//   - Version (byte)
//   - Compressed size of everything below (varuint)
//   - Tape length, uncompressed (varuint)
//   - Deduplicated string table size, uncompressed (varuint)
//   - String table block
//   - Message size, uncompressed (varuint) - always 0, the input is not stored
//   - Message block (empty)
//   - Uncompressed tag bytes size (varuint) + tag block
//   - Uncompressed value bytes size (varuint) + value block
//
// Each block is: compressed size (varuint), block type (byte: 0
// uncompressed, 1 S2, 2 zstd), block bytes. An empty block is a zero
// size alone.
//
// Reconstruction replays the tags in order; container open tags consume one
// packed (count<<32|delta) value word and have their matching close tag's
// tape word derived, rather than stored.
func (s *Serializer) Serialize(dst []byte, pj ParsedJson) []byte {
	var wg sync.WaitGroup

	for i := range s.stringsTable[:] {
		s.stringsTable[i] = 0
	}
	s.stringBuf = s.stringBuf[:0]
	s.sMsg = s.sMsg[:0]

	msgWr, msgDone := encBlock(s.compStrings, s.sMsg, s.fasterComp)
	s.stringWr = msgWr

	const tagBufSize = 64 << 10
	const valBufSize = 64 << 10

	valWr, valDone := encBlock(s.compValues, s.valuesCompBuf, s.fasterComp)
	tagWr, tagDone := encBlock(s.compTags, s.tagsCompBuf, s.fasterComp)

	if cap(s.tagsBuf) <= tagBufSize {
		s.tagsBuf = make([]byte, tagBufSize)
	}
	s.tagsBuf = s.tagsBuf[:tagBufSize]

	if cap(s.valuesBuf) < valBufSize+4 {
		s.valuesBuf = make([]byte, valBufSize+4)
	}
	s.valuesBuf = s.valuesBuf[:0]

	off := 0
	tagsOff := 0
	var tmp [8]byte
	rawValues := 0
	rawTags := 0
	for off < len(pj.Tape) {
		if tagsOff >= tagBufSize {
			rawTags += tagsOff
			tagWr.Write(s.tagsBuf[:tagsOff])
			tagsOff = 0
		}
		if len(s.valuesBuf) >= valBufSize {
			rawValues += len(s.valuesBuf)
			valWr.Write(s.valuesBuf)
			s.valuesBuf = s.valuesBuf[:0]
		}
		entry := pj.Tape[off]
		ntype := Tag(entry >> tagShift)
		payload := entry & JSONVALUEMASK

		switch ntype {
		case TagString:
			sb, err := pj.stringByteAt(payload)
			if err != nil {
				panic(err)
			}
			offset := s.indexString(sb)
			binary.LittleEndian.PutUint64(tmp[:], offset)
			s.valuesBuf = append(s.valuesBuf, tmp[:]...)
		case TagUint, TagInteger, TagFloat:
			binary.LittleEndian.PutUint64(tmp[:], pj.Tape[off+1])
			s.valuesBuf = append(s.valuesBuf, tmp[:]...)
			off++
		case TagNull, TagBoolTrue, TagBoolFalse:
			// No value.
		case TagObjectStart, TagArrayStart:
			closeIdx := tapeCur(ntype, entry)
			cnt, _ := tapeCount(ntype, entry)
			packed := uint64(cnt)<<containerCountShift | ((closeIdx - uint64(off)) & offsetMask)
			binary.LittleEndian.PutUint64(tmp[:], packed)
			s.valuesBuf = append(s.valuesBuf, tmp[:]...)
		case TagRoot:
			// Always forward; rely on the same under/overflow trick as the
			// tape itself to recover the (possibly negative) delta.
			binary.LittleEndian.PutUint64(tmp[:], payload-uint64(off))
			s.valuesBuf = append(s.valuesBuf, tmp[:]...)
		case TagObjectEnd, TagArrayEnd, TagEnd:
			// Derived from the matching open tag; no value stored.
		default:
			wg.Wait()
			panic(fmt.Errorf("unknown tag: %d", int(ntype)))
		}
		s.tagsBuf[tagsOff] = uint8(ntype)
		tagsOff++
		off++
	}
	if tagsOff > 0 {
		rawTags += tagsOff
		tagWr.Write(s.tagsBuf[:tagsOff])
	}
	if len(s.valuesBuf) > 0 {
		rawValues += len(s.valuesBuf)
		valWr.Write(s.valuesBuf)
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		s.tagsCompBuf, err = tagDone()
		if err != nil {
			panic(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		s.valuesCompBuf, err = valDone()
		if err != nil {
			panic(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		s.sMsg, err = msgDone()
		if err != nil {
			panic(err)
		}
	}()
	wg.Wait()

	dst = append(dst, serializedVersion)

	varInts := binary.PutUvarint(tmp[:], uint64(len(pj.Tape))) +
		binary.PutUvarint(tmp[:], uint64(len(s.stringBuf))) +
		binary.PutUvarint(tmp[:], uint64(len(s.sMsg))) +
		binary.PutUvarint(tmp[:], uint64(rawTags)) +
		binary.PutUvarint(tmp[:], uint64(len(s.tagsCompBuf))) +
		binary.PutUvarint(tmp[:], uint64(rawValues)) +
		binary.PutUvarint(tmp[:], uint64(len(s.valuesCompBuf))) +
		2 // empty message section: two zero varuints

	n := binary.PutUvarint(tmp[:], uint64(len(s.sMsg)+len(s.tagsCompBuf)+len(s.valuesCompBuf)+varInts))
	dst = append(dst, tmp[:n]...)

	n = binary.PutUvarint(tmp[:], uint64(len(pj.Tape)))
	dst = append(dst, tmp[:n]...)

	n = binary.PutUvarint(tmp[:], uint64(len(s.stringBuf)))
	dst = append(dst, tmp[:n]...)
	n = binary.PutUvarint(tmp[:], uint64(len(s.sMsg)))
	dst = append(dst, tmp[:n]...)
	dst = append(dst, s.sMsg...)

	// The input message is not stored: zero size and an empty block.
	n = binary.PutUvarint(tmp[:], 0)
	dst = append(dst, tmp[:n]...)
	dst = append(dst, tmp[:n]...)

	n = binary.PutUvarint(tmp[:], uint64(rawTags))
	dst = append(dst, tmp[:n]...)
	n = binary.PutUvarint(tmp[:], uint64(len(s.tagsCompBuf)))
	dst = append(dst, tmp[:n]...)
	dst = append(dst, s.tagsCompBuf...)

	n = binary.PutUvarint(tmp[:], uint64(rawValues))
	dst = append(dst, tmp[:n]...)
	n = binary.PutUvarint(tmp[:], uint64(len(s.valuesCompBuf)))
	dst = append(dst, tmp[:n]...)
	dst = append(dst, s.valuesCompBuf...)

	return dst
}

// Deserialize reconstructs a ParsedJson from a block produced by Serialize.
// Only basic sanity checks are performed; a deliberately corrupted block can
// go unnoticed, so this is meant for trusted caches, not untrusted input.
func (s *Serializer) Deserialize(src []byte, dst *ParsedJson) (*ParsedJson, error) {
	br := bytes.NewBuffer(src)

	v, err := br.ReadByte()
	if err != nil {
		return dst, err
	}
	if v > serializedVersion {
		return dst, errors.New("unknown version")
	}

	if dst == nil {
		dst = &ParsedJson{}
	}

	if c, err := binary.ReadUvarint(br); err != nil {
		return dst, err
	} else if int(c) > br.Len() {
		return dst, fmt.Errorf("stream too short, want %d, only have %d left", c, br.Len())
	}

	if ts, err := binary.ReadUvarint(br); err != nil {
		return dst, err
	} else {
		if uint64(cap(dst.Tape)) < ts {
			dst.Tape = make([]uint64, ts)
		}
		dst.Tape = dst.Tape[:ts]
	}

	if ss, err := binary.ReadUvarint(br); err != nil {
		return dst, err
	} else {
		if uint64(cap(dst.Strings)) < ss || dst.Strings == nil {
			dst.Strings = make([]byte, ss)
		}
		dst.Strings = dst.Strings[:ss]
	}

	var sWG sync.WaitGroup
	var stringsErr, msgErr error
	if err := s.decBlock(br, dst.Strings, &sWG, &stringsErr); err != nil {
		return dst, err
	}

	if ss, err := binary.ReadUvarint(br); err != nil {
		return dst, err
	} else {
		if uint64(cap(dst.Message)) < ss || dst.Message == nil {
			dst.Message = make([]byte, ss)
		}
		dst.Message = dst.Message[:ss]
	}
	if err := s.decBlock(br, dst.Message, &sWG, &msgErr); err != nil {
		return dst, err
	}
	defer sWG.Wait()

	if tags, err := binary.ReadUvarint(br); err != nil {
		return dst, err
	} else {
		if uint64(cap(s.tagsBuf)) < tags {
			s.tagsBuf = make([]byte, tags)
		}
		s.tagsBuf = s.tagsBuf[:tags]
	}
	var wg sync.WaitGroup
	var tagsErr error
	if err := s.decBlock(br, s.tagsBuf, &wg, &tagsErr); err != nil {
		return dst, fmt.Errorf("decompressing tags: %w", err)
	}
	defer wg.Wait()

	if vals, err := binary.ReadUvarint(br); err != nil {
		return dst, err
	} else {
		if uint64(cap(s.valuesBuf)) < vals {
			s.valuesBuf = make([]byte, vals)
		}
		s.valuesBuf = s.valuesBuf[:vals]
	}
	var valsErr error
	if err := s.decBlock(br, s.valuesBuf, &wg, &valsErr); err != nil {
		return dst, fmt.Errorf("decompressing values: %w", err)
	}

	wg.Wait()
	if tagsErr != nil {
		return dst, fmt.Errorf("decompressing tags: %w", tagsErr)
	}
	if valsErr != nil {
		return dst, fmt.Errorf("decompressing values: %w", valsErr)
	}

	var off int
	values := s.valuesBuf
	for _, t := range s.tagsBuf {
		if off == len(dst.Tape) {
			return dst, errors.New("tags extended beyond tape")
		}
		tag := Tag(t)
		tagDst := uint64(t) << tagShift

		switch tag {
		case TagString:
			if len(values) < 8 {
				return dst, fmt.Errorf("reading %v: no values left", tag)
			}
			sOffset := binary.LittleEndian.Uint64(values[:8])
			values = values[8:]
			// sOffset indexes the deduplicated, framed table landed in
			// dst.Strings, not dst.Message, so STRINGBUFBIT must be set for
			// stringByteAt to resolve it correctly.
			dst.Tape[off] = tagDst | STRINGBUFBIT | sOffset
			off++
		case TagFloat, TagInteger, TagUint:
			if len(values) < 8 {
				return dst, fmt.Errorf("reading %v: no values left", tag)
			}
			dst.Tape[off] = tagDst
			dst.Tape[off+1] = binary.LittleEndian.Uint64(values[:8])
			values = values[8:]
			off += 2
		case TagNull, TagBoolTrue, TagBoolFalse, TagEnd:
			dst.Tape[off] = tagDst
			off++
		case TagObjectStart, TagArrayStart:
			if len(values) < 8 {
				return dst, fmt.Errorf("reading %v: no values left", tag)
			}
			packed := binary.LittleEndian.Uint64(values[:8])
			values = values[8:]
			cnt := packed >> containerCountShift & containerCountMask
			delta := packed & offsetMask
			closeIdx := uint64(off) + delta
			if closeIdx >= uint64(len(dst.Tape)) {
				return dst, fmt.Errorf("%v extends beyond tape (%d), offset:%d", tag, len(dst.Tape), closeIdx)
			}
			dst.Tape[off] = tagDst | cnt<<containerCountShift | (closeIdx & offsetMask)
			dst.Tape[closeIdx] = uint64(tagOpenToClose[tag])<<tagShift | (uint64(off) & offsetMask)
			off++
		case TagRoot:
			if len(values) < 8 {
				return dst, fmt.Errorf("reading %v: no values left", tag)
			}
			val := binary.LittleEndian.Uint64(values[:8])
			values = values[8:]
			val += uint64(off)
			if val > uint64(len(dst.Tape)) {
				return dst, fmt.Errorf("%v extends beyond tape (%d), offset:%d", tag, len(dst.Tape), val)
			}
			dst.Tape[off] = tagDst | val
			off++
		case TagObjectEnd, TagArrayEnd:
			if dst.Tape[off]&JSONTAGMASK != tagDst {
				return dst, fmt.Errorf("reading %v, offset:%d, start tag did not match %x != %x", tag, off, dst.Tape[off]>>tagShift, uint8(tag))
			}
			off++
		default:
			return nil, fmt.Errorf("unknown tag: %v", tag)
		}
	}
	sWG.Wait()
	if off != len(dst.Tape) {
		return dst, fmt.Errorf("tags did not fill tape, want %d, got %d", len(dst.Tape), off)
	}
	if len(values) > 0 {
		return dst, fmt.Errorf("values left unconsumed after filling tape of length %d", len(dst.Tape))
	}
	if stringsErr != nil {
		return dst, fmt.Errorf("reading strings: %w", stringsErr)
	}
	return dst, nil
}

func (s *Serializer) decBlock(br *bytes.Buffer, dst []byte, wg *sync.WaitGroup, dstErr *error) error {
	size, err := binary.ReadUvarint(br)
	if err != nil {
		return err
	}
	if size > uint64(br.Len()) {
		return fmt.Errorf("block size (%d) extends beyond input %d", size, br.Len())
	}
	if size == 0 && len(dst) == 0 {
		return nil
	}
	if size < 1 {
		return fmt.Errorf("block size (%d) too small", size)
	}

	typ, err := br.ReadByte()
	if err != nil {
		return err
	}
	size--
	compressed := br.Next(int(size))
	if len(compressed) != int(size) {
		return errors.New("short block section")
	}
	switch typ {
	case blockTypeUncompressed:
		if len(compressed) != len(dst) {
			return fmt.Errorf("short uncompressed block: in (%d) != out (%d)", len(compressed), len(dst))
		}
		copy(dst, compressed)
	case blockTypeS2:
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := bytes.NewBuffer(compressed)
			dec := s2Readers.Get().(*s2.Reader)
			dec.Reset(buf)
			_, err := io.ReadFull(dec, dst)
			dec.Reset(nil)
			s2Readers.Put(dec)
			*dstErr = err
		}()
	case blockTypeZstd:
		wg.Add(1)
		go func() {
			defer wg.Done()
			want := len(dst)
			out, err := zDec.DecodeAll(compressed, dst[:0])
			if err == nil && want != len(out) {
				err = errors.New("zstd decompressed size mismatch")
			}
			*dstErr = err
		}()
	default:
		return fmt.Errorf("unknown compression type: %d", typ)
	}
	return nil
}

const (
	blockTypeUncompressed byte = 0
	blockTypeS2           byte = 1
	blockTypeZstd         byte = 2
)

var zDec *zstd.Decoder

var zEncFast = sync.Pool{New: func() interface{} {
	e, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest), zstd.WithEncoderCRC(false))
	return e
}}

var s2FastWriters = sync.Pool{New: func() interface{} {
	return s2.NewWriter(nil)
}}

var s2Writers = sync.Pool{New: func() interface{} {
	return s2.NewWriter(nil, s2.WriterBetterCompression())
}}

var s2Readers = sync.Pool{New: func() interface{} {
	return s2.NewReader(nil)
}}

var initSerializerOnce sync.Once

func initSerializer() {
	zDec, _ = zstd.NewReader(nil)
}

type encodedResult func() ([]byte, error)

// encBlock starts encoding a block of the given compression mode, returning
// a writer to stream data into and a finisher that flushes and returns the
// finished block bytes (including its leading mode byte).
func encBlock(mode byte, buf []byte, fast bool) (io.Writer, encodedResult) {
	dst := bytes.NewBuffer(buf[:0])
	dst.WriteByte(mode)
	switch mode {
	case blockTypeUncompressed:
		return dst, func() ([]byte, error) {
			return dst.Bytes(), nil
		}
	case blockTypeS2:
		var enc *s2.Writer
		var put *sync.Pool
		if fast {
			enc = s2FastWriters.Get().(*s2.Writer)
			put = &s2FastWriters
		} else {
			enc = s2Writers.Get().(*s2.Writer)
			put = &s2Writers
		}
		enc.Reset(dst)
		return enc, func() ([]byte, error) {
			if err := enc.Close(); err != nil {
				return nil, err
			}
			enc.Reset(nil)
			put.Put(enc)
			return dst.Bytes(), nil
		}
	case blockTypeZstd:
		enc := zEncFast.Get().(*zstd.Encoder)
		enc.Reset(dst)
		return enc, func() ([]byte, error) {
			if err := enc.Close(); err != nil {
				return nil, err
			}
			enc.Reset(nil)
			zEncFast.Put(enc)
			return dst.Bytes(), nil
		}
	}
	panic("unknown compression mode")
}

// indexString deduplicates strings against a hash-indexed table, appending
// new ones to stringBuf framed as [len:u32 little-endian][bytes][0x00] -
// the same layout writeStringTape uses - and returning the offset of the
// len field within it either way, so it can be used directly as a tape
// string payload after deserialization.
func (s *Serializer) indexString(sb []byte) (offset uint64) {
	h := memHash(sb) & stringmask
	off := int(s.stringsTable[h]) - 1
	contentStart := off + 4
	end := contentStart + len(sb)
	if off >= 0 && end <= len(s.stringBuf) {
		if bytes.Equal(s.stringBuf[contentStart:end], sb) {
			return uint64(off)
		}
	}
	off = len(s.stringBuf)
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(len(sb)))
	s.stringBuf = append(s.stringBuf, tmp[:]...)
	s.stringBuf = append(s.stringBuf, sb...)
	s.stringBuf = append(s.stringBuf, 0)
	s.stringsTable[h] = uint32(off + 1)
	s.stringWr.Write(tmp[:])
	s.stringWr.Write(sb)
	s.stringWr.Write(zeroByte[:])
	return uint64(off)
}

var zeroByte = [1]byte{0}

//go:noescape
//go:linkname memhash runtime.memhash
func memhash(p unsafe.Pointer, h, s uintptr) uintptr

// memHash is the hash function used by the Go map runtime; it uses AES
// instructions when available. The per-process seed means it must never be
// persisted or compared across processes.
func memHash(data []byte) uint64 {
	ss := (*stringStruct)(unsafe.Pointer(&data))
	return uint64(memhash(ss.str, 0, uintptr(ss.len)))
}

type stringStruct struct {
	str unsafe.Pointer
	len int
}
