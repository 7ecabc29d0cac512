//go:build sjsondebug

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

import "log"

// Built only with -tags sjsondebug. Traces stage 2's grammar machine and the
// on-demand navigator one token at a time, in the spirit of the upstream
// project's logger-inl.h (an opt-in, compiled-out-by-default tracer) and
// simdjson-go's own dump_raw_tape debug dumper.

var debugLog = log.New(log.Writer(), "simdjson: ", log.Lshortfile)

func traceToken(where string, pos int, c byte, depth int) {
	debugLog.Printf("%-12s pos=%-8d depth=%-3d byte=%q", where, pos, depth, c)
}

func traceScope(where string, tag Tag, tapeIdx int) {
	debugLog.Printf("%-12s tag=%c tapeIdx=%d", where, byte(tag), tapeIdx)
}
