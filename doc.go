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

// Package simdjson parses JSON in two stages: a branch-light structural
// index pass over the raw bytes, followed by a single forward pass that
// builds a compact tape of 64-bit words. The tape can then be navigated
// randomly through ParsedJson/Iter, or values can be read lazily and
// forward-only through the OnDemandParser/Iterator pair without ever
// materializing a tape.
//
// Parse and ParseBuffer handle a single document; ParseND handles multiple
// whitespace-separated documents held in one []byte, sharing one tape, each
// wrapped in its own root span. ParseNDStream and ParseMany read from an
// io.Reader and stream results back over a channel as input arrives.
package simdjson
