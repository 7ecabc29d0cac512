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

import "github.com/klauspost/cpuid/v2"

// This parser is pure Go - the classify/structural-index pass in stage1.go
// uses 64-bit-word SWAR tricks rather than hand-written AVX2/AVX512 asm, so
// correctness never depends on which vector extensions the host CPU has.
// cpuid is kept around for what it's good at regardless of asm: accurate,
// allocation-free host identification for diagnostics and capacity planning.

// CPUFeatures reports the vector extensions available on the running host,
// in the same vocabulary the original C++ project uses to pick a kernel
// (HASWELL roughly corresponds to AVX2+BMI2+PCLMUL, ICELAKE to AVX512).
type CPUFeatures struct {
	AVX2    bool
	AVX512  bool
	BMI2    bool
	PCLMULQ bool
}

// DetectCPUFeatures inspects the running host's CPU once and returns its
// vector-extension support. Safe to call repeatedly; cpuid.CPU is detected
// once at process start.
func DetectCPUFeatures() CPUFeatures {
	return CPUFeatures{
		AVX2:    cpuid.CPU.Supports(cpuid.AVX2),
		AVX512:  cpuid.CPU.Supports(cpuid.AVX512F),
		BMI2:    cpuid.CPU.Supports(cpuid.BMI2),
		PCLMULQ: cpuid.CPU.Supports(cpuid.PCLMULQDQ),
	}
}

// String names the fastest vector tier available on this host, in the same
// vocabulary simdjson's C++ kernels use (HASWELL, ICELAKE, generic). This
// implementation does not branch on it - stage1.go's SWAR path runs
// unconditionally - but it is useful to log alongside parse throughput.
func (f CPUFeatures) String() string {
	switch {
	case f.AVX512:
		return "icelake"
	case f.AVX2 && f.BMI2 && f.PCLMULQ:
		return "haswell"
	default:
		return "generic"
	}
}
