package simdbytes

import "golang.org/x/sys/cpu"

// wideBatch reports whether the running CPU has wide SIMD register files
// (AVX2 on x86-64, ASIMD/NEON on arm64), the same dispatch check
// coregx-coregex/simd uses (cpu.X86.HasAVX2) to pick its assembly memchr
// routine. This module has no assembly backend, but the signal is still
// useful: on a wide-register CPU the two interleaved SWAR words in
// indexOfByteWide fit comfortably in the reorder buffer with no added
// register pressure, so the 16-bytes-per-iteration loop is a net win; on a
// narrower core it can lose to the plain 8-byte loop, so IndexOfByte only
// takes the wide path when this is true.
var wideBatch = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD
