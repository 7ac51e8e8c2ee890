// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 wangdage1949

// Package filter holds the cheap structural pre-filters a scan applies
// before the expensive checksum validation. A filter is a pure predicate
// over the candidate bytes; rejecting means "skip the decode", never
// "abort the scan".
//
// The diversity rule encodes an assumption about the true key's character
// composition, not a protocol guarantee. It is therefore injected into the
// scan driver rather than hard-wired, and can be disabled entirely through
// configuration.
package filter

// Filter is an accept/reject predicate over a candidate. Implementations
// must be pure and allocation free: they run once per candidate in the
// hot loop.
type Filter func(candidate []byte) bool

// PassAll accepts every candidate. Used when the structural filter is
// disabled.
func PassAll([]byte) bool { return true }

// Diversity returns a filter that accepts a candidate only if the
// half-open sub-range [start, end) contains at least one ASCII digit, one
// lowercase letter, and one uppercase letter. Bounds are clamped to the
// candidate length.
func Diversity(start, end int) Filter {
	if start < 0 {
		start = 0
	}
	return func(candidate []byte) bool {
		hi := end
		if hi > len(candidate) {
			hi = len(candidate)
		}
		var digit, lower, upper bool
		for i := start; i < hi; i++ {
			switch c := candidate[i]; {
			case c >= '0' && c <= '9':
				digit = true
			case c >= 'a' && c <= 'z':
				lower = true
			case c >= 'A' && c <= 'Z':
				upper = true
			}
			if digit && lower && upper {
				return true
			}
		}
		return false
	}
}
