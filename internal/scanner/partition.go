// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 wangdage1949

package scanner

import "math/big"

// partition splits the index range [start, end) into n contiguous
// sub-ranges. Boundaries are start + i·(end−start)/n, a deterministic
// function of the range and worker count, so a resumed run with the same
// inputs reproduces the identical split. Ranges differ in size by at most
// one; empty ranges are kept so worker i always owns the same slice of the
// space.
func partition(start, end *big.Int, n int) []indexRange {
	span := new(big.Int).Sub(end, start)
	if span.Sign() < 0 {
		span.SetInt64(0)
	}

	ranges := make([]indexRange, n)
	bigN := big.NewInt(int64(n))
	prev := new(big.Int).Set(start)
	for i := 0; i < n; i++ {
		bound := new(big.Int).Mul(span, big.NewInt(int64(i+1)))
		bound.Quo(bound, bigN)
		bound.Add(bound, start)
		ranges[i] = indexRange{next: prev, end: bound}
		prev = new(big.Int).Set(bound)
	}
	return ranges
}

// indexRange is a half-open slice [next, end) of the enumeration index
// space owned by a single worker. next advances as the worker makes
// progress.
type indexRange struct {
	next *big.Int
	end  *big.Int
}

func (r indexRange) empty() bool { return r.next.Cmp(r.end) >= 0 }

// size returns end−next, the work remaining in the range.
func (r indexRange) size() *big.Int { return new(big.Int).Sub(r.end, r.next) }
