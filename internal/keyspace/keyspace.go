// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 wangdage1949

// Package keyspace models the candidate space of a partially-known key:
// a fixed-length template where every position carries an ordered set of
// permissible symbols, and a deterministic enumeration of the Cartesian
// product of those sets.
//
// Enumeration order is fixed: position 0 is the most significant digit
// (varies slowest), the last position varies fastest. An enumeration index
// in [0, Total) bijects to exactly one candidate via mixed-radix
// decomposition over the per-position set sizes, which is what makes
// resume-from-checkpoint exact.
package keyspace

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	// ErrEmptyCandidateSet is returned when a position ends up with no
	// permissible symbols, e.g. because every configured candidate was
	// outside the alphabet. The template is unusable; fail before any
	// enumeration starts.
	ErrEmptyCandidateSet = errors.New("empty candidate set")

	// ErrSymbolOutsideAlphabet is returned when a fixed template position
	// holds a character that the alphabet does not contain.
	ErrSymbolOutsideAlphabet = errors.New("template symbol outside alphabet")

	// ErrIndexOutOfRange is returned by At and Cursor construction when
	// the requested enumeration index is not in [0, Total).
	ErrIndexOutOfRange = errors.New("enumeration index out of range")
)

// Template is an immutable description of the candidate space. Build one
// with New, then enumerate with At or a Cursor.
type Template struct {
	sets  [][]byte // ordered candidate set per position
	total *big.Int
}

// New builds a Template of len(template) positions. candidates maps a
// 0-based position to the symbols permitted there; positions absent from
// the map are fixed to the template's literal character. Symbols not in
// alphabet are dropped from candidate sets (duplicates too, keeping first
// occurrence); a set emptied this way is a configuration error.
func New(template string, candidates map[int]string, alphabet string) (*Template, error) {
	if len(template) == 0 {
		return nil, fmt.Errorf("%w: template is empty", ErrEmptyCandidateSet)
	}

	sets := make([][]byte, len(template))
	for i := 0; i < len(template); i++ {
		cand, free := candidates[i]
		if !free {
			c := template[i]
			if !strings.Contains(alphabet, string(c)) {
				return nil, fmt.Errorf("%w: position %d holds %q", ErrSymbolOutsideAlphabet, i, string(c))
			}
			sets[i] = []byte{c}
			continue
		}

		var set []byte
		var seen [256]bool
		for j := 0; j < len(cand); j++ {
			c := cand[j]
			if seen[c] || !strings.Contains(alphabet, string(c)) {
				continue
			}
			seen[c] = true
			set = append(set, c)
		}
		if len(set) == 0 {
			return nil, fmt.Errorf("%w: position %d", ErrEmptyCandidateSet, i)
		}
		sets[i] = set
	}

	total := big.NewInt(1)
	for _, set := range sets {
		total.Mul(total, big.NewInt(int64(len(set))))
	}

	return &Template{sets: sets, total: total}, nil
}

// Len returns the candidate length L.
func (t *Template) Len() int { return len(t.sets) }

// Total returns the size of the candidate space, ∏|C_i|. The result is a
// copy the caller may mutate freely.
func (t *Template) Total() *big.Int { return new(big.Int).Set(t.total) }

// FreePositions returns the indices whose candidate set holds more than
// one symbol, in ascending order.
func (t *Template) FreePositions() []int {
	var free []int
	for i, set := range t.sets {
		if len(set) > 1 {
			free = append(free, i)
		}
	}
	return free
}

// At returns the candidate at the given enumeration index via mixed-radix
// decomposition. Pure: the same template and index always produce the same
// string.
func (t *Template) At(index *big.Int) (string, error) {
	digits, err := t.decompose(index)
	if err != nil {
		return "", err
	}
	buf := make([]byte, len(t.sets))
	for i, set := range t.sets {
		buf[i] = set[digits[i]]
	}
	return string(buf), nil
}

// decompose converts index into per-position digits, last position least
// significant.
func (t *Template) decompose(index *big.Int) ([]int, error) {
	if index.Sign() < 0 || index.Cmp(t.total) >= 0 {
		return nil, fmt.Errorf("%w: %s of %s", ErrIndexOutOfRange, index, t.total)
	}

	digits := make([]int, len(t.sets))
	rest := new(big.Int).Set(index)
	rem := new(big.Int)
	radix := new(big.Int)
	for i := len(t.sets) - 1; i >= 0; i-- {
		radix.SetInt64(int64(len(t.sets[i])))
		rest.QuoRem(rest, radix, rem)
		digits[i] = int(rem.Int64())
	}
	return digits, nil
}
