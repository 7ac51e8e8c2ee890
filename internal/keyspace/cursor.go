// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 wangdage1949

package keyspace

import "math/big"

// Cursor walks the candidate space in enumeration order starting from an
// arbitrary index. It keeps an explicit per-position digit counter and a
// reusable render buffer, so advancing is O(1) amortized with no big-integer
// work and no allocation per candidate.
//
// A Cursor is not safe for concurrent use; each scan worker owns one.
type Cursor struct {
	t      *Template
	digits []int
	buf    []byte
	index  *big.Int
	valid  bool
}

// Cursor returns a cursor positioned at start. Seeking is a direct
// mixed-radix decomposition, not a skip-from-zero walk, so resuming deep
// into the space costs the same as starting at zero.
func (t *Template) Cursor(start *big.Int) (*Cursor, error) {
	c := &Cursor{
		t:     t,
		buf:   make([]byte, len(t.sets)),
		index: new(big.Int),
	}
	if err := c.Seek(start); err != nil {
		return nil, err
	}
	return c, nil
}

// Seek repositions the cursor at the given enumeration index.
func (c *Cursor) Seek(index *big.Int) error {
	digits, err := c.t.decompose(index)
	if err != nil {
		return err
	}
	c.digits = digits
	c.index.Set(index)
	c.valid = true
	c.render()
	return nil
}

// Valid reports whether the cursor points at a candidate. It turns false
// once Next advances past the end of the space.
func (c *Cursor) Valid() bool { return c.valid }

// Bytes returns the current candidate as a byte slice. The slice is the
// cursor's internal buffer: it is only valid until the next call to Next
// or Seek, and must not be modified.
func (c *Cursor) Bytes() []byte { return c.buf }

// String returns the current candidate as a freshly allocated string.
func (c *Cursor) String() string { return string(c.buf) }

// Index returns a copy of the current enumeration index.
func (c *Cursor) Index() *big.Int { return new(big.Int).Set(c.index) }

// IndexCmp compares the current enumeration index against x without
// allocating, for bounds checks in the hot loop.
func (c *Cursor) IndexCmp(x *big.Int) int { return c.index.Cmp(x) }

// Next advances to the following candidate, returning false when the
// space is exhausted. The digit counter increments the last position and
// carries leftward, which preserves the canonical order: position 0
// varies slowest.
func (c *Cursor) Next() bool {
	if !c.valid {
		return false
	}

	for i := len(c.digits) - 1; i >= 0; i-- {
		set := c.t.sets[i]
		if c.digits[i]+1 < len(set) {
			c.digits[i]++
			c.buf[i] = set[c.digits[i]]
			c.index.Add(c.index, oneInt)
			return true
		}
		c.digits[i] = 0
		c.buf[i] = set[0]
	}

	// Every position carried over: the space is exhausted.
	c.valid = false
	c.index.Add(c.index, oneInt)
	return false
}

func (c *Cursor) render() {
	for i, set := range c.t.sets {
		c.buf[i] = set[c.digits[i]]
	}
}

var oneInt = big.NewInt(1)
