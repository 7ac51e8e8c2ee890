// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 wangdage1949

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiversity(t *testing.T) {
	// The default recovery window: positions 1 through 11 must mix at
	// least one digit, one lowercase and one uppercase character.
	accept := Diversity(1, 12)

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{name: "all three classes present", candidate: "KxN3abcdefgh5bCRZhiS", want: true},
		{name: "classes at window edges", candidate: "K1bCDEFGHJKa5bCRZhiS", want: true},
		{name: "digits only", candidate: "K12345678912extra", want: false},
		{name: "no digit", candidate: "KxNabcdefghQ5bCRZhiS", want: false},
		{name: "no lowercase", candidate: "KXN3ABCDEFGH5bCRZhiS", want: false},
		{name: "no uppercase", candidate: "Kxn3abcdefgh5bCRZhiS", want: false},
		{name: "first position excluded from window", candidate: "K999999999aa", want: false},
		{name: "class outside window ignored", candidate: "Kaaaaaaaaaaa3B", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accept([]byte(tt.candidate)))
		})
	}
}

func TestDiversity_AcceptsRealisticKey(t *testing.T) {
	// A well-formed compressed-key WIF mixing all three classes inside
	// the window must never be filtered out.
	accept := Diversity(1, 12)
	assert.True(t, accept([]byte("L1aW4aubDFB7yfras2S1mN3bqg9nwySY8nkoLmJebSLD5BWv3ENZ")))
}

func TestDiversity_WindowClamping(t *testing.T) {
	accept := Diversity(1, 12)
	// Shorter than the window: the check runs over what exists.
	assert.True(t, accept([]byte("Xa1B")))
	assert.False(t, accept([]byte("Xa1")))

	// Negative start is clamped to 0.
	fromStart := Diversity(-3, 3)
	assert.True(t, fromStart([]byte("a1B")))
}

func TestDiversity_EmptyWindow(t *testing.T) {
	accept := Diversity(5, 5)
	assert.False(t, accept([]byte("a1Ba1Ba1Ba1B")))
}

func TestPassAll(t *testing.T) {
	assert.True(t, PassAll(nil))
	assert.True(t, PassAll([]byte("anything")))
}
