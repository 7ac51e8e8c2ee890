package models

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_LegacyJSONShape(t *testing.T) {
	p := Progress{
		TestedCount:     big.NewInt(12345),
		TotalCandidates: big.NewInt(1000000),
		FoundWIFs: []FoundWIF{
			{WIF: "Kabc", PrivateHex: "00ff", Compressed: true},
		},
		Timestamp: 1756200000.5,
	}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Contains(t, decoded, "tested_count")
	assert.Contains(t, decoded, "total_candidates")
	assert.Contains(t, decoded, "found_wifs")
	assert.Contains(t, decoded, "timestamp")
	// Single-worker records stay in the four-field legacy shape.
	assert.NotContains(t, decoded, "cursors")

	assert.JSONEq(t, `12345`, string(decoded["tested_count"]))
	assert.JSONEq(t, `[["Kabc", "00ff", true]]`, string(decoded["found_wifs"]))
}

func TestProgress_RoundTripBeyondUint64(t *testing.T) {
	total, ok := new(big.Int).SetString("49043858461047861112832", 10)
	require.True(t, ok)
	tested, ok := new(big.Int).SetString("18446744073709551617", 10)
	require.True(t, ok)

	p := Progress{
		TestedCount:     tested,
		TotalCandidates: total,
		FoundWIFs:       []FoundWIF{},
		Timestamp:       1.5,
		Cursors: []PartitionCursor{
			{Next: big.NewInt(10), End: big.NewInt(20)},
			{Next: tested, End: total},
		},
	}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var got Progress
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Zero(t, got.TestedCount.Cmp(tested))
	assert.Zero(t, got.TotalCandidates.Cmp(total))
	require.Len(t, got.Cursors, 2)
	assert.Zero(t, got.Cursors[1].Next.Cmp(tested))
	assert.Zero(t, got.Cursors[1].End.Cmp(total))
}

func TestFoundWIF_UnmarshalRejectsWrongShape(t *testing.T) {
	var f FoundWIF
	assert.Error(t, json.Unmarshal([]byte(`{"wif":"x"}`), &f))
	assert.Error(t, json.Unmarshal([]byte(`["only-wif"]`), &f))
	assert.Error(t, json.Unmarshal([]byte(`[1, "hex", true]`), &f))
}

func TestPartitionCursor_Unmarshal(t *testing.T) {
	var c PartitionCursor
	require.NoError(t, json.Unmarshal([]byte(`["7", "11"]`), &c))
	assert.Equal(t, big.NewInt(7), c.Next)
	assert.Equal(t, big.NewInt(11), c.End)

	assert.Error(t, json.Unmarshal([]byte(`["x", "11"]`), &c))
}
