package models

import (
	"encoding/json"
	"errors"
	"math/big"
)

// Progress is the durable record of a scan. Its JSON shape is fixed:
// tools that inspect the progress file rely on these exact field names,
// and found_wifs entries are [wif, payload_hex, compressed] triples.
//
// TestedCount and TotalCandidates are arbitrary precision because the
// default keyspace (2 × 58^11 combinations) does not fit in 64 bits.
type Progress struct {
	// TestedCount is the number of candidates fully processed so far.
	// It only grows within a run.
	TestedCount *big.Int `json:"tested_count"`

	// TotalCandidates is the size of the whole candidate space, computed
	// once from the template. A persisted value that differs from the
	// recomputed one means the template changed between runs.
	TotalCandidates *big.Int `json:"total_candidates"`

	// FoundWIFs lists every confirmed match, in discovery order.
	// Append-only: entries are never removed or reordered.
	FoundWIFs []FoundWIF `json:"found_wifs"`

	// Timestamp is the save time in seconds since the Unix epoch.
	Timestamp float64 `json:"timestamp"`

	// Cursors holds per-worker resume positions. Present only when the
	// scan ran with more than one worker; single-worker runs keep the
	// record in its legacy four-field shape.
	Cursors []PartitionCursor `json:"cursors,omitempty"`
}

// FoundWIF is one confirmed match: the candidate string that passed the
// checksum, the 32-byte private key it decodes to, and whether the WIF
// carried the compressed-pubkey marker byte.
type FoundWIF struct {
	WIF        string
	PrivateHex string
	Compressed bool
}

// MarshalJSON encodes the match as a [wif, hex, bool] triple.
func (f FoundWIF) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{f.WIF, f.PrivateHex, f.Compressed})
}

// UnmarshalJSON decodes the [wif, hex, bool] triple form.
func (f *FoundWIF) UnmarshalJSON(b []byte) error {
	var raw [3]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &f.WIF); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &f.PrivateHex); err != nil {
		return err
	}
	return json.Unmarshal(raw[2], &f.Compressed)
}

// PartitionCursor records one worker's position inside its index range:
// Next is the first index not yet processed, End is the exclusive upper
// bound of the partition. Serialized as a ["next", "end"] pair of decimal
// strings to survive any JSON parser's number precision limits.
type PartitionCursor struct {
	Next *big.Int
	End  *big.Int
}

// MarshalJSON encodes the cursor as a two-element array of decimal strings.
func (c PartitionCursor) MarshalJSON() ([]byte, error) {
	if c.Next == nil || c.End == nil {
		return nil, errors.New("partition cursor bounds must be set")
	}
	return json.Marshal([2]string{c.Next.String(), c.End.String()})
}

// UnmarshalJSON decodes the ["next", "end"] decimal string pair.
func (c *PartitionCursor) UnmarshalJSON(b []byte) error {
	var pair [2]string
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	next, ok := new(big.Int).SetString(pair[0], 10)
	if !ok {
		return errors.New("invalid partition cursor: " + pair[0])
	}
	end, ok := new(big.Int).SetString(pair[1], 10)
	if !ok {
		return errors.New("invalid partition cursor: " + pair[1])
	}
	c.Next, c.End = next, end
	return nil
}
