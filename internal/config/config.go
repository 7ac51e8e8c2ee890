// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 wangdage1949

package config

import (
	"strings"
	"time"
)

// Placeholder is the template character that marks an unknown position.
const Placeholder = '?'

// Default scan scenario: a mainnet WIF with the first twelve characters
// lost, the first of which is known to be K or L.
const (
	DefaultTemplate     = "K???????????5bCRZhiS5sEGMpmcRZdpAhmWLRfMmutGmPHtjVob"
	DefaultProgressFile = "wif_recovery_progress.json"
	DefaultLogFile      = "wifrecover.log"
)

var defaultCandidates = map[int]string{1: "KL"}

// StructuredConfig is the top-level configuration container for the
// recovery tool. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, an
// optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Template describes the partially-known WIF and the candidate
	// symbols for its unknown positions.
	Template Template `envPrefix:"TEMPLATE_"`

	// Scan holds the scan-loop knobs: worker count, structural filter
	// window, checkpoint cadence, and UI refresh rate.
	Scan Scan `envPrefix:"SCAN_"`

	// Store holds persistence settings for the progress record.
	Store Store `envPrefix:"STORE_"`

	// Log holds logging settings. The scanner logs to a file because the
	// terminal UI owns stdout during a scan.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged after environment
	// variables and flags. Populated via the CONFIG environment variable
	// or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Template describes the candidate space of the partially-known key.
type Template struct {
	// WIF is the template string: known characters literal, unknown
	// positions marked with [Placeholder].
	// Env: TEMPLATE_WIF
	WIF string `env:"WIF"`

	// Candidates maps a 1-based template position to the symbols allowed
	// there. Positions holding a placeholder but absent from the map
	// default to the full Base58 alphabet. Only settable via the JSON
	// config file (keys are position numbers as strings).
	Candidates map[int]string `env:"-"`
}

// Scan holds scan-loop settings.
type Scan struct {
	// Workers is the number of parallel scan workers. 1 reproduces the
	// reference single-threaded order exactly.
	// Env: SCAN_WORKERS
	Workers int `env:"WORKERS"`

	// NoFilter disables the structural pre-filter. The filter encodes a
	// heuristic about the true key's character mix; disable it if that
	// assumption is suspect.
	// Env: SCAN_NO_FILTER
	NoFilter bool `env:"NO_FILTER"`

	// FilterStart and FilterEnd bound the half-open candidate sub-range
	// the diversity filter inspects.
	// Env: SCAN_FILTER_START, SCAN_FILTER_END
	FilterStart int `env:"FILTER_START"`
	FilterEnd   int `env:"FILTER_END"`

	// CheckpointInterval is the maximum wall-clock time between progress
	// saves (e.g. "30s").
	// Env: SCAN_CHECKPOINT_INTERVAL
	CheckpointInterval time.Duration `env:"CHECKPOINT_INTERVAL"`

	// CheckpointEvery forces a save after this many candidates even if
	// the interval has not elapsed.
	// Env: SCAN_CHECKPOINT_EVERY
	CheckpointEvery int `env:"CHECKPOINT_EVERY"`

	// RefreshInterval bounds how often progress snapshots are pushed to
	// the UI.
	// Env: SCAN_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// Store holds persistence settings.
type Store struct {
	// ProgressFile is the path of the durable JSON progress record, the
	// tool's sole durable artifact.
	// Env: STORE_PROGRESS_FILE
	ProgressFile string `env:"PROGRESS_FILE"`
}

// Log holds logging settings.
type Log struct {
	// File is the path the scanner appends its JSON log lines to.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// GetStructuredConfig loads, merges, and validates the tool configuration
// from all available sources in the following priority order (earlier
// sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// defaults returns the built-in configuration, merged in last so any
// explicitly configured value wins.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Template: Template{
			WIF:        DefaultTemplate,
			Candidates: defaultCandidates,
		},
		Scan: Scan{
			Workers:            1,
			FilterStart:        1,
			FilterEnd:          12,
			CheckpointInterval: 30 * time.Second,
			CheckpointEvery:    10000,
			RefreshInterval:    500 * time.Millisecond,
		},
		Store: Store{ProgressFile: DefaultProgressFile},
		Log:   Log{File: DefaultLogFile},
	}
}

// CandidateSets expands the template into a 0-based position → candidate
// symbols map suitable for the keyspace package: placeholder positions
// default to the full alphabet, explicit 1-based entries from Candidates
// override, entries for fixed positions widen them.
func (t Template) CandidateSets(alphabet string) map[int]string {
	sets := make(map[int]string, t.placeholderCount())
	for i := 0; i < len(t.WIF); i++ {
		if t.WIF[i] == Placeholder {
			sets[i] = alphabet
		}
	}
	for pos, symbols := range t.Candidates {
		idx := pos - 1
		if idx < 0 || idx >= len(t.WIF) {
			continue
		}
		sets[idx] = symbols
	}
	return sets
}

// placeholderCount returns how many template positions are unknown.
func (t Template) placeholderCount() int {
	return strings.Count(t.WIF, string(rune(Placeholder)))
}
