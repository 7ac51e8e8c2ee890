// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 wangdage1949

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before a scan starts. Anything rejected here is a
// configuration error: the process aborts before the enumerator produces
// a single candidate.
func (cfg *StructuredConfig) validate() error {
	if cfg.Template.WIF == "" {
		return ErrInvalidTemplateConfigs
	}
	for pos := range cfg.Template.Candidates {
		if pos < 1 || pos > len(cfg.Template.WIF) {
			return ErrCandidatePositionOutOfRange
		}
	}

	if cfg.Scan.Workers < 1 {
		return ErrInvalidScanConfigs
	}
	if cfg.Scan.CheckpointInterval <= 0 || cfg.Scan.CheckpointEvery < 1 || cfg.Scan.RefreshInterval <= 0 {
		return ErrInvalidScanConfigs
	}
	if !cfg.Scan.NoFilter && cfg.Scan.FilterStart >= cfg.Scan.FilterEnd {
		return ErrInvalidFilterWindow
	}

	if cfg.Store.ProgressFile == "" {
		return ErrInvalidStoreConfigs
	}

	return nil
}
