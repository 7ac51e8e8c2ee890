// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 wangdage1949

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "empty template",
			mutate:  func(cfg *StructuredConfig) { cfg.Template.WIF = "" },
			wantErr: ErrInvalidTemplateConfigs,
		},
		{
			name: "candidate position zero",
			mutate: func(cfg *StructuredConfig) {
				cfg.Template.Candidates = map[int]string{0: "KL"}
			},
			wantErr: ErrCandidatePositionOutOfRange,
		},
		{
			name: "candidate position past template end",
			mutate: func(cfg *StructuredConfig) {
				cfg.Template.Candidates = map[int]string{len(cfg.Template.WIF) + 1: "KL"}
			},
			wantErr: ErrCandidatePositionOutOfRange,
		},
		{
			name:    "zero workers",
			mutate:  func(cfg *StructuredConfig) { cfg.Scan.Workers = 0 },
			wantErr: ErrInvalidScanConfigs,
		},
		{
			name:    "non-positive checkpoint interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Scan.CheckpointInterval = 0 },
			wantErr: ErrInvalidScanConfigs,
		},
		{
			name:    "zero checkpoint batch",
			mutate:  func(cfg *StructuredConfig) { cfg.Scan.CheckpointEvery = 0 },
			wantErr: ErrInvalidScanConfigs,
		},
		{
			name: "inverted filter window",
			mutate: func(cfg *StructuredConfig) {
				cfg.Scan.FilterStart = 12
				cfg.Scan.FilterEnd = 1
			},
			wantErr: ErrInvalidFilterWindow,
		},
		{
			name: "inverted window allowed when filter disabled",
			mutate: func(cfg *StructuredConfig) {
				cfg.Scan.NoFilter = true
				cfg.Scan.FilterStart = 12
				cfg.Scan.FilterEnd = 1
			},
		},
		{
			name:    "empty progress file path",
			mutate:  func(cfg *StructuredConfig) { cfg.Store.ProgressFile = "" },
			wantErr: ErrInvalidStoreConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTemplate_CandidateSets(t *testing.T) {
	alphabet := "KLm5"

	tmpl := Template{
		WIF: "K??5",
		Candidates: map[int]string{
			2: "KL", // narrows a placeholder
			1: "Lm", // widens a fixed position
			9: "m",  // out of range, ignored
		},
	}

	sets := tmpl.CandidateSets(alphabet)

	assert.Equal(t, map[int]string{
		0: "Lm",
		1: "KL",
		2: alphabet,
	}, sets)
}

func TestTemplate_CandidateSets_NoPlaceholders(t *testing.T) {
	tmpl := Template{WIF: "KLm5"}
	assert.Empty(t, tmpl.CandidateSets("KLm5"))
}

func TestTemplate_PlaceholderCount(t *testing.T) {
	assert.Equal(t, 11, Template{WIF: DefaultTemplate}.placeholderCount())
	assert.Equal(t, 0, Template{WIF: "KLm"}.placeholderCount())
	assert.Equal(t, 3, Template{WIF: "?K??"}.placeholderCount())
}

func TestParseEnv(t *testing.T) {
	t.Setenv("TEMPLATE_WIF", "K???abc")
	t.Setenv("SCAN_WORKERS", "8")
	t.Setenv("SCAN_NO_FILTER", "true")
	t.Setenv("SCAN_CHECKPOINT_INTERVAL", "45s")
	t.Setenv("STORE_PROGRESS_FILE", "/tmp/progress.json")
	t.Setenv("LOG_FILE", "/tmp/scan.log")
	t.Setenv("CONFIG", "/tmp/config.json")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "K???abc", cfg.Template.WIF)
	assert.Equal(t, 8, cfg.Scan.Workers)
	assert.True(t, cfg.Scan.NoFilter)
	assert.Equal(t, 45*time.Second, cfg.Scan.CheckpointInterval)
	assert.Equal(t, "/tmp/progress.json", cfg.Store.ProgressFile)
	assert.Equal(t, "/tmp/scan.log", cfg.Log.File)
	assert.Equal(t, "/tmp/config.json", cfg.JSONFilePath)
}

func TestParseEnv_BadValue(t *testing.T) {
	t.Setenv("SCAN_WORKERS", "many")

	cfg := &StructuredConfig{}
	assert.Error(t, parseEnv(cfg))
}

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"template": {
			"wif": "K???????????5bCRZhiS5sEGMpmcRZdpAhmWLRfMmutGmPHtjVob",
			"candidates": {"1": "KL", "2": "123"}
		},
		"scan": {
			"workers": 4,
			"filter_start": 1,
			"filter_end": 12,
			"checkpoint_interval": "1m",
			"checkpoint_every": 5000,
			"refresh_interval": "250ms"
		},
		"store": {"progress_file": "resume.json"},
		"log": {"file": "scan.log"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultTemplate, cfg.Template.WIF)
	assert.Equal(t, map[int]string{1: "KL", 2: "123"}, cfg.Template.Candidates)
	assert.Equal(t, 4, cfg.Scan.Workers)
	assert.Equal(t, time.Minute, cfg.Scan.CheckpointInterval)
	assert.Equal(t, 5000, cfg.Scan.CheckpointEvery)
	assert.Equal(t, 250*time.Millisecond, cfg.Scan.RefreshInterval)
	assert.Equal(t, "resume.json", cfg.Store.ProgressFile)
	assert.Equal(t, "scan.log", cfg.Log.File)
}

func TestParseJSON_InvalidCandidateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"template": {"wif": "K?", "candidates": {"first": "KL"}}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	_, err := parseJSON(path)
	assert.Error(t, err)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration

	require.NoError(t, json.Unmarshal([]byte(`"1h30m"`), &d))
	assert.Equal(t, 90*time.Minute, time.Duration(d))

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, time.Second, time.Duration(d))

	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
}

func TestConfigBuilder_EarlierSourcesWin(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Template: Template{WIF: "K???abc"},
		Scan:     Scan{Workers: 4},
	})
	b = b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "K???abc", cfg.Template.WIF)
	assert.Equal(t, 4, cfg.Scan.Workers)
	assert.Equal(t, 30*time.Second, cfg.Scan.CheckpointInterval)
	assert.Equal(t, DefaultProgressFile, cfg.Store.ProgressFile)
}

func TestConfigBuilder_ExplicitTemplateDropsDefaultCandidates(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Template: Template{WIF: "K???abc"},
	})
	b = b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "K???abc", cfg.Template.WIF)
	assert.Empty(t, cfg.Template.Candidates,
		"default position overrides only apply to the default template")
}

func TestConfigBuilder_DefaultTemplateKeepsCandidates(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, DefaultTemplate, cfg.Template.WIF)
	assert.Equal(t, map[int]string{1: "KL"}, cfg.Template.Candidates)
}
