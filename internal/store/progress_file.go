// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 wangdage1949

// Package store persists scan progress between runs. The progress record
// is a single JSON file; its absence simply means "no prior run". All
// persistence here is best effort: a failed read degrades to a fresh
// start, a failed write is logged and the scan keeps going.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/wangdage1949/WIF500-Lottery/internal/logger"
	"github.com/wangdage1949/WIF500-Lottery/models"
)

// ProgressStore is the durable checkpoint used by the scan driver.
type ProgressStore interface {
	// Load reads the persisted record. Returns (nil, nil) when no record
	// exists or the existing one cannot be read or parsed; read failures
	// are logged, never fatal.
	Load() (*models.Progress, error)

	// Save persists the record, overwriting any prior one, and stamps it
	// with the current time. Callers treat a returned error as
	// non-fatal.
	Save(p *models.Progress) error

	// Delete removes the persisted record. Removing an absent record is
	// not an error. Called only on full completion of the enumeration.
	Delete() error
}

// progressFileStorage is the default [ProgressStore]: one JSON file,
// written atomically via a temp file and rename so an interrupted save
// never leaves a half-written record behind.
type progressFileStorage struct {
	path string
	log  *logger.Logger
}

// NewProgressFileStorage constructs a [ProgressStore] backed by the JSON
// file at path.
func NewProgressFileStorage(path string, log *logger.Logger) ProgressStore {
	return &progressFileStorage{path: path, log: log}
}

func (s *progressFileStorage) Load() (*models.Progress, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("progress file unreadable, starting fresh")
		}
		return nil, nil
	}

	var p models.Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("progress file corrupt, starting fresh")
		return nil, nil
	}
	if p.TestedCount == nil || p.TotalCandidates == nil {
		s.log.Warn().Str("path", s.path).Msg("progress file missing counters, starting fresh")
		return nil, nil
	}
	if p.FoundWIFs == nil {
		p.FoundWIFs = []models.FoundWIF{}
	}
	return &p, nil
}

func (s *progressFileStorage) Save(p *models.Progress) error {
	p.Timestamp = float64(time.Now().UnixNano()) / float64(time.Second)

	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	// Write-then-rename keeps the previous checkpoint intact if the
	// process dies mid-write.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp progress file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err = tmp.Write(raw); err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write progress file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace progress file: %w", err)
	}
	return nil
}

func (s *progressFileStorage) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete progress file: %w", err)
	}
	return nil
}
