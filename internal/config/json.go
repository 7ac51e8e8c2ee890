package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON-friendly field
// types: durations accept "30s"-style strings and candidate map keys are
// 1-based position numbers written as strings.
type StructuredJSONConfig struct {
	Template struct {
		WIF        string            `json:"wif"`
		Candidates map[string]string `json:"candidates"`
	} `json:"template,omitempty"`

	Scan struct {
		Workers            int      `json:"workers"`
		NoFilter           bool     `json:"no_filter"`
		FilterStart        int      `json:"filter_start"`
		FilterEnd          int      `json:"filter_end"`
		CheckpointInterval Duration `json:"checkpoint_interval"`
		CheckpointEvery    int      `json:"checkpoint_every"`
		RefreshInterval    Duration `json:"refresh_interval"`
	} `json:"scan,omitempty"`

	Store struct {
		ProgressFile string `json:"progress_file"`
	} `json:"store,omitempty"`

	Log struct {
		File string `json:"file"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	var candidates map[int]string
	if len(jsonCfg.Template.Candidates) > 0 {
		candidates = make(map[int]string, len(jsonCfg.Template.Candidates))
		for key, symbols := range jsonCfg.Template.Candidates {
			pos, convErr := strconv.Atoi(key)
			if convErr != nil {
				return nil, fmt.Errorf("invalid candidate position %q: %w", key, convErr)
			}
			candidates[pos] = symbols
		}
	}

	cfg := &StructuredConfig{
		Template: Template{
			WIF:        jsonCfg.Template.WIF,
			Candidates: candidates,
		},
		Scan: Scan{
			Workers:            jsonCfg.Scan.Workers,
			NoFilter:           jsonCfg.Scan.NoFilter,
			FilterStart:        jsonCfg.Scan.FilterStart,
			FilterEnd:          jsonCfg.Scan.FilterEnd,
			CheckpointInterval: time.Duration(jsonCfg.Scan.CheckpointInterval),
			CheckpointEvery:    jsonCfg.Scan.CheckpointEvery,
			RefreshInterval:    time.Duration(jsonCfg.Scan.RefreshInterval),
		},
		Store: Store{
			ProgressFile: jsonCfg.Store.ProgressFile,
		},
		Log: Log{
			File: jsonCfg.Log.File,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
