package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-t template WIF string ('?' marks an unknown position)
//	-w number of parallel scan workers
//	-p progress file path
//	-no-filter disable the structural pre-filter
//	-filter-start/-filter-end diversity filter window bounds
//	-checkpoint-interval time between progress saves (e.g. "30s")
//	-checkpoint-every candidates between forced progress saves
//	-refresh-interval UI refresh rate (e.g. "500ms")
//	-log-file scanner log file path
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var templateWIF string
	var workers int
	var progressFile string
	var noFilter bool
	var filterStart, filterEnd int
	var checkpointInterval time.Duration
	var checkpointEvery int
	var refreshInterval time.Duration
	var logFile string
	var jsonConfigPath string

	flag.StringVar(&templateWIF, "t", "", "Template WIF ('?' marks unknown positions)")
	flag.IntVar(&workers, "w", 0, "Parallel scan workers")
	flag.StringVar(&progressFile, "p", "", "Progress file path")
	flag.BoolVar(&noFilter, "no-filter", false, "Disable the structural pre-filter")
	flag.IntVar(&filterStart, "filter-start", 0, "Diversity filter window start (inclusive)")
	flag.IntVar(&filterEnd, "filter-end", 0, "Diversity filter window end (exclusive)")
	flag.DurationVar(&checkpointInterval, "checkpoint-interval", 0, "Time between progress saves (e.g. 30s)")
	flag.IntVar(&checkpointEvery, "checkpoint-every", 0, "Candidates between forced progress saves")
	flag.DurationVar(&refreshInterval, "refresh-interval", 0, "UI refresh rate (e.g. 500ms)")
	flag.StringVar(&logFile, "log-file", "", "Scanner log file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Template: Template{
			WIF: templateWIF,
		},
		Scan: Scan{
			Workers:            workers,
			NoFilter:           noFilter,
			FilterStart:        filterStart,
			FilterEnd:          filterEnd,
			CheckpointInterval: checkpointInterval,
			CheckpointEvery:    checkpointEvery,
			RefreshInterval:    refreshInterval,
		},
		Store: Store{
			ProgressFile: progressFile,
		},
		Log: Log{
			File: logFile,
		},
		JSONFilePath: jsonConfigPath,
	}
}
