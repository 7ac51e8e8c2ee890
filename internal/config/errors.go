package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidTemplateConfigs indicates a missing or empty template WIF.
	ErrInvalidTemplateConfigs = errors.New("invalid template configuration")
	// ErrCandidatePositionOutOfRange indicates a candidate-set override
	// whose 1-based position falls outside the template.
	ErrCandidatePositionOutOfRange = errors.New("candidate position outside template")
	// ErrInvalidScanConfigs indicates invalid scan-loop settings (for
	// example, zero workers or a non-positive checkpoint cadence).
	ErrInvalidScanConfigs = errors.New("invalid scan configuration")
	// ErrInvalidFilterWindow indicates an empty or inverted diversity
	// filter window while the filter is enabled.
	ErrInvalidFilterWindow = errors.New("invalid filter window")
	// ErrInvalidStoreConfigs indicates invalid persistence settings (for
	// example, an empty progress file path).
	ErrInvalidStoreConfigs = errors.New("invalid store configuration")
)
