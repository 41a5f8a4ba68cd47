package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing token sign key or negative upload limits).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStageConfigs indicates an unparsable stage vocabulary.
	ErrInvalidStageConfigs = errors.New("invalid stage configuration")
)
