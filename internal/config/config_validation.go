// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pedro Verardo

package config

import (
	"time"

	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

// applyDefaults fills zero-valued fields of the merged configuration with
// their documented defaults. Called once after all sources are merged so that
// every source may override a default.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = "skinone"
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = 24 * time.Hour
	}
	if cfg.App.Stages == "" {
		cfg.App.Stages = models.DefaultStages
	}
	if cfg.App.MaxUploadBytes == 0 {
		cfg.App.MaxUploadBytes = 10 << 20
	}
	if cfg.App.MaxBatchSize == 0 {
		cfg.App.MaxBatchSize = 20
	}
	if cfg.Storage.Media.Root == "" {
		cfg.Storage.Media.Root = "media"
	}
	if cfg.Storage.Media.ImagesDir == "" {
		cfg.Storage.Media.ImagesDir = "images"
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = ":8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if _, err := models.ParseStageSet(cfg.App.Stages); err != nil {
		return ErrInvalidStageConfigs
	}

	if cfg.App.MaxUploadBytes < 0 || cfg.App.MaxBatchSize < 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
