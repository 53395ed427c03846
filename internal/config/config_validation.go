// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Kurilov

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Engine tunables are deliberately not validated here: zero values mean
// "use the engine's built-in defaults".
func (cfg *StructuredConfig) validate() error {
	if cfg.Engine.MaxRetryAttempts < 0 {
		return ErrInvalidEngineConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Engine.MaxRetryAttempts < 0 || cfg.Engine.AutoSaveDebounce < 0 || cfg.Engine.RetryBaseDelay < 0 {
		return ErrInvalidEngineConfigs
	}

	return nil
}
