package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid. Callers should match with [errors.Is].
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing remote store address).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidEngineConfigs indicates invalid engine auto-save settings
	// (for example, a negative retry count or interval).
	ErrInvalidEngineConfigs = errors.New("invalid engine configuration")
)
