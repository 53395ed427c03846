package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the HTTP endpoint address of the remote item store.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientEngine holds the auto-save tunables for one canvas state engine
// instance.
type ClientEngine struct {
	// AutoSaveDebounce is the quiet period after the last mutation before a
	// batch save fires.
	AutoSaveDebounce time.Duration
	// MaxRetryAttempts is the number of retries after the first failed
	// batch-save attempt.
	MaxRetryAttempts int
	// RetryBaseDelay is the base of the exponential backoff between retries.
	RetryBaseDelay time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport address and timeout.
	Adapter ClientAdapter
	// Engine contains auto-save pipeline settings.
	Engine ClientEngine
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Engine: ClientEngine{
			AutoSaveDebounce: cfg.Engine.AutoSaveDebounce,
			MaxRetryAttempts: cfg.Engine.MaxRetryAttempts,
			RetryBaseDelay:   cfg.Engine.RetryBaseDelay,
		},
	}

	return clientCfg, clientCfg.validate()
}
