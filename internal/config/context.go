package config

import "context"

type configKey struct{}

// WithContext returns a copy of ctx carrying cfg.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the Config stored in ctx, or the defaults.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{
		Env:            DefaultEnv,
		LogLevel:       DefaultLogLevel,
		Port:           DefaultPort,
		MaxUploadBytes: DefaultMaxUploadBytes,
		Format:         DefaultFormat,
	}
}
