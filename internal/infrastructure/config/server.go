package config

import "time"

// ServerConfig holds the HTTP/WebSocket server settings used by `serve`
type ServerConfig struct {
	Address      string        `mapstructure:"address" validate:"required,hostname_port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// CatalogConfig points at an optional YAML file replacing the built-in
// starter components and missions
type CatalogConfig struct {
	Path string `mapstructure:"path" validate:"omitempty,file"`
}
