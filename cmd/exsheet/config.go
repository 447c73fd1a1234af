package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ukaji3/exsheet-go/internal/logging"
)

const defaultListenAddr = "127.0.0.1:8080"

// config.toml keys. Keys absent from the file keep their defaults.
type fileConfig struct {
	Sheet    string `toml:"sheet"`
	Pretty   bool   `toml:"pretty"`
	LogLevel string `toml:"log_level"`
	Listen   string `toml:"listen"`
}

type cliConfig struct {
	Sheet    string
	Pretty   bool
	LogLevel string // empty keeps the runtime logging default
	Listen   string
}

func defaultCLIConfig() cliConfig {
	return cliConfig{Listen: defaultListenAddr}
}

func loadCLIConfig(path string) (cliConfig, error) {
	cfg := defaultCLIConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cliConfig{}, fmt.Errorf("load exsheet config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cliConfig{}, fmt.Errorf("load exsheet config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("sheet") {
		cfg.Sheet = strings.TrimSpace(raw.Sheet)
	}

	if meta.IsDefined("pretty") {
		cfg.Pretty = raw.Pretty
	}

	if meta.IsDefined("log_level") {
		if _, ok := logging.ParseLevel(raw.LogLevel); !ok {
			return cliConfig{}, fmt.Errorf("parse log_level: unknown level %q", raw.LogLevel)
		}
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if meta.IsDefined("listen") {
		if listen := strings.TrimSpace(raw.Listen); listen != "" {
			cfg.Listen = listen
		}
	}

	return cfg, nil
}
