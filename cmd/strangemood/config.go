// Copyright 2026 The Strangemood Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment defaults for the command line flags
type Config struct {
	LogLevel        string `env:"STRANGEMOOD_LOG_LEVEL"         envDefault:"info"`
	RejectZeroPrice bool   `env:"STRANGEMOOD_REJECT_ZERO_PRICE" envDefault:"false"`
	Listen          string `env:"STRANGEMOOD_LISTEN"            envDefault:"127.0.0.1:8080"`
	MaxAttempts     int    `env:"STRANGEMOOD_MAX_ATTEMPTS"      envDefault:"3"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
	), nil
}
