// Copyright 2025 Poiesic Systems
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


package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the full runtime configuration. Values come from an optional
// YAML file overlaid with environment variables.
type Config struct {
	HTTPAddr string       `yaml:"http_addr" env:"ANSWERIT_HTTP_ADDR" env-default:":8080"`
	Search   SearchConfig `yaml:"search"`
	AI       AIConfig     `yaml:"ai"`
}

// SearchConfig configures the search aggregation client.
type SearchConfig struct {
	APIKey  string `yaml:"api_key" env:"SERPER_API_KEY"`
	BaseURL string `yaml:"base_url" env:"SERPER_BASE_URL"`
}

// AIConfig configures the embedding and chat model endpoints.
type AIConfig struct {
	EmbeddingHost  string  `yaml:"embedding_host" env:"ANSWERIT_EMBEDDING_HOST" env-default:"http://localhost:11434/v1"`
	ChatHost       string  `yaml:"chat_host" env:"ANSWERIT_CHAT_HOST" env-default:"http://localhost:11434/v1"`
	EmbeddingModel string  `yaml:"embedding_model" env:"ANSWERIT_EMBEDDING_MODEL" env-default:"embeddinggemma"`
	ChatModel      string  `yaml:"chat_model" env:"ANSWERIT_CHAT_MODEL" env-default:"qwen2.5:3b"`
	APIKey         string  `yaml:"api_key" env:"ANSWERIT_AI_API_KEY" env-default:"none"`
	Temperature    float64 `yaml:"temperature" env:"ANSWERIT_TEMPERATURE" env-default:"0.7"`
}

// Load reads configuration from the given YAML file overlaid with
// environment variables. An empty path loads from the environment alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("reading config from environment: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks that all settings a running service needs are present.
func (c *Config) Validate() error {
	if c.Search.APIKey == "" {
		return ErrSearchKeyMissing
	}
	if c.AI.Temperature < 0.0 || c.AI.Temperature > 2.0 {
		return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", c.AI.Temperature)
	}
	return nil
}
