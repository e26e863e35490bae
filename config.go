// Copyright 2025 Naren Yellavula
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
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = ".lazyavl.yaml"

type LogConfig struct {
	Level string `yaml:"level"`
}

type RunConfig struct {
	ShowProgress bool `yaml:"show_progress"`
}

type ShellConfig struct {
	Prompt string `yaml:"prompt"`
	Color  bool   `yaml:"color"`
}

type Config struct {
	Log   LogConfig   `yaml:"log"`
	Run   RunConfig   `yaml:"run"`
	Shell ShellConfig `yaml:"shell"`
}

var defaultConfig = Config{
	Log: LogConfig{
		Level: "warn",
	},
	Run: RunConfig{
		ShowProgress: false,
	},
	Shell: ShellConfig{
		Prompt: "avl> ",
		Color:  true,
	},
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

// LoadConfig reads ~/.lazyavl.yaml. A missing file is not an error; any
// other failure returns the defaults together with the error.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		cfg := defaultConfig
		return &cfg, nil
	}
	return LoadConfigFrom(configPath)
}

func LoadConfigFrom(configPath string) (*Config, error) {
	cfg := defaultConfig

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return &cfg, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Fields missing from the file keep their defaults.
	loaded := defaultConfig
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return &cfg, fmt.Errorf("failed to parse config %s: %w", configPath, err)
	}
	return &loaded, nil
}

func writeDefaultConfig(configPath string) error {
	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// displaySettings prints the effective configuration, writing a default
// config file first if there is none at configPath.
func displaySettings(w io.Writer, configPath string) error {
	created := false
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := writeDefaultConfig(configPath); err != nil {
			return err
		}
		created = true
	}

	cfg, err := LoadConfigFrom(configPath)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(w, "Config file: %s (newly created)\n\n", configPath)
	} else {
		fmt.Fprintf(w, "Config file: %s\n\n", configPath)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
