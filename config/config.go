// elBreak: a tool for computing breakpoint frequencies from probe data.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elbreak/blob/master/LICENSE.txt>.

// Package config holds the analysis settings that are domain
// assumptions rather than part of the input data.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/exascience/elbreak/probes"
	"github.com/exascience/elbreak/runs"
)

// Config is the analysis configuration. It can be loaded from a YAML
// file, for example:
//
//	min-run-length: 4
//	deletion: {min: 0, max: 1.05}
//	duplication: {min: 2.95, max: 22.6}
//	layout:
//	  group-column: ethnicity
//	  gene-prefix: TAMU_probe_
//	  control-prefix: non_TAMU_probe_
//	populations: {A: 4988, B: 2543, C: 2469}
type Config struct {
	MinRunLength int               `yaml:"min-run-length"`
	Deletion     probes.Thresholds `yaml:"deletion"`
	Duplication  probes.Thresholds `yaml:"duplication"`
	Layout       probes.Layout     `yaml:"layout"`
	// Populations overrides the group sizes counted in the input.
	Populations map[string]int `yaml:"populations"`
}

// Default returns the configuration for the simulated TAMU region
// data.
func Default() Config {
	return Config{
		MinRunLength: runs.DefaultMinLength,
		Deletion:     probes.DefaultDeletionThresholds,
		Duplication:  probes.DefaultDuplicationThresholds,
		Layout:       probes.DefaultLayout(),
	}
}

// Parse overlays the YAML settings in data on the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Load reads a configuration file. Settings not in the file keep
// their default values.
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%v, in configuration file %v", err, filename)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (cfg Config) Validate() error {
	if cfg.MinRunLength < 1 {
		return fmt.Errorf("invalid min-run-length %v", cfg.MinRunLength)
	}
	if cfg.Deletion.Min >= cfg.Deletion.Max {
		return fmt.Errorf("invalid deletion thresholds %v-%v", cfg.Deletion.Min, cfg.Deletion.Max)
	}
	if cfg.Duplication.Min >= cfg.Duplication.Max {
		return fmt.Errorf("invalid duplication thresholds %v-%v", cfg.Duplication.Min, cfg.Duplication.Max)
	}
	if cfg.Layout.GroupColumn == "" || cfg.Layout.GenePrefix == "" || cfg.Layout.ControlPrefix == "" {
		return errors.New("incomplete layout")
	}
	for group, population := range cfg.Populations {
		if population <= 0 {
			return fmt.Errorf("invalid population %v for group %v", population, group)
		}
	}
	return nil
}

// Thresholds returns the copy-number thresholds for the given mode.
func (cfg Config) Thresholds(mode probes.Mode) probes.Thresholds {
	if mode == probes.Duplication {
		return cfg.Duplication
	}
	return cfg.Deletion
}

// MergePopulations returns the counted group sizes with the
// configured overrides applied.
func (cfg Config) MergePopulations(counted map[string]int) map[string]int {
	result := make(map[string]int, len(counted)+len(cfg.Populations))
	for group, population := range counted {
		result[group] = population
	}
	for group, population := range cfg.Populations {
		result[group] = population
	}
	return result
}
