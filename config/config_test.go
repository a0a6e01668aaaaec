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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/elbreak/probes"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.MinRunLength)
	assert.Equal(t, probes.DefaultDeletionThresholds, cfg.Thresholds(probes.Deletion))
	assert.Equal(t, probes.DefaultDuplicationThresholds, cfg.Thresholds(probes.Duplication))
}

func TestParseOverlay(t *testing.T) {
	cfg, err := Parse([]byte(`
min-run-length: 6
duplication:
  min: 2.5
  max: 10
layout:
  group-column: population
populations:
  A: 4988
  D: 12
`))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.MinRunLength)
	assert.Equal(t, probes.DefaultDeletionThresholds, cfg.Deletion)
	assert.Equal(t, probes.Thresholds{Min: 2.5, Max: 10}, cfg.Duplication)
	assert.Equal(t, "population", cfg.Layout.GroupColumn)
	assert.Equal(t, "TAMU_probe_", cfg.Layout.GenePrefix)
	assert.Equal(t, map[string]int{"A": 4988, "B": 3, "D": 12}, cfg.MergePopulations(map[string]int{"A": 2, "B": 3}))
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("min-run-length: 0\n"))
	assert.ErrorContains(t, err, "min-run-length")

	_, err = Parse([]byte("deletion: {min: 2, max: 1}\n"))
	assert.ErrorContains(t, err, "deletion thresholds")

	_, err = Parse([]byte("populations: {A: 0}\n"))
	assert.ErrorContains(t, err, "invalid population")

	_, err = Parse([]byte("min-run-lenght: 5\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "elbreak.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("min-run-length: 3\n"), 0666))
	cfg, err := Load(filename)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MinRunLength)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
