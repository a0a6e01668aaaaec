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

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/elbreak/config"
	"github.com/exascience/elbreak/frequency"
	"github.com/exascience/elbreak/runs"
)

const testTable = `,ethnicity,non_TAMU_probe_0,non_TAMU_probe_1,non_TAMU_probe_2,non_TAMU_probe_3,non_TAMU_probe_4,non_TAMU_probe_5,TAMU_probe_0,TAMU_probe_1,TAMU_probe_2,TAMU_probe_3,TAMU_probe_4,TAMU_probe_5
0,A,100,100,100,100,100,100,50,50,50,50,100,100
1,A,100,100,100,100,100,100,50,50,50,50,150,150
2,B,100,100,100,100,100,100,100,150,150,150,150,100
3,B,100,100,100,100,100,100,100,100,100,100,100,100
`

func writeTestTable(t *testing.T, dir string) string {
	t.Helper()
	name := filepath.Join(dir, "table.csv")
	require.NoError(t, os.WriteFile(name, []byte(testTable), 0666))
	return name
}

func testHeader(input string) frequency.ReportHeader {
	return frequency.ReportHeader{
		RunID:        uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		Input:        input,
		Command:      "elbreak test",
		MinRunLength: runs.DefaultMinLength,
		Started:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestRunTally(t *testing.T) {
	dir := t.TempDir()
	input := writeTestTable(t, dir)
	deletions := filepath.Join(dir, "deletions.elruns")
	require.NoError(t, runs.ToElrunsFile(map[string][]runs.Run{
		"0": {{First: 0, Last: 3}},
		"1": {{First: 0, Last: 3}},
		"2": nil,
	}, deletions))
	output := filepath.Join(dir, "report.txt")

	require.NoError(t, runTally(input, output, deletions, "", config.Default(), testHeader(input), false))

	report, err := os.ReadFile(output)
	require.NoError(t, err)
	text := string(report)
	assert.Contains(t, text, "## DELETION")
	assert.NotContains(t, text, "## DUPLICATION")
	assert.Contains(t, text, "A\t0\t3\t0-3\t2\t2\t100\n")
}

func TestRunTallyMissingRunsFile(t *testing.T) {
	dir := t.TempDir()
	input := writeTestTable(t, dir)
	err := runTally(input, filepath.Join(dir, "report.txt"), "", filepath.Join(dir, "missing.elruns"), config.Default(), testHeader(input), false)
	assert.Error(t, err)
}

func TestRunTallyUnknownGroup(t *testing.T) {
	dir := t.TempDir()
	input := writeTestTable(t, dir)
	duplications := filepath.Join(dir, "duplications.elruns")
	require.NoError(t, runs.ToElrunsFile(map[string][]runs.Run{"2": {{First: 1, Last: 4}}}, duplications))
	cfg := config.Default()
	cfg.Populations = map[string]int{"B": 0}
	err := runTally(input, filepath.Join(dir, "report.txt"), "", duplications, cfg, testHeader(input), false)
	assert.ErrorIs(t, err, frequency.ErrUnknownGroup)
}

// The report computed from stored runs matches the report computed
// from the probe table directly.
func TestRunTallyMatchesFrequencies(t *testing.T) {
	dir := t.TempDir()
	input := writeTestTable(t, dir)
	deletions := filepath.Join(dir, "deletions.elruns")
	duplications := filepath.Join(dir, "duplications.elruns")
	direct := filepath.Join(dir, "direct.txt")
	tallied := filepath.Join(dir, "tallied.txt")
	header := testHeader(input)

	require.NoError(t, runFrequencies(context.Background(), input, direct, deletions, duplications, config.Default(), header, false, ""))
	require.NoError(t, runTally(input, tallied, deletions, duplications, config.Default(), header, false))

	want, err := os.ReadFile(direct)
	require.NoError(t, err)
	got, err := os.ReadFile(tallied)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
	assert.True(t, strings.Contains(string(got), "B\t1\t4\t1-4\t1\t2\t50\n"))
}
