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

package frequency

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/elbreak/probes"
	"github.com/exascience/elbreak/runs"
)

func TestTally(t *testing.T) {
	sampleRuns := map[string][]runs.Run{
		"0": {{First: 1, Last: 4}},
		"1": {{First: 1, Last: 4}, {First: 10, Last: 14}},
		"2": {{First: 1, Last: 4}},
		"3": nil,
		"4": {{First: 0, Last: 3}},
	}
	groups := map[string]string{"0": "A", "1": "A", "2": "B", "3": "B"}
	populations := map[string]int{"A": 4, "B": 2}

	rows, err := Tally(sampleRuns, groups, populations)
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{Group: "A", First: 1, Last: 4, Count: 2, Population: 4, Percent: 50},
		{Group: "A", First: 10, Last: 14, Count: 1, Population: 4, Percent: 25},
		{Group: "B", First: 1, Last: 4, Count: 1, Population: 2, Percent: 50},
	}, rows)
	assert.Equal(t, "10-14", rows[1].Region())
	assert.Equal(t, []string{"4"}, Ungrouped(sampleRuns, groups))
}

func TestTallyOpenGroups(t *testing.T) {
	sampleRuns := map[string][]runs.Run{
		"x": {{First: 0, Last: 5}},
		"y": {{First: 0, Last: 5}},
	}
	groups := map[string]string{"x": "north", "y": "south"}
	rows, err := Tally(sampleRuns, groups, map[string]int{"north": 10, "south": 5})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "north", rows[0].Group)
	assert.InDelta(t, 10.0, rows[0].Percent, 1e-9)
	assert.InDelta(t, 20.0, rows[1].Percent, 1e-9)
}

func TestTallyUnknownGroup(t *testing.T) {
	sampleRuns := map[string][]runs.Run{"x": {{First: 0, Last: 5}}}
	_, err := Tally(sampleRuns, map[string]string{"x": "C"}, map[string]int{"A": 1})
	assert.True(t, errors.Is(err, ErrUnknownGroup))
}

func TestTallyUnknownGroups(t *testing.T) {
	sampleRuns := map[string][]runs.Run{
		"w": {{First: 0, Last: 5}},
		"x": {{First: 0, Last: 5}, {First: 9, Last: 12}},
		"y": {{First: 0, Last: 5}},
		"z": {{First: 0, Last: 5}},
	}
	groups := map[string]string{"w": "E", "x": "C", "y": "A", "z": "D"}
	for i := 0; i < 20; i++ {
		_, err := Tally(sampleRuns, groups, map[string]int{"A": 1})
		require.True(t, errors.Is(err, ErrUnknownGroup))
		assert.Equal(t, "unknown group: no population for C, D, E", err.Error())
	}
}

func TestTallyEmpty(t *testing.T) {
	rows, err := Tally(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWriteReport(t *testing.T) {
	header := ReportHeader{
		RunID:        uuid.MustParse("7b0e5c2a-3f41-4c8e-9d0b-2a61f5e8c934"),
		Input:        "TAMU_data.csv",
		Command:      "elbreak frequencies TAMU_data.csv frequencies.txt",
		MinRunLength: 4,
		Started:      time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
	deletions := Section{
		Mode:       probes.Deletion,
		Thresholds: probes.DefaultDeletionThresholds,
		Rows:       []Row{{Group: "A", First: 1, Last: 4, Count: 1, Population: 3, Percent: 100.0 / 3}},
		Failures:   []runs.SampleFailure{{Sample: "9", Err: runs.ErrInvalidInput}},
	}
	duplications := Section{
		Mode:       probes.Duplication,
		Thresholds: probes.DefaultDuplicationThresholds,
	}
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, header, deletions, duplications))
	report := buf.String()

	assert.Contains(t, report, "# RUN_ID=7b0e5c2a-3f41-4c8e-9d0b-2a61f5e8c934 INPUT=TAMU_data.csv MIN_RUN_LENGTH=4\n")
	assert.Contains(t, report, "# Started on: Mon Oct 19 12:00:00 UTC 2026\n")
	assert.Contains(t, report, "## DELETION\tMIN_CN=0\tMAX_CN=1.05\tFAILED_SAMPLES=1\n")
	assert.Contains(t, report, "A\t1\t4\t1-4\t1\t3\t33.333333333333336\n")
	assert.Contains(t, report, "# FAILED\t9\tinvalid input\n")
	assert.Contains(t, report, "## DUPLICATION\tMIN_CN=2.95\tMAX_CN=22.6\tFAILED_SAMPLES=0\n")
	assert.Equal(t, 2, strings.Count(report, "GROUP\t5'_BREAKPOINT\t3'_BREAKPOINT"))
}

func TestWriteReportFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "frequencies.txt")
	require.NoError(t, WriteReportFile(filename, ReportHeader{RunID: uuid.New()}, Section{Mode: probes.Deletion}))
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "## elbreak.BreakpointFrequencies\n"))
}
