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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/exascience/elbreak/probes"
	"github.com/exascience/elbreak/runs"
)

// ReportHeader describes the analysis a report belongs to.
type ReportHeader struct {
	RunID        uuid.UUID
	Input        string
	Command      string
	MinRunLength int
	Started      time.Time
}

// A Section is the part of a report for one analysis mode.
type Section struct {
	Mode       probes.Mode
	Thresholds probes.Thresholds
	Rows       []Row
	// Failures lists the samples for which no runs could be
	// extracted.
	Failures []runs.SampleFailure
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteReport prints a tab-separated breakpoint frequency report with
// one section per mode.
func WriteReport(w io.Writer, header ReportHeader, sections ...Section) error {
	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "## elbreak.BreakpointFrequencies")
	fmt.Fprintf(out, "# RUN_ID=%v INPUT=%v MIN_RUN_LENGTH=%v\n", header.RunID, header.Input, header.MinRunLength)
	if header.Command != "" {
		fmt.Fprintln(out, "# COMMAND:", header.Command)
	}
	fmt.Fprintln(out, "# Started on:", header.Started.Format("Mon Jan 02 15:04:05 MST 2006"))
	fmt.Fprintln(out)
	for _, section := range sections {
		fmt.Fprintf(out, "## %v\tMIN_CN=%v\tMAX_CN=%v\tFAILED_SAMPLES=%v\n",
			strings.ToUpper(section.Mode.String()),
			formatFloat(section.Thresholds.Min), formatFloat(section.Thresholds.Max),
			len(section.Failures))
		fmt.Fprintln(out, "GROUP\t5'_BREAKPOINT\t3'_BREAKPOINT\tBREAKPOINT_REGION\tCOUNT\tPOPULATION\tPERCENT")
		for _, row := range section.Rows {
			fmt.Fprintf(out, "%v\t%v\t%v\t%v\t%v\t%v\t%s\n",
				row.Group, row.First, row.Last, row.Region(), row.Count, row.Population, formatFloat(row.Percent))
		}
		for _, failure := range section.Failures {
			fmt.Fprintf(out, "# FAILED\t%v\t%v\n", failure.Sample, failure.Err)
		}
		fmt.Fprintln(out)
	}
	return out.Flush()
}

// WriteReportFile prints a breakpoint frequency report to the named
// file.
func WriteReportFile(filename string, header ReportHeader, sections ...Section) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := file.Close(); err == nil {
			err = nerr
		}
	}()
	return WriteReport(file, header, sections...)
}
