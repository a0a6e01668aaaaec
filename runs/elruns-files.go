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

package runs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/exascience/pargo/pipeline"
)

// ElrunsHeader is the header line that every .elruns file starts with.
const ElrunsHeader = "# elruns format version 1.0\n"

// ToElrunsFile stores per-sample runs in an elBreak-defined .elruns
// file. Each run is a "sample<TAB>first<TAB>last" line. A sample
// without runs is a line with only the sample, so it is still present
// after FromElrunsFile. Lines are sorted by sample, then by First.
func ToElrunsFile(runs map[string][]Run, filename string) (err error) {
	pathname, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	output, err := os.Create(pathname)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := output.Close(); nerr != nil {
			if err == nil {
				err = nerr
			}
		}
	}()
	out := bufio.NewWriter(output)
	if _, err = out.WriteString(ElrunsHeader); err != nil {
		return err
	}
	samples := make([]string, 0, len(runs))
	for sample := range runs {
		samples = append(samples, sample)
	}
	sort.Strings(samples)
	var buf []byte
	for _, sample := range samples {
		sampleRuns := append([]Run(nil), runs[sample]...)
		SortByFirst(sampleRuns)
		if len(sampleRuns) == 0 {
			buf = append(append(buf[:0], sample...), '\n')
			if _, err = out.Write(buf); err != nil {
				return err
			}
			continue
		}
		for _, run := range sampleRuns {
			buf = append(buf[:0], sample...)
			buf = append(buf, '\t')
			buf = strconv.AppendInt(buf, int64(run.First), 10)
			buf = append(buf, '\t')
			buf = strconv.AppendInt(buf, int64(run.Last), 10)
			buf = append(buf, '\n')
			if _, err = out.Write(buf); err != nil {
				return err
			}
		}
	}
	return out.Flush()
}

// parseElrunsLine returns ok == false for a sample without runs.
func parseElrunsLine(line string) (sample string, run Run, ok bool, err error) {
	fields := strings.Split(line, "\t")
	if len(fields) == 1 && fields[0] != "" {
		return fields[0], Run{}, false, nil
	}
	if len(fields) != 3 || fields[0] == "" {
		return "", Run{}, false, fmt.Errorf("invalid runs line %v", line)
	}
	first, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", Run{}, false, fmt.Errorf("%v, in runs line %v", err, line)
	}
	last, err := strconv.Atoi(fields[2])
	if err != nil {
		return "", Run{}, false, fmt.Errorf("%v, in runs line %v", err, line)
	}
	if first < 0 || last < first {
		return "", Run{}, false, fmt.Errorf("invalid run bounds in runs line %v", line)
	}
	return fields[0], Run{First: first, Last: last}, true, nil
}

// FromElrunsFile loads per-sample runs from an elBreak-defined .elruns
// file. Samples without runs map onto a nil slice.
func FromElrunsFile(filename string) (runs map[string][]Run, err error) {
	pathname, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	in, err := os.Open(pathname)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := in.Close(); nerr != nil {
			if err == nil {
				err = nerr
			}
		}
	}()
	input := bufio.NewReader(in)
	header, err := input.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if header != ElrunsHeader {
		return nil, fmt.Errorf("%v is not a .elruns file - invalid header", filename)
	}
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(input))
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		lines := data.([]string)
		runs := make(map[string][]Run)
		for _, line := range lines {
			sample, run, ok, err := parseElrunsLine(line)
			if err != nil {
				p.SetErr(err)
				return runs
			}
			if ok {
				runs[sample] = append(runs[sample], run)
			} else if _, found := runs[sample]; !found {
				runs[sample] = nil
			}
		}
		return runs
	})))
	runs = make(map[string][]Run)
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		for sample, sampleRuns := range data.(map[string][]Run) {
			runs[sample] = append(runs[sample], sampleRuns...)
		}
		return data
	})))
	p.Run()
	if err = p.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
