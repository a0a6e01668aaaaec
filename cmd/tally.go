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
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/exascience/elbreak/analysis"
	"github.com/exascience/elbreak/config"
	"github.com/exascience/elbreak/frequency"
	"github.com/exascience/elbreak/probes"
	"github.com/exascience/elbreak/runs"
)

// TallyHelp is the help string for this command.
const TallyHelp = "tally parameters:\n" +
	"elbreak tally probe-csv-file report-file\n" +
	"[--deletion-runs elruns-file]\n" +
	"[--duplication-runs elruns-file]\n" +
	"[--config yaml-file]\n" +
	"[--timed]\n" +
	"[--log-path path]\n"

// Tally implements the elbreak tally command.
func Tally() error {
	var (
		configFile, deletionRuns, duplicationRuns, logPath string
		timed                                              bool
	)

	var flags flag.FlagSet

	flags.StringVar(&deletionRuns, "deletion-runs", "", "read the deletion runs per sample from an .elruns file")
	flags.StringVar(&duplicationRuns, "duplication-runs", "", "read the duplication runs per sample from an .elruns file")
	flags.StringVar(&configFile, "config", "", "read analysis settings from a YAML file")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(&flags, 4, TallyHelp)

	input := getFilename(os.Args[2], TallyHelp)
	output := getFilename(os.Args[3], TallyHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}

	if !checkCreate("", output) {
		sanityChecksFailed = true
	}

	if deletionRuns == "" && duplicationRuns == "" {
		sanityChecksFailed = true
		log.Println("Error: Attempt to tally runs without specifying --deletion-runs or --duplication-runs.")
	}

	if deletionRuns != "" && !checkExist("--deletion-runs", deletionRuns) {
		sanityChecksFailed = true
	}

	if duplicationRuns != "" && !checkExist("--duplication-runs", duplicationRuns) {
		sanityChecksFailed = true
	}

	cfg, ok := loadConfig(configFile, 0)
	if !ok {
		sanityChecksFailed = true
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, TallyHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " tally ", input, " ", output)
	if deletionRuns != "" {
		fmt.Fprint(&command, " --deletion-runs ", deletionRuns)
	}
	if duplicationRuns != "" {
		fmt.Fprint(&command, " --duplication-runs ", duplicationRuns)
	}
	if configFile != "" {
		fmt.Fprint(&command, " --config ", configFile)
	}
	if timed {
		fmt.Fprint(&command, " --timed")
	}
	if logPath != "" {
		fmt.Fprint(&command, " --log-path ", logPath)
	}

	// executing command

	commandString := command.String()
	runID := uuid.New()

	log.Println("Executing command:\n", commandString)
	log.Println("Analysis run id:", runID)

	return runTally(input, output, deletionRuns, duplicationRuns, cfg, frequency.ReportHeader{
		RunID:        runID,
		Input:        input,
		Command:      commandString,
		MinRunLength: cfg.MinRunLength,
		Started:      time.Now(),
	}, timed)
}

// runTally reports the frequencies of runs stored in .elruns files.
// An empty filename skips that mode.
func runTally(input, output, deletionRuns, duplicationRuns string, cfg config.Config, header frequency.ReportHeader, timed bool) (err error) {
	var table *probes.Table
	timedRun(timed, "", "Loading probe table.", 1, func() {
		table, err = probes.LoadTableFile(input, cfg.Layout)
	})
	if err != nil {
		return err
	}

	var results []analysis.Result
	timedRun(timed, "", "Tallying runs.", 2, func() {
		for _, mode := range probes.Modes {
			filename := deletionRuns
			if mode == probes.Duplication {
				filename = duplicationRuns
			}
			if filename == "" {
				continue
			}
			var sampleRuns map[string][]runs.Run
			if sampleRuns, err = runs.FromElrunsFile(filename); err != nil {
				return
			}
			var result analysis.Result
			if result, err = analysis.TallyRuns(table, cfg, mode, sampleRuns); err != nil {
				return
			}
			results = append(results, result)
		}
	})
	if err != nil {
		return err
	}

	sections := reportSections(table, results)
	timedRun(timed, "", "Writing breakpoint frequency report.", 3, func() {
		err = frequency.WriteReportFile(output, header, sections...)
	})
	return err
}
