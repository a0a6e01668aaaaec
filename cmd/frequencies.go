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
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/exascience/elbreak/analysis"
	"github.com/exascience/elbreak/config"
	"github.com/exascience/elbreak/frequency"
	"github.com/exascience/elbreak/probes"
	"github.com/exascience/elbreak/runs"
)

// FrequenciesHelp is the help string for this command.
const FrequenciesHelp = "frequencies parameters:\n" +
	"elbreak frequencies probe-csv-file report-file\n" +
	"[--config yaml-file]\n" +
	"[--min-run-length nr]\n" +
	"[--deletion-runs elruns-file]\n" +
	"[--duplication-runs elruns-file]\n" +
	"[--nr-of-threads nr]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

func logFailures(mode probes.Mode, batch runs.BatchResult) {
	for _, failure := range batch.Failures {
		log.Printf("Warning: No %v runs for sample %v: %v.\n", mode, failure.Sample, failure.Err)
	}
}

func reportSections(table *probes.Table, results []analysis.Result) []frequency.Section {
	groups := table.Groups()
	sections := make([]frequency.Section, 0, len(results))
	for _, result := range results {
		logFailures(result.Mode, result.Batch)
		if ungrouped := frequency.Ungrouped(result.Batch.Runs, groups); len(ungrouped) > 0 {
			log.Printf("Warning: Ignoring %v runs of %v samples without a group.\n", result.Mode, len(ungrouped))
		}
		sections = append(sections, result.Section())
	}
	return sections
}

// Frequencies implements the elbreak frequencies command.
func Frequencies() error {
	var (
		configFile, deletionRuns, duplicationRuns, profile, logPath string
		minRunLength, nrOfThreads                                   int
		timed                                                       bool
	)

	var flags flag.FlagSet

	flags.StringVar(&configFile, "config", "", "read analysis settings from a YAML file")
	flags.IntVar(&minRunLength, "min-run-length", 0, "minimum number of consecutive called probes")
	flags.StringVar(&deletionRuns, "deletion-runs", "", "write the deletion runs per sample to an .elruns file")
	flags.StringVar(&duplicationRuns, "duplication-runs", "", "write the duplication runs per sample to an .elruns file")
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(&flags, 4, FrequenciesHelp)

	input := getFilename(os.Args[2], FrequenciesHelp)
	output := getFilename(os.Args[3], FrequenciesHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}

	if !checkCreate("", output) {
		sanityChecksFailed = true
	}

	if deletionRuns != "" && !checkCreate("--deletion-runs", deletionRuns) {
		sanityChecksFailed = true
	}

	if duplicationRuns != "" && !checkCreate("--duplication-runs", duplicationRuns) {
		sanityChecksFailed = true
	}

	if profile != "" && !checkCreate("--profile", profile) {
		sanityChecksFailed = true
	}

	cfg, ok := loadConfig(configFile, minRunLength)
	if !ok {
		sanityChecksFailed = true
	}

	if nrOfThreads < 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid nr-of-threads: ", nrOfThreads)
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, FrequenciesHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " frequencies ", input, " ", output)
	if configFile != "" {
		fmt.Fprint(&command, " --config ", configFile)
	}
	fmt.Fprint(&command, " --min-run-length ", cfg.MinRunLength)
	if deletionRuns != "" {
		fmt.Fprint(&command, " --deletion-runs ", deletionRuns)
	}
	if duplicationRuns != "" {
		fmt.Fprint(&command, " --duplication-runs ", duplicationRuns)
	}
	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
		fmt.Fprint(&command, " --nr-of-threads ", nrOfThreads)
	}
	if timed {
		fmt.Fprint(&command, " --timed")
	}
	if profile != "" {
		fmt.Fprint(&command, " --profile ", profile)
	}
	if logPath != "" {
		fmt.Fprint(&command, " --log-path ", logPath)
	}

	// executing command

	commandString := command.String()
	runID := uuid.New()

	log.Println("Executing command:\n", commandString)
	log.Println("Analysis run id:", runID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runFrequencies(ctx, input, output, deletionRuns, duplicationRuns, cfg, frequency.ReportHeader{
		RunID:        runID,
		Input:        input,
		Command:      commandString,
		MinRunLength: cfg.MinRunLength,
		Started:      time.Now(),
	}, timed, profile)
}

func runFrequencies(ctx context.Context, input, output, deletionRuns, duplicationRuns string, cfg config.Config, header frequency.ReportHeader, timed bool, profile string) (err error) {
	var table *probes.Table
	timedRun(timed, profile, "Loading probe table.", 1, func() {
		table, err = probes.LoadTableFile(input, cfg.Layout)
	})
	if err != nil {
		return err
	}
	log.Printf("Loaded %v samples with %v probes.\n", len(table.Samples), len(table.Probes))

	var results []analysis.Result
	timedRun(timed, profile, "Computing breakpoint frequencies.", 2, func() {
		results, err = analysis.Analyze(ctx, table, cfg, probes.Modes...)
	})
	if err != nil {
		return err
	}

	sections := reportSections(table, results)

	timedRun(timed, profile, "Writing breakpoint frequency report.", 3, func() {
		err = frequency.WriteReportFile(output, header, sections...)
		for _, result := range results {
			if err != nil {
				return
			}
			switch {
			case result.Mode == probes.Deletion && deletionRuns != "":
				err = runs.ToElrunsFile(result.Batch.Runs, deletionRuns)
			case result.Mode == probes.Duplication && duplicationRuns != "":
				err = runs.ToElrunsFile(result.Batch.Runs, duplicationRuns)
			}
		}
	})
	return err
}
