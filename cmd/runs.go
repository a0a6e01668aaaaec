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

	"github.com/exascience/elbreak/analysis"
	"github.com/exascience/elbreak/probes"
	"github.com/exascience/elbreak/runs"
)

// RunsHelp is the help string for this command.
const RunsHelp = "runs parameters:\n" +
	"elbreak runs probe-csv-file elruns-file\n" +
	"[--mode [deletion | duplication]]\n" +
	"[--config yaml-file]\n" +
	"[--min-run-length nr]\n" +
	"[--nr-of-threads nr]\n" +
	"[--timed]\n" +
	"[--log-path path]\n"

// Runs implements the elbreak runs command.
func Runs() error {
	var (
		modeName, configFile, logPath string
		minRunLength, nrOfThreads     int
		timed                         bool
	)

	var flags flag.FlagSet

	flags.StringVar(&modeName, "mode", "deletion", "kind of structural variant to call")
	flags.StringVar(&configFile, "config", "", "read analysis settings from a YAML file")
	flags.IntVar(&minRunLength, "min-run-length", 0, "minimum number of consecutive called probes")
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(&flags, 4, RunsHelp)

	input := getFilename(os.Args[2], RunsHelp)
	output := getFilename(os.Args[3], RunsHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}

	if !checkCreate("", output) {
		sanityChecksFailed = true
	}

	mode, err := probes.ParseMode(modeName)
	if err != nil {
		sanityChecksFailed = true
		log.Println("Error:", err)
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
		fmt.Fprint(os.Stderr, RunsHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " runs ", input, " ", output)
	fmt.Fprint(&command, " --mode ", mode)
	if configFile != "" {
		fmt.Fprint(&command, " --config ", configFile)
	}
	fmt.Fprint(&command, " --min-run-length ", cfg.MinRunLength)
	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
		fmt.Fprint(&command, " --nr-of-threads ", nrOfThreads)
	}
	if timed {
		fmt.Fprint(&command, " --timed")
	}
	if logPath != "" {
		fmt.Fprint(&command, " --log-path ", logPath)
	}

	// executing command

	log.Println("Executing command:\n", command.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var table *probes.Table
	timedRun(timed, "", "Loading probe table.", 1, func() {
		table, err = probes.LoadTableFile(input, cfg.Layout)
	})
	if err != nil {
		return err
	}

	var batch runs.BatchResult
	timedRun(timed, "", "Extracting runs.", 2, func() {
		batch, err = analysis.ExtractRuns(ctx, table, cfg, mode)
	})
	if err != nil {
		return err
	}
	logFailures(mode, batch)

	timedRun(timed, "", "Writing runs.", 3, func() {
		err = runs.ToElrunsFile(batch.Runs, output)
	})
	return err
}
