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

// elBreak computes how often deletion and duplication breakpoints
// occur at each probe location of a scanned region, per sample group,
// from microarray probe-intensity data.
//
// Please see https://github.com/exascience/elbreak for a documentation
// of the tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/exascience/elbreak/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: frequencies, runs, tally")
	fmt.Fprint(os.Stderr, "\n", cmd.FrequenciesHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.RunsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.TallyHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "frequencies":
		err = cmd.Frequencies()
	case "runs":
		err = cmd.Runs()
	case "tally":
		err = cmd.Tally()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Println("Unknown command:", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
