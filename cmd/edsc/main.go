// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Command edsc compiles CCSDS Electronic Data Sheets into typed Go packet
// definitions (section 6.1). It accepts one or more file glob patterns, an
// optional mission-parameter file, and an output target.
package main

import (
	"os"

	"github.com/nasa-eds/edsc/pkg/eds/edsc"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is filled when building with make, but *not* when installing via
// "go install" (matching the teacher's own version-reporting convention).
var Version string

var rootCmd = &cobra.Command{
	Use:   "edsc <eds-file-glob>...",
	Short: "A compiler for CCSDS Electronic Data Sheets.",
	Long:  "edsc ingests EDS XML packet descriptions and emits typed Go encode/decode packages.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Flags().String("mission-params", "", "path to a JSON mission-parameter namespace")
	rootCmd.Flags().String("output", "stdout", "emission target: stdout|rs|project")
	rootCmd.Flags().String("project-name", "", "project name (required when --output=project)")
	rootCmd.Flags().Bool("verbose", false, "increase logging verbosity")
	rootCmd.Flags().Bool("version", false, "print version and exit")

	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors: !term.IsTerminal(int(os.Stderr.Fd())),
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if v, _ := cmd.Flags().GetBool("version"); v {
		printVersion()
		return nil
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	missionParams, _ := cmd.Flags().GetString("mission-params")
	output, _ := cmd.Flags().GetString("output")
	projectName, _ := cmd.Flags().GetString("project-name")

	cfg := edsc.Config{
		Globs:         args,
		MissionParams: missionParams,
		Output:        output,
		ProjectName:   projectName,
	}

	return edsc.Run(cfg, os.Stdout)
}

func printVersion() {
	if Version != "" {
		logrus.Infof("edsc %s", Version)
		return
	}

	logrus.Info("edsc (unknown version)")
}
