// Copyright (c) 2025 SciGo HDF5 Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/scigolib/ncinfo"
	"github.com/scigolib/ncinfo/internal/logging"
)

// Exit codes.
const (
	exitOK      = 0
	exitOpen    = 1
	exitSummary = 2
	exitAborted = 3
	exitOutput  = 4
	exitUsage   = 64
)

// exitError carries the process exit code out of the cobra command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func newRootCmd(stdout io.Writer, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "ncinfo <datasetPath> [outputPath]",
		Short: "Print the structure of a netCDF dataset",
		Long: `ncinfo prints the dimensions, variables and global attributes of a
netCDF dataset. The report is written to outputPath when given, otherwise to
standard output.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) > 1 {
				output = args[1]
			}
			return run(args[0], output, stdout, logger)
		},
	}
}

// execute runs the command and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	logger := logging.SetupLogger()
	cmd := newRootCmd(stdout, logger)
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	var exit *exitError
	if errors.As(err, &exit) {
		logger.Debug().Err(exit.err).Int("code", exit.code).Msg("exiting")
		return exit.code
	}
	_, _ = fmt.Fprintf(stderr, "Error: %v\n%s", err, cmd.UsageString())
	return exitUsage
}

// run writes the report of datasetPath to outputPath, or to stdout when
// outputPath is empty. The sink is flushed and closed on every path.
func run(datasetPath, outputPath string, stdout io.Writer, logger zerolog.Logger) (err error) {
	out := stdout
	if outputPath != "" {
		//nolint:gosec // G304: User-provided path is intentional for a report file
		f, cerr := os.Create(outputPath)
		if cerr != nil {
			logger.Error().Err(cerr).Str("output", outputPath).Msg("cannot create report file")
			return &exitError{code: exitOutput, err: cerr}
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = &exitError{code: exitOutput, err: cerr}
			}
		}()
		out = f
	}

	ds, err := openDataset(datasetPath, logger)
	if err != nil {
		logger.Error().Err(err).Str("dataset", datasetPath).Msg("cannot open dataset")
		if _, werr := fmt.Fprintf(out, "error opening '%s': %s\n", datasetPath, ncinfo.Reason(err)); werr != nil {
			return &exitError{code: exitOutput, err: werr}
		}
		return &exitError{code: exitOpen, err: ncinfo.WrapError(ncinfo.KindOpen, datasetPath, err)}
	}
	defer func() {
		if cerr := ds.Close(); cerr != nil {
			logger.Warn().Err(cerr).Str("dataset", datasetPath).Msg("closing dataset")
		}
	}()

	return reportExit(ncinfo.Report(out, ds, ncinfo.WithLogger(logger)))
}

// reportExit maps a report error to the exit code it ends the process with.
func reportExit(err error) error {
	if err == nil {
		return nil
	}
	switch ncinfo.KindOf(err) {
	case ncinfo.KindInquiry:
		return &exitError{code: exitSummary, err: err}
	case ncinfo.KindAborted:
		return &exitError{code: exitAborted, err: err}
	default:
		return &exitError{code: exitOutput, err: err}
	}
}
