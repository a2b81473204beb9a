// Copyright (c) 2025 SciGo HDF5 Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package ncinfo

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// State is a step of the report walk.
type State int

// Walk states. Each is entered at most once per report, in this order;
// StateAborted replaces the rest of the walk after a variable descriptor
// failure.
const (
	StateInit State = iota
	StateDimensions
	StateVariables
	StateGlobalAttributes
	StateDone
	StateAborted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateDimensions:
		return "dimensions"
	case StateVariables:
		return "variables"
	case StateGlobalAttributes:
		return "global_attributes"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state_%d", int(s))
	}
}

// ReportOption configures Report.
type ReportOption func(*reportConfig)

type reportConfig struct {
	logger   zerolog.Logger
	observer func(State)
}

// WithLogger sets the logger receiving walk diagnostics. Reports are silent
// by default.
func WithLogger(logger zerolog.Logger) ReportOption {
	return func(cfg *reportConfig) {
		cfg.logger = logger
	}
}

// WithStateObserver registers fn to be called on every state transition.
func WithStateObserver(fn func(State)) ReportOption {
	return func(cfg *reportConfig) {
		cfg.observer = fn
	}
}

// Report writes the structure report of ds to w.
//
// The output is buffered and flushed before Report returns, whatever the
// outcome. Errors returned are *Error values: KindInquiry when the dataset
// summary cannot be read, KindAborted when a variable descriptor cannot be
// read, KindOutput when w fails.
func Report(w io.Writer, ds Dataset, opts ...ReportOption) error {
	cfg := &reportConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(cfg)
	}

	r := &reporter{
		ds:       ds,
		out:      &sink{w: bufio.NewWriter(w)},
		log:      cfg.logger,
		observer: cfg.observer,
	}

	err := r.walk()
	if ferr := r.out.flush(); ferr != nil {
		r.log.Error().Err(ferr).Msg("report output failed")
		if err == nil {
			err = WrapError(KindOutput, "writing report", ferr)
		}
	}
	return err
}

type reporter struct {
	ds       Dataset
	out      *sink
	log      zerolog.Logger
	observer func(State)
	state    State
}

func (r *reporter) enter(s State) {
	r.log.Debug().Stringer("from", r.state).Stringer("to", s).Msg("report state")
	r.state = s
	if r.observer != nil {
		r.observer(s)
	}
}

func (r *reporter) walk() error {
	r.enter(StateInit)

	sum, err := r.ds.Summary()
	if err != nil {
		r.log.Error().Err(err).Msg("dataset inquiry failed")
		r.out.printf("error getting dataset description: %s\n", Reason(err))
		return WrapError(KindInquiry, "getting dataset description", err)
	}
	r.log.Debug().
		Int("dims", sum.NDims).
		Int("vars", sum.NVars).
		Int("global_attrs", sum.NGlobalAttrs).
		Int("unlimited_dim", sum.UnlimitedDim).
		Msg("dataset summary")

	r.enter(StateDimensions)
	r.out.print("dimensions\n----------\n")
	for i := 0; i < sum.NDims; i++ {
		r.describeDimension(i)
	}

	r.enter(StateVariables)
	r.out.print("\nvariables\n---------\n")
	for i := 0; i < sum.NVars; i++ {
		if i > 0 {
			r.out.print("\n")
		}
		if err := r.describeVariable(i); err != nil {
			r.enter(StateAborted)
			return WrapError(KindAborted, "report aborted", err)
		}
	}

	r.enter(StateGlobalAttributes)
	if sum.NGlobalAttrs > 0 {
		r.out.printf("\nglobal attributes (%d)\n-----------------\n", sum.NGlobalAttrs)
		for i := 0; i < sum.NGlobalAttrs; i++ {
			r.describeGlobalAttribute(i)
		}
	}

	r.enter(StateDone)
	return nil
}

func (r *reporter) describeGlobalAttribute(index int) {
	name, err := r.ds.AttributeName(Global, index)
	if err != nil {
		r.log.Warn().Err(err).Int("index", index).Msg("global attribute name lookup failed")
		r.out.printf("error getting name of global attribute number %d: %s\n", index, Reason(err))
		return
	}

	att, err := r.ds.Attribute(Global, name)
	if err != nil {
		r.log.Warn().Err(err).Str("attribute", name).Msg("global attribute inquiry failed")
		r.out.printf("error getting global attribute with name '%s': %s\n", name, Reason(err))
		return
	}

	r.out.printf("\t\t%s: ", name)
	r.renderAttribute(Global, name, TagOf(att.Type), att.Len)
}

// sink is a buffered writer that keeps the first write error and drops
// everything written after it.
type sink struct {
	w   *bufio.Writer
	err error
}

func (s *sink) print(text string) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.WriteString(text)
}

func (s *sink) printf(format string, args ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *sink) flush() error {
	if s.err != nil {
		return s.err
	}
	return s.w.Flush()
}
