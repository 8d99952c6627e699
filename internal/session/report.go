// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package session

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/githerd/internal/color"
	"github.com/matt-FFFFFF/githerd/internal/discover"
)

// Report is the final tally of a batch run.
type Report struct {
	Operation   string
	Mode        discover.Mode
	AutoRespond bool
	Total       int
	Successes   []Outcome
	Failures    []Outcome
	Skips       []Outcome
	Elapsed     time.Duration

	// InvariantErr is non-nil when the recorded outcomes are internally
	// inconsistent. It is surfaced loudly but never crashes reporting; a
	// degraded report is more useful than none.
	InvariantErr error
}

// Report builds the final tally from the recorded outcomes. total is the
// number of targets the run set out to process, including skips.
func (s *Session) Report(total int) *Report {
	r := &Report{
		Operation:   s.Operation,
		Mode:        s.Mode,
		AutoRespond: s.AutoRespond,
		Total:       total,
		Elapsed:     time.Since(s.started),
	}

	for _, o := range s.outcomes {
		switch o.Status {
		case StatusSuccess:
			r.Successes = append(r.Successes, o)
		case StatusFailure:
			r.Failures = append(r.Failures, o)
		case StatusSkipped:
			r.Skips = append(r.Skips, o)
		}
	}

	// The sum of the three categories must equal the total target count.
	var merr *multierror.Error

	if got := len(r.Successes) + len(r.Failures) + len(r.Skips); got != total {
		merr = multierror.Append(merr, fmt.Errorf(
			"outcome counts do not sum to total: %d success + %d failure + %d skipped != %d targets",
			len(r.Successes), len(r.Failures), len(r.Skips), total,
		))
	}

	if len(s.outcomes) != len(s.recorded) {
		merr = multierror.Append(merr, fmt.Errorf(
			"outcome list length %d does not match recorded target count %d",
			len(s.outcomes), len(s.recorded),
		))
	}

	r.InvariantErr = merr.ErrorOrNil()

	return r
}

// ExitCode maps the report to the process exit code: 0 when every target
// succeeded or was legitimately skipped, 1 when at least one target failed.
func (r *Report) ExitCode() int {
	if len(r.Failures) > 0 {
		return 1
	}

	return 0
}

// WriteText renders the report to w in a human-readable form.
func (r *Report) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "\n%s %s\n", //nolint:errcheck
		color.Colorize("Batch complete:", color.Bold),
		fmt.Sprintf("%s over %d targets in %s", r.Operation, r.Total, r.Elapsed.Round(time.Millisecond)),
	)

	writeGroup(w, color.Colorize("✓", color.FgGreen), "succeeded", r.Successes, func(o Outcome) string {
		return ""
	})
	writeGroup(w, color.Colorize("✗", color.FgRed), "failed", r.Failures, func(o Outcome) string {
		detail := fmt.Sprintf(" (exit code: %d)", o.ExitCode)
		if o.Reason != "" {
			detail += " " + o.Reason
		}

		return detail
	})
	writeGroup(w, color.Colorize("~", color.FgYellow), "skipped", r.Skips, func(o Outcome) string {
		if o.Reason == "" {
			return ""
		}

		return " (" + o.Reason + ")"
	})

	if r.InvariantErr != nil {
		fmt.Fprintf(w, "\n%s %s\n", //nolint:errcheck
			color.Colorize("WARNING: report inconsistency:", color.Bold, color.FgRed),
			r.InvariantErr.Error(),
		)
	}

	return nil
}

func writeGroup(w io.Writer, marker, verb string, outcomes []Outcome, detail func(Outcome) string) {
	fmt.Fprintf(w, "\n%s %d %s\n", marker, len(outcomes), verb) //nolint:errcheck

	for _, o := range outcomes {
		fmt.Fprintf(w, "  %s %s%s\n", marker, o.Target.Name, detail(o)) //nolint:errcheck
	}
}

type jsonOutcome struct {
	Target   string `json:"target"`
	Path     string `json:"path"`
	Status   string `json:"status"`
	ExitCode int    `json:"exitCode"`
	Reason   string `json:"reason,omitempty"`
}

type jsonReport struct {
	Operation   string        `json:"operation"`
	Mode        string        `json:"mode"`
	AutoRespond bool          `json:"autoRespond"`
	Total       int           `json:"total"`
	Succeeded   int           `json:"succeeded"`
	Failed      int           `json:"failed"`
	Skipped     int           `json:"skipped"`
	Elapsed     string        `json:"elapsed"`
	Outcomes    []jsonOutcome `json:"outcomes"`
	Warning     string        `json:"warning,omitempty"`
}

// WriteJSON renders the report as JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	jr := jsonReport{
		Operation:   r.Operation,
		Mode:        r.Mode.String(),
		AutoRespond: r.AutoRespond,
		Total:       r.Total,
		Succeeded:   len(r.Successes),
		Failed:      len(r.Failures),
		Skipped:     len(r.Skips),
		Elapsed:     r.Elapsed.Round(time.Millisecond).String(),
	}

	for _, group := range [][]Outcome{r.Successes, r.Failures, r.Skips} {
		for _, o := range group {
			jr.Outcomes = append(jr.Outcomes, jsonOutcome{
				Target:   o.Target.Name,
				Path:     o.Target.Path,
				Status:   o.Status.String(),
				ExitCode: o.ExitCode,
				Reason:   o.Reason,
			})
		}
	}

	if r.InvariantErr != nil {
		jr.Warning = r.InvariantErr.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(jr) //nolint:wrapcheck
}
