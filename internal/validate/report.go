// Package validate implements the Validator (spec §4.2): clamp knobs, drop
// unknown keys, enforce required ability keys, and produce a
// warning/error report, mirroring the teacher's gate/eval accumulate-then-
// decide shape.
package validate

import "fmt"

// Report is the accumulated result of validating one team plus its
// tactics (spec §4.2: "Returns a report with warnings[], errors[], ok").
type Report struct {
	Warnings []string
	Errors   []string
}

func (r *Report) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) Errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// OK reports whether no error was recorded.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

// Merge appends other's warnings/errors onto r.
func (r *Report) Merge(other *Report) {
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Errors = append(r.Errors, other.Errors...)
}

// StrictError is raised by the caller (cmd/simulate) when strict_validation
// is on and the report is not OK (spec §7: "first batch triggers a single
// compact exception summarizing up to 6 errors plus an overflow count").
type StrictError struct {
	Errors []string
}

func (e *StrictError) Error() string {
	const cap = 6
	shown := e.Errors
	overflow := 0
	if len(shown) > cap {
		overflow = len(shown) - cap
		shown = shown[:cap]
	}
	msg := "validation failed:"
	for _, s := range shown {
		msg += " " + s + ";"
	}
	if overflow > 0 {
		msg += fmt.Sprintf(" (+%d more)", overflow)
	}
	return msg
}

// NewStrictError builds a StrictError from a non-OK report, or returns nil
// if the report is OK.
func NewStrictError(rep *Report) error {
	if rep.OK() {
		return nil
	}
	return &StrictError{Errors: rep.Errors}
}
