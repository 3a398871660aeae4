package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds a caller can fix by changing its input.
var (
	ErrInvalidTimeFormat   = errors.New("invalid time format")
	ErrInvalidTimeRange    = errors.New("invalid time range")
	ErrWorkHoursOutOfRange = errors.New("work hours out of range")
	ErrScheduleOverflow    = errors.New("schedule overflow")
	ErrInvalidInput        = errors.New("invalid input")
)

// PlanError wraps a caller-fixable failure with its kind.
type PlanError struct {
	Kind error
	Msg  string
}

func (e *PlanError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *PlanError) Unwrap() error { return e.Kind }

// OverflowError reports tasks that did not fit into the work hours.
type OverflowError struct {
	Unplaced []Task
}

func (e *OverflowError) Error() string {
	names := make([]string, 0, len(e.Unplaced))
	for _, t := range e.Unplaced {
		names = append(names, t.Name)
	}
	return fmt.Sprintf("%s: %d task(s) did not fit: %s",
		ErrScheduleOverflow.Error(), len(e.Unplaced), strings.Join(names, ", "))
}

func (e *OverflowError) Unwrap() error { return ErrScheduleOverflow }

// ErrorKind returns a stable snake_case code for a caller-fixable error,
// or "" when err is not one.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTimeFormat):
		return "invalid_time_format"
	case errors.Is(err, ErrInvalidTimeRange):
		return "invalid_time_range"
	case errors.Is(err, ErrWorkHoursOutOfRange):
		return "work_hours_out_of_range"
	case errors.Is(err, ErrScheduleOverflow):
		return "schedule_overflow"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	}
	return ""
}

func invalidFormatf(format string, args ...any) error {
	return &PlanError{Kind: ErrInvalidTimeFormat, Msg: fmt.Sprintf(format, args...)}
}

// InvalidRangef builds an ErrInvalidTimeRange error.
func InvalidRangef(format string, args ...any) error {
	return &PlanError{Kind: ErrInvalidTimeRange, Msg: fmt.Sprintf(format, args...)}
}

// InvalidInputf builds an ErrInvalidInput error.
func InvalidInputf(format string, args ...any) error {
	return &PlanError{Kind: ErrInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

// WorkHoursOutOfRangef builds an ErrWorkHoursOutOfRange error.
func WorkHoursOutOfRangef(format string, args ...any) error {
	return &PlanError{Kind: ErrWorkHoursOutOfRange, Msg: fmt.Sprintf(format, args...)}
}
