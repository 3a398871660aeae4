package domain

import (
	"fmt"
	"strings"
	"time"
)

// Clock is a wall-clock time expressed as minutes since midnight.
type Clock int

// EndOfDay is the exclusive upper bound of a day ("24:00").
const EndOfDay Clock = 24 * 60

// ParseClock parses "HH:MM" (24h). "24:00" is accepted as EndOfDay.
func ParseClock(s string) (Clock, error) {
	raw := strings.TrimSpace(s)
	if raw == "24:00" {
		return EndOfDay, nil
	}
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, invalidFormatf("%q is not a HH:MM time", s)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Span is a half-open interval [Start, End).
type Span struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

func (s Span) Minutes() int {
	if s.End <= s.Start {
		return 0
	}
	return int(s.End - s.Start)
}

// Contains reports whether o lies entirely inside s.
func (s Span) Contains(o Span) bool {
	return o.Start >= s.Start && o.End <= s.End
}

// Intersect returns the overlap of s and o and whether it is non-empty.
func (s Span) Intersect(o Span) (Span, bool) {
	out := Span{Start: max(s.Start, o.Start), End: min(s.End, o.End)}
	return out, out.End > out.Start
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Dosha is the energy type associated with a phase of the day.
type Dosha string

const (
	DoshaKapha Dosha = "kapha"
	DoshaPitta Dosha = "pitta"
	DoshaVata  Dosha = "vata"
)

// Doshas lists every dosha in a stable order.
var Doshas = []Dosha{DoshaKapha, DoshaPitta, DoshaVata}

func (d Dosha) Valid() bool {
	switch d {
	case DoshaKapha, DoshaPitta, DoshaVata:
		return true
	}
	return false
}

// PhaseLabel names a segment of the dosha clock.
type PhaseLabel string

const (
	PhaseVataDawn      PhaseLabel = "vata-dawn"
	PhaseKaphaMorning  PhaseLabel = "kapha-morning"
	PhasePittaMidday   PhaseLabel = "pitta-midday"
	PhaseVataAfternoon PhaseLabel = "vata-afternoon"
	PhaseKaphaEvening  PhaseLabel = "kapha-evening"
	PhasePittaNight    PhaseLabel = "pitta-night"
)

// Dosha returns the energy type that governs the label.
func (l PhaseLabel) Dosha() Dosha {
	switch l {
	case PhaseKaphaMorning, PhaseKaphaEvening:
		return DoshaKapha
	case PhasePittaMidday, PhasePittaNight:
		return DoshaPitta
	case PhaseVataDawn, PhaseVataAfternoon:
		return DoshaVata
	}
	panic(fmt.Sprintf("domain: unknown phase label %q", string(l)))
}

// Phase is a labelled contiguous interval of the waking day.
type Phase struct {
	Label PhaseLabel `json:"label"`
	Dosha Dosha      `json:"dosha"`
	Start Clock      `json:"start"`
	End   Clock      `json:"end"`
}

func (p Phase) Span() Span { return Span{Start: p.Start, End: p.End} }

// TaskType is the category used to match tasks against phases.
type TaskType string

const (
	TaskFocusWork TaskType = "focus-work"
	TaskCreative  TaskType = "creative"
	TaskRoutine   TaskType = "routine"
	TaskPhysical  TaskType = "physical"
)

// TaskTypes lists every task type in front-loading priority order.
var TaskTypes = []TaskType{TaskFocusWork, TaskCreative, TaskPhysical, TaskRoutine}

var taskTypeAliases = map[string]TaskType{
	"focus-work":   TaskFocusWork,
	"focus_work":   TaskFocusWork,
	"focus work":   TaskFocusWork,
	"focus":        TaskFocusWork,
	"deep work":    TaskFocusWork,
	"deep-work":    TaskFocusWork,
	"deep_work":    TaskFocusWork,
	"creative":     TaskCreative,
	"art":          TaskCreative,
	"writing":      TaskCreative,
	"routine":      TaskRoutine,
	"admin":        TaskRoutine,
	"shallow work": TaskRoutine,
	"shallow-work": TaskRoutine,
	"chores":       TaskRoutine,
	"physical":     TaskPhysical,
	"exercise":     TaskPhysical,
	"movement":     TaskPhysical,
	"yoga":         TaskPhysical,
}

// ParseTaskType maps caller text (case-insensitive, with aliases) to a TaskType.
func ParseTaskType(s string) (TaskType, error) {
	key := strings.ToLower(strings.Join(strings.Fields(s), " "))
	if t, ok := taskTypeAliases[key]; ok {
		return t, nil
	}
	return "", InvalidInputf("unknown task type %q", s)
}

func (t TaskType) Valid() bool {
	switch t {
	case TaskFocusWork, TaskCreative, TaskRoutine, TaskPhysical:
		return true
	}
	return false
}

// HighIntensity reports whether time spent on t counts toward the daily load limit.
func (t TaskType) HighIntensity() bool {
	switch t {
	case TaskFocusWork, TaskPhysical:
		return true
	case TaskCreative, TaskRoutine:
		return false
	}
	panic(fmt.Sprintf("domain: unknown task type %q", string(t)))
}

// MaxTaskMinutes bounds a caller-supplied duration; no task outlasts a day.
const MaxTaskMinutes = int(EndOfDay)

// Task is a caller-supplied unit of work.
// DurationMinutes overrides the per-type default when positive.
type Task struct {
	Name            string   `json:"name"`
	Type            TaskType `json:"type"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
}

// StressLevel is the caller-declared stress that modulates allocation.
type StressLevel string

const (
	StressLow    StressLevel = "low"
	StressMedium StressLevel = "medium"
	StressHigh   StressLevel = "high"
)

var StressLevels = []StressLevel{StressLow, StressMedium, StressHigh}

func ParseStressLevel(s string) (StressLevel, error) {
	switch StressLevel(strings.ToLower(strings.TrimSpace(s))) {
	case StressLow:
		return StressLow, nil
	case StressMedium, "moderate":
		return StressMedium, nil
	case StressHigh:
		return StressHigh, nil
	}
	return "", InvalidInputf("unknown stress level %q", s)
}

func (l StressLevel) Valid() bool {
	switch l {
	case StressLow, StressMedium, StressHigh:
		return true
	}
	return false
}
