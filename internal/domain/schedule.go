package domain

// ScheduleEntry places one task in a time slot of a phase.
type ScheduleEntry struct {
	Task       string     `json:"task"`
	Type       TaskType   `json:"type"`
	Phase      PhaseLabel `json:"phase"`
	EnergyType Dosha      `json:"energy_type"`
	Start      Clock      `json:"start"`
	End        Clock      `json:"end"`
}

func (e ScheduleEntry) Span() Span { return Span{Start: e.Start, End: e.End} }

func (e ScheduleEntry) Minutes() int { return e.Span().Minutes() }

// Schedule is ordered by Start ascending and never overlaps.
type Schedule []ScheduleEntry

type InterventionKind string

const (
	InterventionRest       InterventionKind = "rest"
	InterventionAdjustment InterventionKind = "adjustment"
	InterventionSummary    InterventionKind = "summary"
)

// Trigger codes explain which rule produced an intervention.
const (
	TriggerContinuousWork    = "continuous_work_exceeded"
	TriggerPhaseMismatch     = "phase_mismatch"
	TriggerHighIntensityLoad = "high_intensity_load_exceeded"
)

// InterventionRecord is a recommendation derived from the schedule.
// EntryIndex points at the adjacent schedule entry, or -1 for day-level records.
type InterventionRecord struct {
	Kind            InterventionKind `json:"kind"`
	Trigger         string           `json:"trigger"`
	Reason          string           `json:"reason"`
	Action          string           `json:"action"`
	At              Clock            `json:"at"`
	DurationMinutes int              `json:"duration_minutes,omitempty"`
	Task            string           `json:"task,omitempty"`
	EntryIndex      int              `json:"entry_index"`
}

// EnrichedItem holds exactly one of Entry or Intervention.
type EnrichedItem struct {
	Entry        *ScheduleEntry      `json:"entry,omitempty"`
	Intervention *InterventionRecord `json:"intervention,omitempty"`
}

// At is the time the item is anchored to.
func (i EnrichedItem) At() Clock {
	if i.Entry != nil {
		return i.Entry.Start
	}
	return i.Intervention.At
}

// EnrichedSchedule is a schedule with interventions merged in time order.
type EnrichedSchedule []EnrichedItem

// Plan is the full pipeline output.
type Plan struct {
	Phases        []Phase              `json:"phases"`
	Schedule      EnrichedSchedule     `json:"schedule"`
	Interventions []InterventionRecord `json:"interventions"`
	Fingerprint   string               `json:"fingerprint"`
}
