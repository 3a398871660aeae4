package domain

import (
	"fmt"
	"math"
)

// Modulation describes how a stress level shapes allocation.
type Modulation struct {
	DurationFactor float64 `yaml:"duration_factor" json:"duration_factor"`
	BufferMinutes  int     `yaml:"buffer_minutes" json:"buffer_minutes"`
	FrontLoad      bool    `yaml:"front_load" json:"front_load"`
}

// Thresholds drive the intervention rules.
type Thresholds struct {
	MaxContinuousMinutes      int `yaml:"max_continuous_minutes" json:"max_continuous_minutes"`
	RestGapMinutes            int `yaml:"rest_gap_minutes" json:"rest_gap_minutes"`
	RestMinutes               int `yaml:"rest_minutes" json:"rest_minutes"`
	DailyHighIntensityMinutes int `yaml:"daily_high_intensity_minutes" json:"daily_high_intensity_minutes"`
}

// Tuning is the planner's read-only configuration. It is built once at
// process start and passed by value; nothing mutates it per request.
type Tuning struct {
	DefaultDurations map[TaskType]int           `yaml:"default_durations" json:"default_durations"`
	MinTaskMinutes   int                        `yaml:"min_task_minutes" json:"min_task_minutes"`
	Stress           map[StressLevel]Modulation `yaml:"stress" json:"stress"`
	Suitability      map[TaskType][]Dosha       `yaml:"suitability" json:"suitability"`
	Interventions    Thresholds                 `yaml:"interventions" json:"interventions"`
}

func DefaultTuning() Tuning {
	return Tuning{
		DefaultDurations: map[TaskType]int{
			TaskFocusWork: 90,
			TaskCreative:  60,
			TaskRoutine:   30,
			TaskPhysical:  45,
		},
		MinTaskMinutes: 5,
		Stress: map[StressLevel]Modulation{
			StressLow:    {DurationFactor: 1.0, BufferMinutes: 5},
			StressMedium: {DurationFactor: 0.85, BufferMinutes: 10},
			StressHigh:   {DurationFactor: 0.6, BufferMinutes: 15, FrontLoad: true},
		},
		Suitability: map[TaskType][]Dosha{
			TaskFocusWork: {DoshaPitta, DoshaKapha, DoshaVata},
			TaskCreative:  {DoshaVata, DoshaPitta, DoshaKapha},
			TaskRoutine:   {DoshaKapha, DoshaVata, DoshaPitta},
			TaskPhysical:  {DoshaKapha, DoshaPitta, DoshaVata},
		},
		Interventions: Thresholds{
			MaxContinuousMinutes:      120,
			RestGapMinutes:            20,
			RestMinutes:               15,
			DailyHighIntensityMinutes: 240,
		},
	}
}

// Validate checks that every task type and stress level has an entry and
// that all numbers are usable.
func (t Tuning) Validate() error {
	for _, tt := range TaskTypes {
		if t.DefaultDurations[tt] <= 0 {
			return fmt.Errorf("tuning: default_durations.%s must be > 0", tt)
		}
		ranking := t.Suitability[tt]
		if len(ranking) == 0 {
			return fmt.Errorf("tuning: suitability.%s is empty", tt)
		}
		seen := make(map[Dosha]bool, len(ranking))
		for _, d := range ranking {
			if !d.Valid() {
				return fmt.Errorf("tuning: suitability.%s: unknown dosha %q", tt, d)
			}
			if seen[d] {
				return fmt.Errorf("tuning: suitability.%s: duplicate dosha %q", tt, d)
			}
			seen[d] = true
		}
	}
	for key := range t.DefaultDurations {
		if !key.Valid() {
			return fmt.Errorf("tuning: default_durations: unknown task type %q", key)
		}
	}
	for key := range t.Suitability {
		if !key.Valid() {
			return fmt.Errorf("tuning: suitability: unknown task type %q", key)
		}
	}
	for _, lvl := range StressLevels {
		m, ok := t.Stress[lvl]
		if !ok {
			return fmt.Errorf("tuning: stress.%s is missing", lvl)
		}
		if m.DurationFactor <= 0 || m.DurationFactor > 1 {
			return fmt.Errorf("tuning: stress.%s.duration_factor must be in (0, 1]", lvl)
		}
		if m.BufferMinutes < 0 {
			return fmt.Errorf("tuning: stress.%s.buffer_minutes must be >= 0", lvl)
		}
	}
	for key := range t.Stress {
		if !key.Valid() {
			return fmt.Errorf("tuning: stress: unknown level %q", key)
		}
	}
	if t.MinTaskMinutes <= 0 {
		return fmt.Errorf("tuning: min_task_minutes must be > 0")
	}
	th := t.Interventions
	if th.MaxContinuousMinutes <= 0 || th.RestGapMinutes <= 0 || th.RestMinutes <= 0 || th.DailyHighIntensityMinutes <= 0 {
		return fmt.Errorf("tuning: intervention thresholds must be > 0")
	}
	return nil
}

// Modulation returns the allocation policy for a stress level.
func (t Tuning) Modulation(level StressLevel) Modulation {
	m, ok := t.Stress[level]
	if !ok {
		panic(fmt.Sprintf("domain: no modulation for stress level %q", string(level)))
	}
	return m
}

// Duration is the number of minutes task occupies at the given stress level.
func (t Tuning) Duration(task Task, level StressLevel) int {
	base := task.DurationMinutes
	if base <= 0 {
		base = t.DefaultDurations[task.Type]
	}
	d := int(math.Round(float64(base) * t.Modulation(level).DurationFactor))
	return max(d, t.MinTaskMinutes)
}

// Ranking lists doshas from most to least suitable for a task type.
func (t Tuning) Ranking(tt TaskType) []Dosha {
	return t.Suitability[tt]
}

// Preferred is the single best dosha for a task type.
func (t Tuning) Preferred(tt TaskType) Dosha {
	r := t.Suitability[tt]
	if len(r) == 0 {
		panic(fmt.Sprintf("domain: no suitability ranking for task type %q", string(tt)))
	}
	return r[0]
}
