package domain_test

import (
	"testing"

	"github.com/PabloGalante/dinacharya/internal/domain"
)

func TestDefaultTuningIsValid(t *testing.T) {
	if err := domain.DefaultTuning().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestTuningValidateRejects(t *testing.T) {
	cases := map[string]func(*domain.Tuning){
		"missing duration": func(tn *domain.Tuning) { delete(tn.DefaultDurations, domain.TaskRoutine) },
		"unknown type":     func(tn *domain.Tuning) { tn.DefaultDurations["nap"] = 20 },
		"empty ranking":    func(tn *domain.Tuning) { tn.Suitability[domain.TaskCreative] = nil },
		"duplicate dosha": func(tn *domain.Tuning) {
			tn.Suitability[domain.TaskCreative] = []domain.Dosha{domain.DoshaVata, domain.DoshaVata}
		},
		"unknown dosha": func(tn *domain.Tuning) {
			tn.Suitability[domain.TaskCreative] = []domain.Dosha{"ether"}
		},
		"missing stress": func(tn *domain.Tuning) { delete(tn.Stress, domain.StressHigh) },
		"factor above one": func(tn *domain.Tuning) {
			tn.Stress[domain.StressLow] = domain.Modulation{DurationFactor: 1.5}
		},
		"zero minimum": func(tn *domain.Tuning) { tn.MinTaskMinutes = 0 },
		"zero rest":    func(tn *domain.Tuning) { tn.Interventions.RestMinutes = 0 },
	}
	for name, mutate := range cases {
		tn := domain.DefaultTuning()
		mutate(&tn)
		if err := tn.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestTuningDuration(t *testing.T) {
	tn := domain.DefaultTuning()
	cases := []struct {
		task   domain.Task
		stress domain.StressLevel
		want   int
	}{
		{domain.Task{Type: domain.TaskFocusWork}, domain.StressLow, 90},
		{domain.Task{Type: domain.TaskFocusWork}, domain.StressMedium, 77},
		{domain.Task{Type: domain.TaskFocusWork}, domain.StressHigh, 54},
		{domain.Task{Type: domain.TaskRoutine}, domain.StressHigh, 18},
		{domain.Task{Type: domain.TaskCreative, DurationMinutes: 10}, domain.StressHigh, 6},
		{domain.Task{Type: domain.TaskCreative, DurationMinutes: 5}, domain.StressHigh, 5},
	}
	for _, tc := range cases {
		if got := tn.Duration(tc.task, tc.stress); got != tc.want {
			t.Fatalf("Duration(%+v, %s) = %d, want %d", tc.task, tc.stress, got, tc.want)
		}
	}
}

func TestTuningPreferred(t *testing.T) {
	tn := domain.DefaultTuning()
	want := map[domain.TaskType]domain.Dosha{
		domain.TaskFocusWork: domain.DoshaPitta,
		domain.TaskCreative:  domain.DoshaVata,
		domain.TaskRoutine:   domain.DoshaKapha,
		domain.TaskPhysical:  domain.DoshaKapha,
	}
	for tt, d := range want {
		if got := tn.Preferred(tt); got != d {
			t.Fatalf("Preferred(%s) = %s, want %s", tt, got, d)
		}
	}
}
