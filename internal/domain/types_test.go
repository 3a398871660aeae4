package domain_test

import (
	"errors"
	"testing"

	"github.com/PabloGalante/dinacharya/internal/domain"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want domain.Clock
	}{
		{"00:00", 0},
		{"07:30", 450},
		{"9:05", 545},
		{" 22:00 ", 1320},
		{"23:59", 1439},
		{"24:00", domain.EndOfDay},
	}
	for _, tc := range cases {
		got, err := domain.ParseClock(tc.in)
		if err != nil {
			t.Fatalf("ParseClock(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseClockRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "7", "25:00", "12:60", "noon", "07:00am", "24:01"} {
		_, err := domain.ParseClock(in)
		if !errors.Is(err, domain.ErrInvalidTimeFormat) {
			t.Fatalf("ParseClock(%q): expected ErrInvalidTimeFormat, got %v", in, err)
		}
		if domain.ErrorKind(err) != "invalid_time_format" {
			t.Fatalf("ParseClock(%q): unexpected kind %q", in, domain.ErrorKind(err))
		}
	}
}

func TestClockString(t *testing.T) {
	if got := domain.Clock(545).String(); got != "09:05" {
		t.Fatalf("expected 09:05, got %s", got)
	}
	if got := domain.EndOfDay.String(); got != "24:00" {
		t.Fatalf("expected 24:00, got %s", got)
	}

	var c domain.Clock
	if err := c.UnmarshalText([]byte("13:45")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	b, _ := c.MarshalText()
	if string(b) != "13:45" {
		t.Fatalf("round trip gave %s", b)
	}
}

func TestSpanIntersect(t *testing.T) {
	a := domain.Span{Start: 600, End: 840}
	b := domain.Span{Start: 540, End: 660}

	got, ok := a.Intersect(b)
	if !ok || got.Start != 600 || got.End != 660 {
		t.Fatalf("unexpected intersection %v ok=%v", got, ok)
	}
	if _, ok := a.Intersect(domain.Span{Start: 840, End: 900}); ok {
		t.Fatalf("touching spans must not intersect")
	}
	if !a.Contains(domain.Span{Start: 600, End: 700}) {
		t.Fatalf("expected containment")
	}
	if a.Minutes() != 240 {
		t.Fatalf("expected 240 minutes, got %d", a.Minutes())
	}
}

func TestParseTaskTypeAliases(t *testing.T) {
	cases := map[string]domain.TaskType{
		"focus-work":  domain.TaskFocusWork,
		"Deep Work":   domain.TaskFocusWork,
		"deep   work": domain.TaskFocusWork,
		"CREATIVE":    domain.TaskCreative,
		"admin":       domain.TaskRoutine,
		"Exercise":    domain.TaskPhysical,
	}
	for in, want := range cases {
		got, err := domain.ParseTaskType(in)
		if err != nil {
			t.Fatalf("ParseTaskType(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseTaskType(%q) = %s, want %s", in, got, want)
		}
	}

	_, err := domain.ParseTaskType("sleeping")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseStressLevel(t *testing.T) {
	cases := map[string]domain.StressLevel{
		"low":      domain.StressLow,
		"Medium":   domain.StressMedium,
		"moderate": domain.StressMedium,
		" HIGH ":   domain.StressHigh,
	}
	for in, want := range cases {
		got, err := domain.ParseStressLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseStressLevel(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := domain.ParseStressLevel("extreme"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHighIntensity(t *testing.T) {
	if !domain.TaskFocusWork.HighIntensity() || !domain.TaskPhysical.HighIntensity() {
		t.Fatalf("focus-work and physical are high intensity")
	}
	if domain.TaskCreative.HighIntensity() || domain.TaskRoutine.HighIntensity() {
		t.Fatalf("creative and routine are not high intensity")
	}
}

func TestPhaseLabelDosha(t *testing.T) {
	cases := map[domain.PhaseLabel]domain.Dosha{
		domain.PhaseVataDawn:      domain.DoshaVata,
		domain.PhaseKaphaMorning:  domain.DoshaKapha,
		domain.PhasePittaMidday:   domain.DoshaPitta,
		domain.PhaseVataAfternoon: domain.DoshaVata,
		domain.PhaseKaphaEvening:  domain.DoshaKapha,
		domain.PhasePittaNight:    domain.DoshaPitta,
	}
	for label, want := range cases {
		if got := label.Dosha(); got != want {
			t.Fatalf("%s.Dosha() = %s, want %s", label, got, want)
		}
	}
}
